// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes recorded outcomes to w as a YAML document, newest
// first, applying the same limit semantics as List.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, limit int) error {
	entries, err := s.List(ctx, limit)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
