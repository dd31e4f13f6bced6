// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch pre-downloads the pose landmarker model asset. The model
// runtime fetches its weights lazily on first inference; fetching them up
// front keeps the first extraction from stalling inside the subprocess.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pdiddy/posekit/internal/httputil"
	"github.com/pdiddy/posekit/pkg/types"
)

// DefaultModelURL points at the heavy (complexity 2) pose landmarker
// bundle, matching the extraction default.
const DefaultModelURL = "https://storage.googleapis.com/mediapipe-models/pose_landmarker/pose_landmarker_heavy/float16/latest/pose_landmarker_heavy.task"

// modelFile is the on-disk name of the fetched asset.
const modelFile = "pose_landmarker_heavy.task"

// ModelPath returns the destination path for the model asset under the
// configured model directory.
func ModelPath(cfg types.FetchConfig) string {
	return filepath.Join(cfg.ModelDir, modelFile)
}

// Model downloads the asset at url into cfg.ModelDir, writing a temporary
// file and renaming on success. If the asset already exists it is left in
// place and skipped=true is returned. Transient HTTP failures are retried
// with backoff before giving up.
func Model(ctx context.Context, client *http.Client, url string, cfg types.FetchConfig, w io.Writer) (path string, skipped bool, err error) {
	if url == "" {
		url = DefaultModelURL
	}
	dest := ModelPath(cfg)

	if _, err := os.Stat(dest); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", modelFile)
		return dest, true, nil
	}

	if err := os.MkdirAll(cfg.ModelDir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating model directory %s: %w", cfg.ModelDir, err)
	}

	fmt.Fprintf(w, "downloading: %s\n", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", false, fmt.Errorf("fetching model asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("fetching model asset: HTTP %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(cfg.ModelDir, modelFile+".*")
	if err != nil {
		return "", false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", false, fmt.Errorf("writing model asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", false, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return "", false, fmt.Errorf("moving model asset into place: %w", err)
	}

	fmt.Fprintf(w, "fetched: %s\n", dest)
	return dest, false, nil
}
