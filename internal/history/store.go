// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists extraction outcomes to a local SQLite database.
// Recording is opt-in: the default extract invocation touches no storage,
// and the stdout JSON contract is unchanged whether or not an outcome is
// recorded.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/posekit/pkg/types"
)

// Store manages the extraction history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Entry is one recorded extraction outcome.
type Entry struct {
	ID         int64            `json:"id" yaml:"id"`
	ImagePath  string           `json:"image_path" yaml:"image_path"`
	RecordedAt time.Time        `json:"recorded_at" yaml:"recorded_at"`
	Detected   bool             `json:"detected" yaml:"detected"`
	Confidence float64          `json:"confidence" yaml:"confidence"`
	Width      int              `json:"width" yaml:"width"`
	Height     int              `json:"height" yaml:"height"`
	Error      string           `json:"error,omitempty" yaml:"error,omitempty"`
	Keypoints  []types.Keypoint `json:"keypoints,omitempty" yaml:"keypoints,omitempty"`
}

// NewStore opens or creates the history database at cfg.DBPath, creating
// the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS extractions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			image_path TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			detected INTEGER NOT NULL,
			confidence REAL NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			error TEXT,
			keypoints TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_extractions_image_path ON extractions(image_path)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one extraction outcome. Both success and failure shapes
// are recorded; failures keep their error message and an empty keypoint
// list.
func (s *Store) Record(ctx context.Context, imagePath string, result types.Result) error {
	keypointsJSON, err := json.Marshal(result.Keypoints)
	if err != nil {
		return fmt.Errorf("marshaling keypoints: %w", err)
	}

	var width, height int
	if result.Dimensions != nil {
		width = result.Dimensions.Width
		height = result.Dimensions.Height
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO extractions
			(image_path, recorded_at, detected, confidence, width, height, error, keypoints)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		imagePath,
		time.Now().UTC().Format(time.RFC3339),
		result.PoseDetected,
		result.Confidence,
		width,
		height,
		result.Error,
		string(keypointsJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting extraction record: %w", err)
	}
	return nil
}

// List returns recorded outcomes, newest first. A limit of 0 applies the
// store's configured maximum.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, image_path, recorded_at, detected, confidence, width, height, error, keypoints
		FROM extractions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying extractions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e             Entry
			recordedAt    string
			errMsg        sql.NullString
			keypointsJSON sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.ImagePath, &recordedAt, &e.Detected,
			&e.Confidence, &e.Width, &e.Height, &errMsg, &keypointsJSON); err != nil {
			return nil, fmt.Errorf("scanning extraction row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, recordedAt); err == nil {
			e.RecordedAt = t
		}
		e.Error = errMsg.String
		if keypointsJSON.Valid && keypointsJSON.String != "" {
			if err := json.Unmarshal([]byte(keypointsJSON.String), &e.Keypoints); err != nil {
				return nil, fmt.Errorf("unmarshaling keypoints for record %d: %w", e.ID, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
