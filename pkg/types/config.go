// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunnerConfig holds settings for the pose inference runner subprocess.
type RunnerConfig struct {
	// PythonBin is the interpreter binary used for inference (default "python3").
	PythonBin string `json:"python_bin" yaml:"python_bin"`

	// ModelComplexity selects the landmark model variant: 0 (lite),
	// 1 (full), or 2 (heavy). Default 2.
	ModelComplexity int `json:"model_complexity" yaml:"model_complexity"`

	// MinDetectionConfidence is the detection threshold passed to the
	// model (default 0.5).
	MinDetectionConfidence float64 `json:"min_detection_confidence" yaml:"min_detection_confidence"`
}

// FetchConfig holds settings for pre-fetching the pose model asset.
type FetchConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "posekit/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// ModelDir is the directory model assets are written to
	// (default ~/.cache/posekit).
	ModelDir string `json:"model_dir" yaml:"model_dir"`
}

// HistoryConfig holds settings for the optional extraction history store.
type HistoryConfig struct {
	// DBPath is the SQLite database file (default ~/.cache/posekit/history.db).
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default maximum number of rows listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
