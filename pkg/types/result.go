// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared across posekit stages:
// extraction results, keypoints, dependency reports, and stage configuration.
package types

// Keypoint is one body landmark read from the pose model. X and Y are
// normalized to image dimensions; Z is a relative depth estimate with no
// fixed bound. Visibility is the model's confidence in [0,1] that the
// landmark is visible.
type Keypoint struct {
	ID         int     `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	X          float64 `json:"x" yaml:"x"`
	Y          float64 `json:"y" yaml:"y"`
	Z          float64 `json:"z" yaml:"z"`
	Visibility float64 `json:"visibility" yaml:"visibility"`
}

// Dimensions holds the original image size in pixels.
type Dimensions struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Result is the single JSON object an extraction invocation prints to
// stdout. It is a tagged outcome: Success true carries the keypoint list,
// count, mean confidence, and image dimensions; Success false carries an
// error message, an empty (never nil) keypoint list, and optionally a
// diagnostic stack trace. A Result is built once, serialized, and discarded.
type Result struct {
	Success        bool        `json:"success"`
	Error          string      `json:"error,omitempty"`
	Traceback      string      `json:"traceback,omitempty"`
	Keypoints      []Keypoint  `json:"keypoints"`
	KeypointsCount int         `json:"keypoints_count,omitempty"`
	Confidence     float64     `json:"confidence"`
	Dimensions     *Dimensions `json:"image_dimensions,omitempty"`
	PoseDetected   bool        `json:"pose_detected,omitempty"`
}

// Failure builds a failure-shaped Result with the given message.
func Failure(msg string) Result {
	return Result{
		Success:   false,
		Error:     msg,
		Keypoints: []Keypoint{},
	}
}

// FailureTrace builds a failure-shaped Result carrying a diagnostic trace.
func FailureTrace(msg, trace string) Result {
	r := Failure(msg)
	r.Traceback = trace
	return r
}

// DependencyReport is the JSON object the diagnose command prints. It maps
// each required runtime module to its availability and carries the probed
// interpreter version.
type DependencyReport struct {
	PythonVersion string          `json:"python_version"`
	Dependencies  map[string]bool `json:"dependencies"`
	AllAvailable  bool            `json:"all_dependencies_available"`
}
