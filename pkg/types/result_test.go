// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFailureJSONShape(t *testing.T) {
	data, err := json.Marshal(Failure("Image file not found: /tmp/x.png"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)

	// The failure payload always carries an empty keypoint array and an
	// explicit zero confidence, and never a null.
	if !strings.Contains(s, `"keypoints":[]`) {
		t.Errorf("failure JSON %s should carry an empty keypoints array", s)
	}
	if !strings.Contains(s, `"confidence":0`) {
		t.Errorf("failure JSON %s should carry a zero confidence", s)
	}
	if !strings.Contains(s, `"success":false`) {
		t.Errorf("failure JSON %s should mark success false", s)
	}
	for _, absent := range []string{"traceback", "keypoints_count", "image_dimensions", "pose_detected"} {
		if strings.Contains(s, absent) {
			t.Errorf("failure JSON %s should not carry %q", s, absent)
		}
	}
}

func TestFailureTraceJSONShape(t *testing.T) {
	data, err := json.Marshal(FailureTrace("Unexpected error: boom", "stack frames"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"traceback":"stack frames"`) {
		t.Errorf("trace JSON %s should carry the traceback", s)
	}
}

func TestSuccessJSONShape(t *testing.T) {
	result := Result{
		Success:        true,
		Keypoints:      []Keypoint{{ID: 0, Name: "NOSE", X: 0.5, Y: 0.25, Z: -0.1, Visibility: 0.98}},
		KeypointsCount: 1,
		Confidence:     0.98,
		Dimensions:     &Dimensions{Width: 640, Height: 480},
		PoseDetected:   true,
	}
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)

	for _, want := range []string{
		`"success":true`,
		`"pose_detected":true`,
		`"keypoints_count":1`,
		`"image_dimensions":{"width":640,"height":480}`,
		`"name":"NOSE"`,
		`"visibility":0.98`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("success JSON %s should contain %s", s, want)
		}
	}
	if strings.Contains(s, "error") || strings.Contains(s, "traceback") {
		t.Errorf("success JSON %s should not carry error fields", s)
	}

	// The line must round-trip as valid JSON.
	var decoded Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("round-trip: %v", err)
	}
	if decoded.Keypoints[0].Visibility != 0.98 {
		t.Errorf("round-trip visibility = %v", decoded.Keypoints[0].Visibility)
	}
}

func TestDependencyReportJSONShape(t *testing.T) {
	report := DependencyReport{
		PythonVersion: "3.11.2",
		Dependencies:  map[string]bool{"cv2": true, "mediapipe": false, "numpy": true},
		AllAvailable:  false,
	}
	data, err := json.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)

	for _, want := range []string{
		`"python_version":"3.11.2"`,
		`"cv2":true`,
		`"mediapipe":false`,
		`"numpy":true`,
		`"all_dependencies_available":false`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("report JSON %s should contain %s", s, want)
		}
	}
}
