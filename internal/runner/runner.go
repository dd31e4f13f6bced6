// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner executes single-image pose inference in a Python
// subprocess. The Go side owns image decoding and the output contract; the
// subprocess owns only the model call: it reads a tightly packed RGB24
// frame from stdin and writes one JSON object with the raw landmarks to
// stdout.
package runner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pdiddy/posekit/pkg/types"
)

// Landmark is one raw model landmark before it is named and aggregated.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Estimator runs pose inference over one RGB24 frame. An empty landmark
// slice with a nil error means the model found no pose.
type Estimator interface {
	Estimate(frame []byte, width, height int) ([]Landmark, error)
}

// inferenceScript is the program handed to the interpreter with -c. It
// keeps the model invocation identical across runner versions: static
// image mode, segmentation disabled, complexity and detection threshold
// from argv.
const inferenceScript = `import json
import sys

import mediapipe as mp
import numpy as np

width = int(sys.argv[1])
height = int(sys.argv[2])
complexity = int(sys.argv[3])
min_confidence = float(sys.argv[4])

buf = sys.stdin.buffer.read()
frame = np.frombuffer(buf, dtype=np.uint8).reshape((height, width, 3))

pose = mp.solutions.pose.Pose(
    static_image_mode=True,
    model_complexity=complexity,
    enable_segmentation=False,
    min_detection_confidence=min_confidence,
)
results = pose.process(frame)
if not results.pose_landmarks:
    print(json.dumps({"landmarks": []}))
    sys.exit(0)

landmarks = [
    {"x": lm.x, "y": lm.y, "z": lm.z, "visibility": lm.visibility}
    for lm in results.pose_landmarks.landmark
]
print(json.dumps({"landmarks": landmarks}))
`

// quietEnv suppresses the model runtime's startup chatter so the runner's
// stdout stays parseable. Applied to the subprocess only, never to the
// posekit process itself.
var quietEnv = []string{
	"TF_CPP_MIN_LOG_LEVEL=2",
	"GLOG_minloglevel=2",
}

// executor abstracts command execution for testing.
type executor interface {
	RunPiped(name string, args, env []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) RunPiped(name string, args, env []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// MediaPipe is an Estimator backed by the MediaPipe 33-landmark body pose
// model running in a Python subprocess.
type MediaPipe struct {
	cfg  types.RunnerConfig
	exec executor
}

var defaultExec = &osExecutor{}

// NewMediaPipe builds a MediaPipe estimator. An empty PythonBin falls back
// to python3 and a zero detection threshold to 0.5; ModelComplexity passes
// through unchanged (0 is the lite model) except that out-of-range values
// are clamped to the heavy model.
func NewMediaPipe(cfg types.RunnerConfig) *MediaPipe {
	return newMediaPipe(cfg, defaultExec)
}

func newMediaPipe(cfg types.RunnerConfig, exec executor) *MediaPipe {
	if cfg.PythonBin == "" {
		cfg.PythonBin = "python3"
	}
	if cfg.ModelComplexity < 0 || cfg.ModelComplexity > 2 {
		cfg.ModelComplexity = 2
	}
	if cfg.MinDetectionConfidence == 0 {
		cfg.MinDetectionConfidence = 0.5
	}
	return &MediaPipe{cfg: cfg, exec: exec}
}

// runnerOutput is the JSON object the subprocess prints.
type runnerOutput struct {
	Landmarks []Landmark `json:"landmarks"`
}

// Estimate pipes the frame to the inference subprocess and parses the
// landmark list it returns. frame must hold exactly width*height*3 bytes.
func (m *MediaPipe) Estimate(frame []byte, width, height int) ([]Landmark, error) {
	if want := width * height * 3; len(frame) != want {
		return nil, fmt.Errorf("frame size %d does not match %dx%d RGB24 (%d bytes)", len(frame), width, height, want)
	}

	args := []string{
		"-c", inferenceScript,
		strconv.Itoa(width),
		strconv.Itoa(height),
		strconv.Itoa(m.cfg.ModelComplexity),
		strconv.FormatFloat(m.cfg.MinDetectionConfidence, 'f', -1, 64),
	}

	var out, errBuf bytes.Buffer
	if err := m.exec.RunPiped(m.cfg.PythonBin, args, quietEnv, bytes.NewReader(frame), &out, &errBuf); err != nil {
		if msg := strings.TrimSpace(errBuf.String()); msg != "" {
			return nil, fmt.Errorf("pose runner failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("pose runner failed: %w", err)
	}

	var parsed runnerOutput
	if err := json.Unmarshal(out.Bytes(), &parsed); err != nil {
		return nil, fmt.Errorf("parsing pose runner output: %w", err)
	}
	return parsed.Landmarks, nil
}
