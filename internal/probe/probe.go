// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package probe implements runtime dependency detection for the pose
// pipeline. It checks that a Python interpreter is on PATH and that each
// module the inference runner imports is loadable, without aborting on the
// first failure.
package probe

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/pdiddy/posekit/pkg/types"
)

// Modules lists the Python modules the inference runner requires, in the
// order they appear in the diagnose report.
var Modules = []string{"cv2", "mediapipe", "numpy"}

// InstallHint is appended to missing-dependency errors so a caller can
// surface the fix directly.
const InstallHint = "Please install required packages with: pip install opencv-python mediapipe numpy"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunOutput(name string, args ...string) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunOutput(name string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}

// Prober checks the availability of the Python runtime and its modules.
type Prober struct {
	pythonBin string
	exec      executor
}

var defaultExec = &osExecutor{}

// New returns a Prober for the given interpreter binary ("python3" when
// empty).
func New(pythonBin string) *Prober {
	return newProber(pythonBin, defaultExec)
}

func newProber(pythonBin string, exec executor) *Prober {
	if pythonBin == "" {
		pythonBin = "python3"
	}
	return &Prober{pythonBin: pythonBin, exec: exec}
}

// PythonBin returns the interpreter binary the prober checks.
func (p *Prober) PythonBin() string { return p.pythonBin }

// InterpreterAvailable reports whether the interpreter binary exists on
// PATH and responds to a version query.
func (p *Prober) InterpreterAvailable() bool {
	if _, err := p.exec.LookPath(p.pythonBin); err != nil {
		return false
	}
	return p.exec.RunSilent(p.pythonBin, "--version") == nil
}

// InterpreterVersion returns the interpreter's sys.version string, or ""
// when the interpreter cannot be queried.
func (p *Prober) InterpreterVersion() string {
	out, err := p.exec.RunOutput(p.pythonBin, "-c", "import sys; print(sys.version)")
	if err != nil {
		return ""
	}
	return out
}

// ModuleAvailable reports whether the named module imports cleanly in the
// probed interpreter.
func (p *Prober) ModuleAvailable(module string) bool {
	return p.exec.RunSilent(p.pythonBin, "-c", "import "+module) == nil
}

// Report probes the interpreter and every required module independently;
// one missing module does not prevent checking the rest. It never fails:
// a missing interpreter yields an empty version string and all-false
// availability.
func (p *Prober) Report() types.DependencyReport {
	report := types.DependencyReport{
		Dependencies: make(map[string]bool, len(Modules)),
	}

	if !p.InterpreterAvailable() {
		for _, m := range Modules {
			report.Dependencies[m] = false
		}
		return report
	}

	report.PythonVersion = p.InterpreterVersion()
	report.AllAvailable = true
	for _, m := range Modules {
		ok := p.ModuleAvailable(m)
		report.Dependencies[m] = ok
		if !ok {
			report.AllAvailable = false
		}
	}
	return report
}

// Missing returns the names of required modules that fail to import, with
// the interpreter itself listed first when it is absent.
func (p *Prober) Missing() []string {
	if !p.InterpreterAvailable() {
		return append([]string{p.pythonBin}, Modules...)
	}
	var missing []string
	for _, m := range Modules {
		if !p.ModuleAvailable(m) {
			missing = append(missing, m)
		}
	}
	return missing
}
