// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeProber implements dependencyProber with a canned missing list.
type fakeProber struct {
	missing []string
}

func (f *fakeProber) Missing() []string { return f.missing }

// withProber swaps the prober seam for the duration of the test.
func withProber(t *testing.T, missing []string) {
	t.Helper()
	orig := newProber
	newProber = func(string) dependencyProber { return &fakeProber{missing: missing} }
	t.Cleanup(func() { newProber = orig })
}

// captureOutput redirects stdout and stderr around fn and returns what
// was written to each.
func captureOutput(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()

	origOut, origErr := os.Stdout, os.Stderr
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout, os.Stderr = outW, errW

	fn()

	outW.Close()
	errW.Close()
	os.Stdout, os.Stderr = origOut, origErr

	outData, _ := io.ReadAll(outR)
	errData, _ := io.ReadAll(errR)
	return string(outData), string(errData)
}

// oneJSONLine asserts the output is exactly one newline-terminated line.
func oneJSONLine(t *testing.T, stdout string) {
	t.Helper()
	if !strings.HasSuffix(stdout, "\n") || strings.Count(stdout, "\n") != 1 {
		t.Errorf("stdout %q should be exactly one JSON line", stdout)
	}
}

func TestRunExtractMissingArgument(t *testing.T) {
	withProber(t, nil)

	var err error
	stdout, _ := captureOutput(t, func() {
		err = runExtract(extractCmd, nil)
	})

	if !errors.Is(err, errUsage) {
		t.Errorf("err = %v, want errUsage", err)
	}
	oneJSONLine(t, stdout)
	if !strings.Contains(stdout, "No image path provided") {
		t.Errorf("stdout %q should carry the usage hint", stdout)
	}
	if !strings.Contains(stdout, `"success":false`) {
		t.Errorf("stdout %q should be failure-shaped", stdout)
	}
}

func TestRunExtractMissingDependency(t *testing.T) {
	withProber(t, []string{"mediapipe"})

	var err error
	stdout, _ := captureOutput(t, func() {
		err = runExtract(extractCmd, []string{filepath.Join(t.TempDir(), "x.png")})
	})

	if !errors.Is(err, errDependency) {
		t.Errorf("err = %v, want errDependency", err)
	}
	oneJSONLine(t, stdout)
	if !strings.Contains(stdout, "Missing Python dependency: mediapipe") {
		t.Errorf("stdout %q should name the missing module", stdout)
	}
	if !strings.Contains(stdout, "pip install") {
		t.Errorf("stdout %q should carry the install hint", stdout)
	}
}

func TestRunExtractFileNotFoundExitsZero(t *testing.T) {
	withProber(t, nil)

	var err error
	stdout, _ := captureOutput(t, func() {
		err = runExtract(extractCmd, []string{filepath.Join(t.TempDir(), "missing.png")})
	})

	// File-not-found is a failure payload with a normal exit, so the
	// caller can tell "found nothing" from "tool broke".
	if err != nil {
		t.Errorf("err = %v, want nil", err)
	}
	oneJSONLine(t, stdout)
	if !strings.Contains(stdout, "Image file not found") {
		t.Errorf("stdout %q should report the missing file", stdout)
	}
}

func TestRunReportsExecuteErrors(t *testing.T) {
	// /dev/null is a file, so creating the database directory under it
	// fails and the command returns an error.
	rootCmd.SetArgs([]string{"history", "list", "--db", "/dev/null/history.db"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	var code int
	_, stderr := captureOutput(t, func() {
		code = run()
	})

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Error:") {
		t.Errorf("stderr %q should report the failure", stderr)
	}
}
