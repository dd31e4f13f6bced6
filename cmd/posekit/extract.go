// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/posekit/internal/history"
	"github.com/pdiddy/posekit/internal/pose"
	"github.com/pdiddy/posekit/internal/probe"
	"github.com/pdiddy/posekit/internal/runner"
	"github.com/pdiddy/posekit/pkg/types"
)

// Callers distinguish "the tool broke" from "the tool ran and found
// nothing" by exit code. A missing argument, a missing runtime dependency,
// or a fault exits 1; a missing file, an undecodable image, or a
// no-detection outcome exits 0 with a failure-shaped JSON payload. These
// sentinels force the nonzero exits; they are never printed (stdout holds
// only the JSON line).
var (
	errUsage      = errors.New("missing image path argument")
	errDependency = errors.New("missing runtime dependency")
	errFault      = errors.New("unexpected fault")
)

// dependencyProber is the part of the prober the extract command needs;
// the indirection lets tests substitute a canned probe.
type dependencyProber interface {
	Missing() []string
}

var newProber = func(pythonBin string) dependencyProber {
	return probe.New(pythonBin)
}

var extractCmd = &cobra.Command{
	Use:   "extract <image_path>",
	Short: "Extract 33-point pose keypoints from an image",
	Long: `Extract decodes the image at the given path, runs it through the
33-landmark body pose model, and prints one line of JSON on stdout.

On detection the JSON carries all 33 keypoints with normalized
coordinates, per-landmark visibility, the mean visibility as an overall
confidence, and the image dimensions in pixels. When the file is
missing, unreadable, or contains no detectable pose, the JSON is
failure-shaped but the process still exits 0; only a missing argument,
a missing runtime dependency, or an unexpected fault exits nonzero.`,
	Args: cobra.ArbitraryArgs,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) (err error) {
	// Outer guard: anything escaping the extractor boundary (including
	// estimator construction) is reported as a failure payload with a
	// stack trace and a nonzero exit.
	defer func() {
		if r := recover(); r != nil {
			result := types.FailureTrace(fmt.Sprintf("Unexpected error: %v", r), string(debug.Stack()))
			if printErr := printJSON(result); printErr != nil {
				fmt.Fprintln(os.Stderr, printErr)
			}
			err = errFault
		}
	}()

	if len(args) < 1 {
		result := types.Failure("No image path provided. Usage: posekit extract <image_path>")
		if err := printJSON(result); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		return errUsage
	}
	imagePath := args[0]

	cfg := runnerConfigFromFlags(cmd)

	// Gate on the runtime before touching the image: the caller should
	// see an install hint, not a runner crash.
	if missing := newProber(cfg.PythonBin).Missing(); len(missing) > 0 {
		result := types.Failure(fmt.Sprintf(
			"Missing Python dependency: %s. %s", strings.Join(missing, ", "), probe.InstallHint))
		if err := printJSON(result); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		return errDependency
	}

	extractor := pose.NewExtractor(runner.NewMediaPipe(cfg))
	result := extractor.Extract(imagePath)

	if err := printJSON(result); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	if record, _ := cmd.Flags().GetBool("record"); record {
		// Recording failures must not disturb the stdout contract or the
		// exit code; they are warnings only.
		if err := recordResult(cmd, imagePath, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not record extraction: %v\n", err)
		}
	}

	return nil
}

func recordResult(cmd *cobra.Command, imagePath string, result types.Result) error {
	store, err := history.NewStore(historyConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(context.Background(), imagePath, result)
}

// runnerConfigFromFlags builds the runner config from flags, the config
// file, and the model defaults, in that order.
func runnerConfigFromFlags(cmd *cobra.Command) types.RunnerConfig {
	pythonBin, _ := cmd.Flags().GetString("python-bin")
	if pythonBin == "" {
		pythonBin = viper.GetString("runner.python_bin")
	}

	complexity, _ := cmd.Flags().GetInt("model-complexity")
	if !cmd.Flags().Changed("model-complexity") && viper.IsSet("runner.model_complexity") {
		complexity = viper.GetInt("runner.model_complexity")
	}

	minConfidence, _ := cmd.Flags().GetFloat64("min-detection-confidence")
	if !cmd.Flags().Changed("min-detection-confidence") && viper.IsSet("runner.min_detection_confidence") {
		minConfidence = viper.GetFloat64("runner.min_detection_confidence")
	}

	return types.RunnerConfig{
		PythonBin:              pythonBin,
		ModelComplexity:        complexity,
		MinDetectionConfidence: minConfidence,
	}
}

func init() {
	extractCmd.Flags().String("python-bin", "", "interpreter binary for the inference runner (default python3)")
	extractCmd.Flags().Int("model-complexity", 2, "pose model variant: 0 (lite), 1 (full), or 2 (heavy)")
	extractCmd.Flags().Float64("min-detection-confidence", 0.5, "minimum detection confidence threshold")
	extractCmd.Flags().Bool("record", false, "record the extraction outcome to the history database")
	extractCmd.Flags().String("db", "", "history database path (default ~/.cache/posekit/history.db)")

	rootCmd.AddCommand(extractCmd)
}
