// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/posekit/internal/probe"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Report availability of the pose inference runtime",
	Long: `Diagnose probes the Python interpreter and each module the inference
runner imports, and prints a JSON availability report. It is purely
diagnostic: missing dependencies are reported in the JSON, never as a
process failure, so the exit code is always 0.`,
	Run: runDiagnose,
}

func runDiagnose(cmd *cobra.Command, args []string) {
	pythonBin, _ := cmd.Flags().GetString("python-bin")
	if pythonBin == "" {
		pythonBin = viper.GetString("runner.python_bin")
	}

	report := probe.New(pythonBin).Report()
	if err := printJSON(report); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func init() {
	diagnoseCmd.Flags().String("python-bin", "", "interpreter binary to probe (default python3)")

	rootCmd.AddCommand(diagnoseCmd)
}
