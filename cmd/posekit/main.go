// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the posekit CLI. posekit is invoked
// as a subprocess by an orchestrating application; the diagnose and
// extract commands print exactly one JSON object on stdout, so their
// human-readable output goes to stderr.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the posekit CLI.
var rootCmd = &cobra.Command{
	Use:   "posekit",
	Short: "Single-image human pose keypoint extraction",
	Long: `posekit extracts 33-point body pose landmarks from a single image and
reports them as one line of JSON on stdout. It is designed to be invoked
as a subprocess: the caller parses stdout and inspects the exit code.

Use diagnose to verify the inference runtime, extract to process an
image, and fetch-model to pre-download the pose model asset.`,

	// stdout carries the JSON contract; cobra must not write errors or
	// usage text around it.
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./posekit.yaml or ~/.config/posekit/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("posekit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "posekit"))
		}
	}

	viper.SetEnvPrefix("POSEKIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// printJSON writes v to stdout as a single line of JSON. The extraction
// contract allows no trailing content on the line beyond the newline.
func printJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}

// cacheDir returns the default directory for posekit's model assets and
// history database.
func cacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".posekit"
	}
	return filepath.Join(home, ".cache", "posekit")
}

// run executes the root command, reporting any error on stderr. stdout is
// reserved for the JSON contract, so errors never go there; cobra's own
// error printing is silenced for the same reason.
func run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
