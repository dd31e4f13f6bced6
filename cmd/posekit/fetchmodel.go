// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/posekit/internal/fetch"
	"github.com/pdiddy/posekit/pkg/types"
)

var fetchModelCmd = &cobra.Command{
	Use:   "fetch-model",
	Short: "Pre-download the pose model asset",
	Long: `Fetch-model downloads the pose landmarker bundle into the local cache
so the first extraction does not stall while the model runtime fetches
its weights. Running it again is a no-op when the asset is present.`,
	RunE: runFetchModel,
}

func runFetchModel(cmd *cobra.Command, args []string) error {
	cfg := fetchConfigFromFlags(cmd)
	url, _ := cmd.Flags().GetString("url")

	client := &http.Client{Timeout: cfg.Timeout}
	_, _, err := fetch.Model(context.Background(), client, url, cfg, os.Stderr)
	return err
}

// fetchConfigFromFlags builds the fetch config from flags, the config
// file, and the cache-dir default, in that order.
func fetchConfigFromFlags(cmd *cobra.Command) types.FetchConfig {
	modelDir, _ := cmd.Flags().GetString("model-dir")
	if modelDir == "" {
		modelDir = viper.GetString("fetch.model_dir")
	}
	if modelDir == "" {
		modelDir = cacheDir()
	}

	timeout := viper.GetDuration("fetch.timeout")
	if timeout == 0 {
		timeout = 5 * time.Minute
	}

	userAgent := viper.GetString("fetch.user_agent")
	if userAgent == "" {
		userAgent = "posekit/" + version
	}

	return types.FetchConfig{
		Timeout:   timeout,
		UserAgent: userAgent,
		ModelDir:  modelDir,
	}
}

func init() {
	fetchModelCmd.Flags().String("url", "", "model asset URL (default: the heavy pose landmarker bundle)")
	fetchModelCmd.Flags().String("model-dir", "", "destination directory (default ~/.cache/posekit)")

	rootCmd.AddCommand(fetchModelCmd)
}
