// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/posekit/internal/history"
	"github.com/pdiddy/posekit/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded extraction outcomes (list, export)",
	Long: `History reads the local SQLite database that extract --record writes.
Nothing is recorded unless --record is given, so this database may not
exist; an empty listing is not an error.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded extractions, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("max-results")
	entries, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no recorded extractions")
		return nil
	}
	for _, e := range entries {
		status := "no pose"
		if e.Detected {
			status = fmt.Sprintf("detected (confidence %.3f, %dx%d)", e.Confidence, e.Width, e.Height)
		} else if e.Error != "" {
			status = e.Error
		}
		fmt.Printf("%s  %s  %s\n", e.RecordedAt.Format("2006-01-02 15:04:05"), e.ImagePath, status)
	}
	return nil
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded extractions as YAML",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("max-results")
	return store.ExportYAML(context.Background(), os.Stdout, limit)
}

// historyConfigFromFlags builds the history config from flags, the config
// file, and the cache-dir default, in that order.
func historyConfigFromFlags(cmd *cobra.Command) types.HistoryConfig {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("history.db_path")
	}
	if dbPath == "" {
		dbPath = filepath.Join(cacheDir(), "history.db")
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.HistoryConfig{DBPath: dbPath, MaxResults: maxResults}
}

func init() {
	for _, cmd := range []*cobra.Command{historyListCmd, historyExportCmd} {
		cmd.Flags().String("db", "", "history database path (default ~/.cache/posekit/history.db)")
		cmd.Flags().Int("max-results", 20, "maximum number of entries")
	}

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
