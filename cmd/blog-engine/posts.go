// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/archive"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Index and search written posts",
	Long: `Posts maintains a local SQLite index over the MDX files the generate
command writes. Use index after a generation run and search to find past
posts by title, description, or body text.`,
}

// --- index subcommand ---

var postsIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index written MDX posts into the archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := archive.NewStore(archiveConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		outputDir := generationConfig(cmd).OutputDir
		summary, err := store.Index(context.Background(), outputDir, os.Stdout)
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d post(s) failed indexing", summary.Failed)
		}
		return nil
	},
}

// --- search subcommand ---

var postsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over indexed posts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := archive.NewStore(archiveConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		results, err := store.Search(context.Background(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printResults(cmd, results)
	},
}

// --- list subcommand ---

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := archive.NewStore(archiveConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		results, err := store.List(context.Background())
		if err != nil {
			return err
		}
		return printResults(cmd, results)
	},
}

func printResults(cmd *cobra.Command, results []archive.SearchResult) error {
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No posts found.")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%s  %-50s  %s\n", r.Date, r.Title, r.Slug)
	}
	return nil
}

func init() {
	postsSearchCmd.Flags().Bool("json", false, "output as JSON")
	postsListCmd.Flags().Bool("json", false, "output as JSON")

	postsCmd.AddCommand(postsIndexCmd)
	postsCmd.AddCommand(postsSearchCmd)
	postsCmd.AddCommand(postsListCmd)
	rootCmd.AddCommand(postsCmd)
}
