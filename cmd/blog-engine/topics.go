// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/concepts"
	"github.com/pdiddy/blog-engine/internal/generate"
	"github.com/pdiddy/blog-engine/internal/history"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Inspect and manage the topic/date history",
	Long: `Topics exposes the history store: the topics and dates already
consumed, the banned-concept set steering future generation, and the
categories not yet explored.`,
}

// --- list subcommand ---

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded topics with their details",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		records := store.Records()
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		if len(records) == 0 {
			fmt.Println("No topics recorded yet.")
			return nil
		}
		for _, r := range records {
			category := r.Category
			if category == "" {
				category = "-"
			}
			fmt.Printf("%s  %-40s  %s\n", r.Date, r.Topic, category)
			if len(r.Concepts) > 0 {
				fmt.Printf("            concepts: %s\n", strings.Join(r.Concepts, ", "))
			}
		}
		return nil
	},
}

// --- banned subcommand ---

var topicsBannedCmd = &cobra.Command{
	Use:   "banned",
	Short: "Print the banned-concept set",
	Long: `Banned prints the union of keyword themes across all recorded topics.
The set only grows as topics are recorded; clear is the only way to empty it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		banned := store.BannedConcepts()
		if len(banned) == 0 {
			fmt.Println("(none yet)")
			return nil
		}
		for _, c := range banned {
			fmt.Println(c)
		}
		return nil
	},
}

// --- categories subcommand ---

var topicsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List category labels not yet explored",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		for _, cat := range store.AvailableCategories() {
			fmt.Println(cat)
		}
		return nil
	},
}

// --- dates subcommand ---

var topicsDatesCmd = &cobra.Command{
	Use:   "dates",
	Short: "Show the date ledger and the next available date",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		if check, _ := cmd.Flags().GetString("check"); check != "" {
			if store.IsDateUsed(check) {
				fmt.Printf("%s is used\n", check)
			} else {
				fmt.Printf("%s is free\n", check)
			}
			return nil
		}

		for _, d := range store.UsedDates() {
			fmt.Println(d)
		}
		next, err := store.NextAvailableDate(time.Time{})
		if err != nil {
			return err
		}
		fmt.Printf("next available: %s\n", next)
		return nil
	},
}

// --- context subcommand ---

var topicsContextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the topic-selection context handed to the AI",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		if brief, _ := cmd.Flags().GetBool("brief"); brief {
			fmt.Println(store.SuggestionBrief())
		} else {
			fmt.Println(store.Context())
		}
		return nil
	},
}

// --- suggest subcommand ---

var topicsSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask the AI for a new topic suggestion",
	RunE: func(cmd *cobra.Command, args []string) error {
		genCfg := generationConfig(cmd)
		backend := &generate.GeminiBackend{
			APIKey:     genCfg.APIKey,
			Model:      genCfg.Model,
			MaxRetries: genCfg.MaxRetries,
		}
		store, err := history.NewStore(historyConfig(), concepts.NewExtractor(backend))
		if err != nil {
			return err
		}

		suggestion, err := generate.SuggestTopic(context.Background(), backend, store)
		if err != nil {
			return err
		}
		fmt.Printf("topic: %s\ncategory: %s\nbrief: %s\n",
			suggestion.Topic, suggestion.Category, suggestion.Brief)
		return nil
	},
}

// --- clear subcommand ---

var topicsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all topic and date history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if force, _ := cmd.Flags().GetBool("force"); !force {
			return fmt.Errorf("refusing to clear history without --force")
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("Topic history cleared.")
		return nil
	},
}

// openStore opens the history store without a concept source, for
// read-only and clear operations.
func openStore() (*history.Store, error) {
	return history.NewStore(historyConfig(), nil)
}

func init() {
	topicsListCmd.Flags().Bool("json", false, "output as JSON")
	topicsDatesCmd.Flags().String("check", "", "check whether a specific date (YYYY-MM-DD) is used")
	topicsContextCmd.Flags().Bool("brief", false, "print the full suggestion brief including banned concepts")
	topicsSuggestCmd.Flags().String("model", "", "AI model identifier")
	topicsClearCmd.Flags().Bool("force", false, "confirm clearing all history")

	topicsCmd.AddCommand(topicsListCmd)
	topicsCmd.AddCommand(topicsBannedCmd)
	topicsCmd.AddCommand(topicsCategoriesCmd)
	topicsCmd.AddCommand(topicsDatesCmd)
	topicsCmd.AddCommand(topicsContextCmd)
	topicsCmd.AddCommand(topicsSuggestCmd)
	topicsCmd.AddCommand(topicsClearCmd)
	rootCmd.AddCommand(topicsCmd)
}
