// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/concepts"
	"github.com/pdiddy/blog-engine/internal/generate"
	"github.com/pdiddy/blog-engine/internal/history"
	"github.com/pdiddy/blog-engine/internal/imagegen"
	"github.com/pdiddy/blog-engine/internal/mdx"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one or more blog posts",
	Long: `Generate runs the full pipeline for each requested day: pick the next
free publication date, ask the AI for a topic that avoids every banned
concept, generate the post and its illustrations, write the MDX file, and
record the topic and date in the history store.

A post's topic and date are recorded only after the MDX write succeeds, so
an aborted run never consumes a date.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("date", "d", "", "target date (YYYY-MM-DD); defaults to next available date")
	generateCmd.Flags().StringP("topic", "t", "", "force a specific topic instead of AI selection")
	generateCmd.Flags().IntP("days", "n", 1, "number of posts to generate (consecutive days)")
	generateCmd.Flags().StringP("level", "l", "A1-A2", "language level for the Language Corner (A1, A2, or A1-A2)")
	generateCmd.Flags().Bool("no-image", false, "skip image generation")
	generateCmd.Flags().Bool("dry-run", false, "preview without saving files or recording history")
	generateCmd.Flags().String("model", "", "AI model identifier for text generation")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dateFlag, _ := cmd.Flags().GetString("date")
	forcedTopic, _ := cmd.Flags().GetString("topic")
	days, _ := cmd.Flags().GetInt("days")
	level, _ := cmd.Flags().GetString("level")
	noImage, _ := cmd.Flags().GetBool("no-image")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	ctx := context.Background()

	genCfg := generationConfig(cmd)
	if !cmd.Flags().Changed("level") && genCfg.Level != "" {
		level = genCfg.Level
	}
	backend := &generate.GeminiBackend{
		APIKey:     genCfg.APIKey,
		Model:      genCfg.Model,
		MaxRetries: genCfg.MaxRetries,
	}

	store, err := history.NewStore(historyConfig(), concepts.NewExtractor(backend))
	if err != nil {
		return err
	}

	var start time.Time
	if dateFlag != "" {
		start, err = time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return fmt.Errorf("invalid date %q: use YYYY-MM-DD", dateFlag)
		}
	} else {
		next, err := store.NextAvailableDate(time.Time{})
		if err != nil {
			return err
		}
		start, _ = time.Parse("2006-01-02", next)
	}

	fmt.Printf("Generating %d post(s) starting from %s (level %s)\n",
		days, start.Format("2006-01-02"), level)
	if dryRun {
		fmt.Println("Dry run: nothing will be saved.")
	}

	type written struct {
		date, title, file string
	}
	var posts []written

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")

		if store.IsDateUsed(date) {
			fmt.Printf("skipping %s: already has a post\n", date)
			continue
		}

		fmt.Printf("\n--- %s (%d/%d) ---\n", date, i+1, days)

		var topic, category string
		if forcedTopic != "" && i == 0 {
			topic = forcedTopic
			fmt.Printf("topic (forced): %s\n", topic)
		} else {
			suggestion, err := generate.SuggestTopic(ctx, backend, store)
			if err != nil {
				return err
			}
			topic = suggestion.Topic
			category = suggestion.Category
			fmt.Printf("topic: %s\ncategory: %s\n", topic, category)
			if suggestion.Brief != "" {
				fmt.Printf("brief: %s\n", suggestion.Brief)
			}
		}

		post, err := generate.Post(ctx, backend, generate.Request{
			Topic:    topic,
			Date:     date,
			Category: category,
			Level:    level,
			MinWords: genCfg.MinWords,
			MaxWords: genCfg.MaxWords,
		})
		if err != nil {
			return err
		}
		fmt.Printf("title: %s\n", post.Title)

		var headerImage string
		inlineImages := map[string]string{}
		if !noImage && !dryRun {
			imgCfg := imageConfig()
			imgBackend := &imagegen.ImagenBackend{
				APIKey:      imgCfg.APIKey,
				Model:       imgCfg.Model,
				AspectRatio: imgCfg.AspectRatio,
				MaxRetries:  imgCfg.MaxRetries,
			}

			headerImage, err = imagegen.HeaderImage(ctx, imgBackend, topic, date, post.ImagePrompt, imgCfg.ImagesDir)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: header image failed, continuing without it: %v\n", err)
				headerImage = ""
			}

			markers := mdx.ParseImageMarkers(post.Content)
			if len(markers) > 0 {
				inlineImages = imagegen.InlineImages(ctx, imgBackend, markers, date, post.Slug, imgCfg.ImagesDir)
				fmt.Printf("generated %d/%d inline images\n", len(inlineImages), len(markers))
			}
		}

		if dryRun {
			fmt.Printf("\n%s\n%s\n\n%s\n", post.Title, post.Description, post.Content)
			continue
		}

		path, err := mdx.WritePost(post, headerImage, inlineImages, genCfg.OutputDir)
		if err != nil {
			return err
		}
		fmt.Printf("saved %s\n", path)

		err = store.Record(ctx, topic, date, category, map[string]any{
			"title": post.Title,
			"level": level,
			"tags":  post.Tags,
		})
		if err != nil {
			return err
		}

		posts = append(posts, written{date: date, title: post.Title, file: path})
	}

	fmt.Printf("\nGenerated %d post(s).\n", len(posts))
	for _, p := range posts {
		fmt.Printf("  %s  %s\n    %s\n", p.date, p.title, p.file)
	}
	return nil
}
