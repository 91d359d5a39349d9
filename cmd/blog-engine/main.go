// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the blog-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/blog-engine/internal/secrets"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the blog-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "blog-engine",
	Short: "AI-powered blog post generation with topic and date deduplication",
	Long: `blog-engine generates dated MDX blog posts about Finnish culture and
language learning through the Gemini and Imagen APIs.

A durable history store guarantees that no topic or publication date is
reused and feeds a growing banned-concept list back into every generation
request so successive posts diverge. Use the generate command for the full
workflow, topics to inspect or manage history, and posts to index and
search past output.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./blog-engine.yaml or ~/.config/blog-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("blog-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "blog-engine"))
		}
	}

	viper.SetEnvPrefix("BLOG_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// historyConfig resolves the history store settings.
func historyConfig() types.HistoryConfig {
	dataDir := viper.GetString("history.data_dir")
	if dataDir == "" {
		dataDir = "data"
	}
	return types.HistoryConfig{DataDir: dataDir}
}

// generationConfig resolves text generation settings from config and flags.
func generationConfig(cmd *cobra.Command) types.GenerationConfig {
	cfg := types.GenerationConfig{
		AIConfig: types.AIConfig{
			Model:      viper.GetString("generation.model"),
			APIKey:     secretDefault("gemini-api-key", viper.GetString("generation.api_key")),
			MaxRetries: viper.GetInt("generation.max_retries"),
		},
		Level:     viper.GetString("generation.level"),
		MinWords:  viper.GetInt("generation.min_words"),
		MaxWords:  viper.GetInt("generation.max_words"),
		OutputDir: viper.GetString("generation.output_dir"),
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.Model = model
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.MinWords <= 0 {
		cfg.MinWords = 800
	}
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = 1500
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join("public", "blogs")
	}
	return cfg
}

// imageConfig resolves image generation settings.
func imageConfig() types.ImageConfig {
	cfg := types.ImageConfig{
		AIConfig: types.AIConfig{
			Model:      viper.GetString("image.model"),
			APIKey:     secretDefault("gemini-api-key", viper.GetString("image.api_key")),
			MaxRetries: viper.GetInt("image.max_retries"),
		},
		AspectRatio: viper.GetString("image.aspect_ratio"),
		ImagesDir:   viper.GetString("image.images_dir"),
	}
	if cfg.Model == "" {
		cfg.Model = "imagen-4.0-generate-001"
	}
	if cfg.AspectRatio == "" {
		cfg.AspectRatio = "16:9"
	}
	if cfg.ImagesDir == "" {
		cfg.ImagesDir = filepath.Join("public", "blogs", "images")
	}
	return cfg
}

// archiveConfig resolves archive index settings.
func archiveConfig() types.ArchiveConfig {
	cfg := types.ArchiveConfig{
		ArchiveDir: viper.GetString("archive.archive_dir"),
		MaxResults: viper.GetInt("archive.max_results"),
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = filepath.Join("data", "archive")
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
