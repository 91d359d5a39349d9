// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gemini-2.0-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// HistoryConfig holds settings for the topic/date history store.
type HistoryConfig struct {
	// DataDir is the directory holding topics_history.json and dates_used.json.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// GenerationConfig holds settings for blog post text generation.
type GenerationConfig struct {
	AIConfig `yaml:",inline"`

	// Level is the target language level for the Language Corner (e.g. "A1-A2").
	Level string `json:"level" yaml:"level"`

	// MinWords and MaxWords bound the requested post length.
	MinWords int `json:"min_words" yaml:"min_words"`
	MaxWords int `json:"max_words" yaml:"max_words"`

	// OutputDir is the directory for written MDX posts (e.g. "public/blogs").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// ImageConfig holds settings for illustration generation.
type ImageConfig struct {
	AIConfig `yaml:",inline"`

	// AspectRatio is the requested image aspect ratio (e.g. "16:9").
	AspectRatio string `json:"aspect_ratio" yaml:"aspect_ratio"`

	// ImagesDir is the directory for generated images (e.g. "public/blogs/images").
	ImagesDir string `json:"images_dir" yaml:"images_dir"`
}

// ArchiveConfig holds settings for the post archive index.
type ArchiveConfig struct {
	// ArchiveDir is the directory holding the SQLite index (e.g. "data/archive").
	ArchiveDir string `json:"archive_dir" yaml:"archive_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	History    HistoryConfig    `json:"history" yaml:"history"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
	Image      ImageConfig      `json:"image" yaml:"image"`
	Archive    ArchiveConfig    `json:"archive" yaml:"archive"`
}
