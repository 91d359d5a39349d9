// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TopicSuggestion is the parsed result of an AI topic-selection call.
type TopicSuggestion struct {
	// Topic is the suggested post title (e.g. "Why Finns Love Sauna").
	Topic string `json:"topic" yaml:"topic"`

	// Category is the broader category label the topic falls under.
	Category string `json:"category" yaml:"category"`

	// Brief is a 2-3 sentence description of the intended angle.
	Brief string `json:"brief" yaml:"brief"`
}

// Post holds the generated content and metadata for a single blog post.
type Post struct {
	// Title is the SEO title (at most 60 characters when the model complies).
	Title string `json:"title" yaml:"title"`

	// Slug is the URL slug, derived from the topic when the model omits it.
	Slug string `json:"slug" yaml:"slug"`

	// Description is the meta description (~105 characters).
	Description string `json:"description" yaml:"description"`

	// Tags lists 5-7 topical tags.
	Tags []string `json:"tags" yaml:"tags"`

	// ImagePrompt is the visual description for the header illustration.
	ImagePrompt string `json:"image_prompt" yaml:"image_prompt"`

	// ImageAlt is the alt text for the header image.
	ImageAlt string `json:"image_alt" yaml:"image_alt"`

	// Content is the Markdown body, possibly containing [IMAGE:...] markers.
	Content string `json:"content" yaml:"content"`

	// Level is the language level of the Language Corner section.
	Level string `json:"level" yaml:"level"`

	// Category is the topic category, empty when none was selected.
	Category string `json:"category" yaml:"category"`

	// Date is the publication date in YYYY-MM-DD form.
	Date string `json:"date" yaml:"date"`
}
