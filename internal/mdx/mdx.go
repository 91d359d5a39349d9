// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mdx serializes generated posts into MDX files with YAML
// frontmatter and JSON-LD Article schema markup.
package mdx

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/blog-engine/pkg/types"
)

const (
	// author is the byline written into every post.
	author = "Kielo Finnish"

	// imageURLPrefix is where post images are served from.
	imageURLPrefix = "/blogs/images/"
)

// Frontmatter is the YAML frontmatter block of an MDX post.
type Frontmatter struct {
	Title        string   `yaml:"title"`
	Date         string   `yaml:"date"`
	Description  string   `yaml:"description"`
	Slug         string   `yaml:"slug"`
	Level        string   `yaml:"level"`
	Category     string   `yaml:"category"`
	Tags         []string `yaml:"tags"`
	Image        string   `yaml:"image"`
	Author       string   `yaml:"author"`
	Draft        bool     `yaml:"draft"`
	SchemaMarkup string   `yaml:"schemaMarkup,omitempty"`
}

// articleSchema is the JSON-LD Article structure embedded in frontmatter
// as a single-line JSON string, to be injected into <head> by the site.
type articleSchema struct {
	Context       string         `json:"@context"`
	Type          string         `json:"@type"`
	Headline      string         `json:"headline"`
	Description   string         `json:"description"`
	DatePublished string         `json:"datePublished"`
	DateModified  string         `json:"dateModified"`
	Author        schemaPerson   `json:"author"`
	Publisher     schemaOrg      `json:"publisher"`
	MainEntity    schemaWebPage  `json:"mainEntityOfPage"`
	Image         string         `json:"image,omitempty"`
}

type schemaPerson struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type schemaOrg struct {
	Type string     `json:"@type"`
	Name string     `json:"name"`
	Logo schemaLogo `json:"logo"`
}

type schemaLogo struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type schemaWebPage struct {
	Type string `json:"@type"`
}

// SchemaMarkup renders the JSON-LD Article schema for a post as a
// single-line JSON string.
func SchemaMarkup(post *types.Post, imageURL string) (string, error) {
	schema := articleSchema{
		Context:       "https://schema.org",
		Type:          "Article",
		Headline:      post.Title,
		Description:   post.Description,
		DatePublished: post.Date,
		DateModified:  post.Date,
		Author:        schemaPerson{Type: "Person", Name: author},
		Publisher: schemaOrg{
			Type: "Organization",
			Name: "Kielo",
			Logo: schemaLogo{Type: "ImageObject", URL: "https://kielo.io/logo.png"},
		},
		MainEntity: schemaWebPage{Type: "WebPage"},
		Image:      imageURL,
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("encoding schema markup: %w", err)
	}
	return string(data), nil
}

// ImageURL converts a local image path into its served URL.
func ImageURL(imagePath string) string {
	if imagePath == "" {
		return ""
	}
	return imageURLPrefix + filepath.Base(imagePath)
}

// WritePost renders a post to outputDir/{date}-{slug}.mdx. headerImage is
// the local path of the header illustration (empty when none was
// generated); inlineImages maps [IMAGE:...] markers to local image paths
// and markers without a mapping are dropped from the content.
func WritePost(post *types.Post, headerImage string, inlineImages map[string]string, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	imageURL := ImageURL(headerImage)
	schemaJSON, err := SchemaMarkup(post, imageURL)
	if err != nil {
		return "", err
	}

	fm := Frontmatter{
		Title:        post.Title,
		Date:         post.Date,
		Description:  post.Description,
		Slug:         post.Slug,
		Level:        post.Level,
		Category:     post.Category,
		Tags:         post.Tags,
		Image:        imageURL,
		Author:       author,
		Draft:        false,
		SchemaMarkup: schemaJSON,
	}

	fmBytes, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}

	content := ReplaceMarkers(post.Content, inlineImages)

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fmBytes)
	b.WriteString("---\n\n")
	b.WriteString(content)
	b.WriteString("\n")

	path := filepath.Join(outputDir, fmt.Sprintf("%s-%s.mdx", post.Date, post.Slug))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return path, nil
}

// ParseFrontmatter reads the YAML frontmatter block from an MDX file's
// contents, returning the frontmatter and the body after it.
func ParseFrontmatter(data []byte) (Frontmatter, string, error) {
	text := string(data)
	if !strings.HasPrefix(text, "---\n") {
		return Frontmatter{}, "", fmt.Errorf("missing frontmatter delimiter")
	}
	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return Frontmatter{}, "", fmt.Errorf("unterminated frontmatter")
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return Frontmatter{}, "", fmt.Errorf("parsing frontmatter: %w", err)
	}

	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return fm, strings.TrimSpace(body), nil
}

// slugPattern matches runs of characters that are not slug-safe.
var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title into a URL-friendly slug.
func Slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
