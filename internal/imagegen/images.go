// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imagegen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/blog-engine/internal/mdx"
)

// illustrationStyle is prepended to every image prompt to keep the blog's
// visuals consistent.
const illustrationStyle = `High-quality digital vector art. Flat aesthetic with clean shapes and soft, harmonious colors.
Minimalist and modern.
IMPORTANT: This must be a PURE SCENE illustration only.
DO NOT include any text, letters, captions, annotations, color palettes, style guides, or UI elements.
DO NOT make an infographic. The image must contain ONLY the visual scene described.`

// headerSlugLimit caps the topic slug length used in header image filenames.
const headerSlugLimit = 30

// Generate produces one image for the given description and writes it to
// imagesDir under the given base filename (extension added here).
func Generate(ctx context.Context, backend ImageBackend, description, filename, imagesDir string) (string, error) {
	prompt := fmt.Sprintf(`%s

Image description: %s

Context: A scenic illustration for a blog about Finland.
CONSTRAINT: The image must be a PURE VISUAL SCENE. Do NOT include any text, grammar charts, vocabulary lists, or speech bubbles.`,
		illustrationStyle, description)

	data, err := backend.GenerateImage(ctx, prompt)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return "", fmt.Errorf("creating images directory: %w", err)
	}

	path := filepath.Join(imagesDir, filename+".png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return path, nil
}

// HeaderImage generates the post's header illustration, named
// {date}-header-{slug}. When customPrompt is empty a default description
// is derived from the topic.
func HeaderImage(ctx context.Context, backend ImageBackend, topic, date, customPrompt, imagesDir string) (string, error) {
	description := customPrompt
	if description == "" {
		description = fmt.Sprintf(`A warm, inviting illustration representing %q for a Finnish culture blog. The scene should evoke Finland's culture and lifestyle while being educational and approachable.`, topic)
	}

	slug := mdx.Slugify(topic)
	if len(slug) > headerSlugLimit {
		slug = slug[:headerSlugLimit]
	}
	return Generate(ctx, backend, description, fmt.Sprintf("%s-header-%s", date, slug), imagesDir)
}

// InlineImages generates one image per [IMAGE:...] marker, named
// {date}-{slug}-inline-{n}, and returns the marker-to-path mapping.
// Individual failures are reported on stderr and skipped.
func InlineImages(ctx context.Context, backend ImageBackend, markers []mdx.Marker, date, slug, imagesDir string) map[string]string {
	images := make(map[string]string, len(markers))
	for i, m := range markers {
		filename := fmt.Sprintf("%s-%s-inline-%d", date, slug, i+1)
		path, err := Generate(ctx, backend, m.Description, filename, imagesDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: inline image %d failed: %v\n", i+1, err)
			continue
		}
		images[m.Marker] = path
	}
	return images
}
