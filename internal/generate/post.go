// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/pdiddy/blog-engine/internal/mdx"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// Request holds the inputs for generating one blog post.
type Request struct {
	Topic    string
	Date     string
	Category string
	Level    string
	MinWords int
	MaxWords int

	// Context is optional additional context injected into the prompt.
	Context string
}

// postTmpl is the full magazine-style generation prompt. The response is
// expected in delimiter-tagged sections (---TITLE--- through ---END---).
var postTmpl = template.Must(template.New("post").Parse(`You are an expert Finnish culture and language guide creating an engaging blog post for people interested in Finland.

## Topic Information
- Topic: {{.Topic}}
- Primary Keyword: "{{.Topic}}" (use this exact phrase strategically)
- Category: {{.CategoryLine}}
- Target Audience: People interested in Finland, culture, travel, and lifestyle (plus language learners)
- Target Level: {{.Level}} (for the language lesson part)
- Publication Date: {{.Date}}
{{if .Context}}
## Additional Context: {{.Context}}
{{end}}
## Blog Post Requirements

Create an engaging, magazine-style blog post that focuses on Finnish culture, lifestyle, people, or tourism. The main content should be in English and very readable. Include a dedicated "Language Corner" for a small lesson.

### 1. TITLE TAG (Critical for SEO)
- Maximum 60 characters (strict!)
- Include the primary keyword near the BEGINNING
- Make it inviting and descriptive

### 2. META DESCRIPTION
- ~105 characters (max 120)
- Active voice, inviting, ends with CTA

### 3. URL SLUG
- 3-5 words, keyword-rich, hyphens

### 4. CONTENT STRUCTURE (Use proper Markdown headings!)
Write {{.MinWords}}-{{.MaxWords}} words with this structure:
- An engaging hook paragraph about the topic
- Two or three H2 sections deep diving into the cultural aspect (70% of the post)
- A "Language Corner / Kielinurkka" H2 section with useful phrases and a small vocabulary table (30%)
- A "Cultural Insight" H2 with a did-you-know fact
- A conclusion and a "References" H2 with 2-3 real links to authoritative sources (YLE, Visit Finland, etc.)

IMPORTANT: Include [IMAGE:description] markers at 2-3 strategic locations in the content.
Place them after major cultural sections or around the Language Corner, NEVER inside tables or lists.
Example: [IMAGE:Finnish family enjoying a traditional sauna experience]

### 5. SEO CONTENT RULES
- Include the primary keyword in: H1, first paragraph, meaningful subheadings
- Use proper H2/H3 headings

### 6. TAGS
- 5-7 tags: topic, "Finnish Culture", "Visit Finland", specific category

### 7. IMAGE PROMPT (for header image)
- Warm, inviting illustration in flat-vector style
- Show the cultural aspect (e.g. sauna, food, landscape), not just text or classroom
- "No text in image"

## Output Format

Provide your response in this EXACT format:

---TITLE---
[Max 60 chars title]

---SLUG---
[slug-here]

---DESCRIPTION---
[~105 chars meta description]

---TAGS---
[tag1, tag2, tag3]

---IMAGE_PROMPT---
[Visual description for header image]

---IMAGE_ALT---
[Alt text with keyword]

---CONTENT---
[Full blog post with ## headings AND [IMAGE:description] markers at 2-3 strategic places]

---END---`))

// sectionHeaderPattern matches the delimiter lines in the model response.
var sectionHeaderPattern = regexp.MustCompile(`---([A-Z_]+)---`)

// Post generates a complete blog post for the request. The response is
// parsed best-effort: a missing title falls back to the topic, a missing
// slug is derived from the topic.
func Post(ctx context.Context, backend TextBackend, req Request) (*types.Post, error) {
	var buf bytes.Buffer
	data := struct {
		Request
		CategoryLine string
	}{Request: req, CategoryLine: req.Category}
	if data.CategoryLine == "" {
		data.CategoryLine = "Finnish Culture"
	}
	if err := postTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering post prompt: %w", err)
	}

	text, err := backend.GenerateText(ctx, buf.String())
	if err != nil {
		return nil, fmt.Errorf("generating post: %w", err)
	}

	sections := parseSections(text)

	post := &types.Post{
		Title:       sections["TITLE"],
		Slug:        sections["SLUG"],
		Description: sections["DESCRIPTION"],
		Tags:        parseTags(sections["TAGS"]),
		ImagePrompt: sections["IMAGE_PROMPT"],
		ImageAlt:    sections["IMAGE_ALT"],
		Content:     sections["CONTENT"],
		Level:       req.Level,
		Category:    req.Category,
		Date:        req.Date,
	}

	if post.Title == "" {
		post.Title = req.Topic
	}
	if post.Slug == "" {
		post.Slug = mdx.Slugify(req.Topic)
	}
	if post.ImageAlt == "" {
		post.ImageAlt = fmt.Sprintf("Illustration for %s", req.Topic)
	}

	return post, nil
}

// parseSections splits a delimiter-tagged response into a map of section
// name to trimmed body. The END section terminates parsing.
func parseSections(text string) map[string]string {
	headers := sectionHeaderPattern.FindAllStringSubmatchIndex(text, -1)
	sections := make(map[string]string, len(headers))

	for i, h := range headers {
		name := text[h[2]:h[3]]
		if name == "END" {
			break
		}
		start := h[1]
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		sections[name] = strings.TrimSpace(text[start:end])
	}
	return sections
}

// parseTags splits a comma-separated tag list, stripping quotes.
func parseTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.Trim(strings.TrimSpace(tag), `"'`)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
