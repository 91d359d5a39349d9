// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"text/template"

	"github.com/pdiddy/blog-engine/internal/history"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// suggestionTmpl wraps the store's constrained brief with the editorial
// framing and output format instructions.
var suggestionTmpl = template.Must(template.New("suggest").Parse(`You are a creative Finnish culture & lifestyle editor planning blog topics.

{{.Brief}}

SUGGEST A NEW TOPIC from categories like:
- Finnish Culture & Traditions
- Travel & Tourism
- Food & Dining
- Lifestyle & Society
- Nature & Outdoors

The topic should be engaging, like a magazine article title (e.g. "Why Finns Love Sauna", "Top 5 Foods to Try", "Lapland Northern Lights Guide").
AVOID purely grammatical titles like "The Genitive Case".

Remember to output in this exact format:
TOPIC: [topic title - specific and catchy]
CATEGORY: [category name]
BRIEF: [2-3 sentence description of the cultural angle]`))

var (
	topicPattern    = regexp.MustCompile(`(?m)^TOPIC:\s*(.+?)\s*$`)
	categoryPattern = regexp.MustCompile(`(?m)^CATEGORY:\s*(.+?)\s*$`)
	briefPattern    = regexp.MustCompile(`(?m)^BRIEF:\s*(.+?)\s*$`)
)

// SuggestTopic asks the backend for a new topic constrained by the
// history store's suggestion brief. Missing fields in the response fall
// back to defaults rather than failing.
func SuggestTopic(ctx context.Context, backend TextBackend, store *history.Store) (types.TopicSuggestion, error) {
	var buf bytes.Buffer
	if err := suggestionTmpl.Execute(&buf, struct{ Brief string }{store.SuggestionBrief()}); err != nil {
		return types.TopicSuggestion{}, fmt.Errorf("rendering suggestion prompt: %w", err)
	}

	text, err := backend.GenerateText(ctx, buf.String())
	if err != nil {
		return types.TopicSuggestion{}, fmt.Errorf("suggesting topic: %w", err)
	}

	return parseSuggestion(text), nil
}

// parseSuggestion extracts the TOPIC/CATEGORY/BRIEF lines, applying
// defaults for anything the model left out.
func parseSuggestion(text string) types.TopicSuggestion {
	s := types.TopicSuggestion{
		Topic:    "Finnish Basics",
		Category: "General",
	}
	if m := topicPattern.FindStringSubmatch(text); m != nil {
		s.Topic = m[1]
	}
	if m := categoryPattern.FindStringSubmatch(text); m != nil {
		s.Category = m[1]
	}
	if m := briefPattern.FindStringSubmatch(text); m != nil {
		s.Brief = m[1]
	}
	return s
}
