// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"fmt"
	"strings"
	"text/template"
)

// recentTopicLimit caps how many past topics the context lists verbatim.
const recentTopicLimit = 10

// Context renders a human/AI readable summary of the topic history and the
// categories still unexplored. Nothing else in the pipeline depends on this
// text; it exists to inform topic selection.
func (s *Store) Context() string {
	used := s.topics.UsedTopics
	available := s.AvailableCategories()

	var b strings.Builder
	b.WriteString("## Topic History\n")
	fmt.Fprintf(&b, "Previously covered topics (%d total):\n", len(used))

	if len(used) > 0 {
		start := 0
		if len(used) > recentTopicLimit {
			start = len(used) - recentTopicLimit
		}
		for _, topic := range used[start:] {
			fmt.Fprintf(&b, "  - %s\n", topic)
		}
		if len(used) > recentTopicLimit {
			fmt.Fprintf(&b, "  ... and %d more\n", len(used)-recentTopicLimit)
		}
	} else {
		b.WriteString("  (No topics used yet)\n")
	}

	b.WriteString("\nAvailable categories to explore:\n")
	for i, cat := range available {
		if i >= recentTopicLimit {
			break
		}
		fmt.Fprintf(&b, "  - %s\n", cat)
	}

	return strings.TrimRight(b.String(), "\n")
}

// suggestionTmpl extends the history context with the banned-concept union
// and the novelty instruction handed to the text backend. This text is the
// only channel through which novelty enforcement reaches the generator;
// compliance is not verified programmatically.
var suggestionTmpl = template.Must(template.New("suggestion").Parse(`{{.Context}}

Banned concepts already covered by past posts: {{.Banned}}

Based on this history, suggest a NEW topic for a Finnish culture and language blog post.

Requirements:
- Target level: A1-A2 (beginner) for the language lesson part
- Must be different from previously covered topics
- Must NOT semantically overlap any of the banned concepts above
- Should be practical and useful for daily life
- Consider these unexplored categories: {{.Categories}}

Provide your topic suggestion in this format:
TOPIC: [Your topic title]
CATEGORY: [Matching category from the list]
BRIEF: [2-3 sentence description of what the post will cover]`))

// SuggestionBrief renders the constrained topic-selection brief: the
// history context, the full banned-concept union, and the instruction that
// the next topic must avoid all of it.
func (s *Store) SuggestionBrief() string {
	banned := s.BannedConcepts()
	bannedLine := "(none yet)"
	if len(banned) > 0 {
		bannedLine = strings.Join(banned, ", ")
	}

	available := s.AvailableCategories()
	if len(available) > 5 {
		available = available[:5]
	}

	var b strings.Builder
	// The template only fails on bad data types, which cannot happen here.
	_ = suggestionTmpl.Execute(&b, struct {
		Context    string
		Banned     string
		Categories string
	}{
		Context:    s.Context(),
		Banned:     bannedLine,
		Categories: strings.Join(available, ", "),
	})
	return b.String()
}
