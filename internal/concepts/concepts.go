// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package concepts reduces topic titles to canonical keyword themes. The
// themes feed the history store's banned-concept set, which is what keeps
// successive posts from circling the same ground.
package concepts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"
)

// maxKeywords caps how many themes a single topic contributes.
const maxKeywords = 5

// TextBackend generates free text from a prompt.
type TextBackend interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Result is the outcome of one extraction. A degraded result carries no
// keywords and the cause; it is not an error from the caller's point of
// view, because a topic recorded without novelty protection beats a topic
// lost.
type Result struct {
	Keywords []string
	Degraded bool
	Err      error
}

var errEmptyResponse = errors.New("no keywords in response")

// extractionTmpl asks the backend for comma-separated keyword themes.
// The output is consumed as-is; near-duplicate phrasings across calls are
// not reconciled.
var extractionTmpl = template.Must(template.New("extraction").Parse(`Reduce the following blog topic to its 3-5 core keyword themes.

Topic: {{.Topic}}
{{- if .Category}}
Category: {{.Category}}
{{- end}}

Respond with ONLY the keywords as a single comma-separated list of short
lowercase phrases (e.g. "sauna, wellness, tradition"). No other text.`))

// Extractor derives keyword themes for topics via a text backend.
type Extractor struct {
	backend TextBackend
}

// NewExtractor returns an Extractor using the given backend.
func NewExtractor(backend TextBackend) *Extractor {
	return &Extractor{backend: backend}
}

// Extract asks the backend for the topic's keyword themes. Any backend
// failure or unparseable response degrades to an empty result rather than
// propagating.
func (e *Extractor) Extract(ctx context.Context, topic, category string) Result {
	var buf bytes.Buffer
	if err := extractionTmpl.Execute(&buf, struct{ Topic, Category string }{topic, category}); err != nil {
		return Result{Degraded: true, Err: err}
	}

	text, err := e.backend.GenerateText(ctx, buf.String())
	if err != nil {
		return Result{Degraded: true, Err: err}
	}

	keywords := parseKeywords(text)
	if len(keywords) == 0 {
		return Result{Degraded: true, Err: errEmptyResponse}
	}
	return Result{Keywords: keywords}
}

// Concepts implements history.ConceptSource. Degraded extractions are
// reported on stderr and contribute nothing to the banned set.
func (e *Extractor) Concepts(ctx context.Context, topic, category string) []string {
	res := e.Extract(ctx, topic, category)
	if res.Degraded {
		fmt.Fprintf(os.Stderr, "warning: concept extraction degraded for %q: %v\n", topic, res.Err)
		return nil
	}
	return res.Keywords
}

// parseKeywords splits a backend response on commas, lowercasing and
// trimming each token and keeping at most maxKeywords of them.
func parseKeywords(text string) []string {
	var out []string
	for _, token := range strings.Split(text, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		token = strings.Trim(token, `"'.`)
		if token == "" {
			continue
		}
		out = append(out, token)
		if len(out) == maxKeywords {
			break
		}
	}
	return out
}
