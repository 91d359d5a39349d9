// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate produces blog post text through the Gemini API: topic
// suggestions constrained by the history store's brief, and full
// magazine-style posts parsed from delimiter-tagged responses.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/blog-engine/internal/httputil"
)

// geminiAPIBase is the Gemini API base URL. Package-level var for test substitution.
var geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta"

// TextBackend abstracts the generative text API so tests can supply a mock.
type TextBackend interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiBackend calls the Gemini generateContent API.
type GeminiBackend struct {
	APIKey     string
	Model      string
	Client     *http.Client
	MaxRetries int
}

// geminiRequest is the request body for the generateContent endpoint.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// geminiContent is one turn of content in a Gemini request or response.
type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

// geminiPart is a single part of Gemini content.
type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse is the response body from the generateContent endpoint.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends a prompt to the Gemini API and returns the text of
// the first candidate.
func (g *GeminiBackend) GenerateText(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", geminiAPIBase, g.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, g.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Gemini API returned %d: %s", resp.StatusCode, string(body))
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("decoding Gemini response: %w", err)
	}

	if len(gResp.Candidates) == 0 {
		return "", fmt.Errorf("Gemini API returned no candidates")
	}

	for _, part := range gResp.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in Gemini response")
}
