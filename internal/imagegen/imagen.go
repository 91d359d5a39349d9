// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imagegen produces blog illustrations through the Imagen API.
// Image failures are never fatal to a generation run: a post without
// illustrations still ships.
package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/blog-engine/internal/httputil"
)

// imagenAPIBase is the Imagen API base URL. Package-level var for test substitution.
var imagenAPIBase = "https://generativelanguage.googleapis.com/v1beta"

// ImageBackend abstracts the image generation API so tests can supply a mock.
type ImageBackend interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// ImagenBackend calls the Imagen predict API and returns raw image bytes.
type ImagenBackend struct {
	APIKey      string
	Model       string
	AspectRatio string
	Client      *http.Client
	MaxRetries  int
}

// imagenRequest is the request body for the predict endpoint.
type imagenRequest struct {
	Instances  []imagenInstance `json:"instances"`
	Parameters imagenParameters `json:"parameters"`
}

type imagenInstance struct {
	Prompt string `json:"prompt"`
}

type imagenParameters struct {
	SampleCount int    `json:"sampleCount"`
	AspectRatio string `json:"aspectRatio,omitempty"`
}

// imagenResponse is the response body from the predict endpoint.
type imagenResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

// GenerateImage sends a prompt to the Imagen API and returns the decoded
// bytes of the first generated image.
func (b *ImagenBackend) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	reqBody := imagenRequest{
		Instances: []imagenInstance{{Prompt: prompt}},
		Parameters: imagenParameters{
			SampleCount: 1,
			AspectRatio: b.AspectRatio,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:predict", imagenAPIBase, b.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", b.APIKey)

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, b.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("calling Imagen API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Imagen API returned %d: %s", resp.StatusCode, string(body))
	}

	var iResp imagenResponse
	if err := json.NewDecoder(resp.Body).Decode(&iResp); err != nil {
		return nil, fmt.Errorf("decoding Imagen response: %w", err)
	}

	if len(iResp.Predictions) == 0 {
		return nil, fmt.Errorf("Imagen API returned no predictions")
	}

	data, err := base64.StdEncoding.DecodeString(iResp.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding image data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data in Imagen response")
	}
	return data, nil
}
