// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package concepts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBackend returns a canned response or error.
type mockBackend struct {
	response string
	err      error
	prompts  []string
}

func (m *mockBackend) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.response, m.err
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     []string
		degraded bool
	}{
		{
			name:     "clean comma list",
			response: "sauna, löyly, wellness",
			want:     []string{"sauna", "löyly", "wellness"},
		},
		{
			name:     "mixed case and quoting",
			response: ` "Sauna", LÖYLY, 'Wellness'.`,
			want:     []string{"sauna", "löyly", "wellness"},
		},
		{
			name:     "truncates to five keywords",
			response: "a, b, c, d, e, f, g",
			want:     []string{"a", "b", "c", "d", "e"},
		},
		{
			name:     "transport error degrades",
			err:      errors.New("connection refused"),
			degraded: true,
		},
		{
			name:     "empty response degrades",
			response: "   ",
			degraded: true,
		},
		{
			name:     "all-separator response degrades",
			response: ", , ,",
			degraded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(&mockBackend{response: tt.response, err: tt.err})
			res := e.Extract(context.Background(), "Sauna Culture", "Sauna Culture")

			if tt.degraded {
				assert.True(t, res.Degraded)
				assert.Empty(t, res.Keywords)
				assert.Error(t, res.Err)
				return
			}
			assert.False(t, res.Degraded)
			assert.Equal(t, tt.want, res.Keywords)
		})
	}
}

func TestExtractPromptMentionsTopicAndCategory(t *testing.T) {
	backend := &mockBackend{response: "sauna"}
	e := NewExtractor(backend)

	e.Extract(context.Background(), "Why Finns Love Sauna", "Sauna Culture")

	require.Len(t, backend.prompts, 1)
	assert.Contains(t, backend.prompts[0], "Why Finns Love Sauna")
	assert.Contains(t, backend.prompts[0], "Sauna Culture")
}

func TestExtractPromptOmitsEmptyCategory(t *testing.T) {
	backend := &mockBackend{response: "sauna"}
	e := NewExtractor(backend)

	e.Extract(context.Background(), "Why Finns Love Sauna", "")

	require.Len(t, backend.prompts, 1)
	assert.NotContains(t, backend.prompts[0], "Category:")
}

func TestConceptsDegradedReturnsNil(t *testing.T) {
	e := NewExtractor(&mockBackend{err: errors.New("timeout")})
	assert.Nil(t, e.Concepts(context.Background(), "X", ""))
}

func TestConceptsOkReturnsKeywords(t *testing.T) {
	e := NewExtractor(&mockBackend{response: "a, b"})
	assert.Equal(t, []string{"a", "b"}, e.Concepts(context.Background(), "X", ""))
}
