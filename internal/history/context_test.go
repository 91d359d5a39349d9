// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextEmptyStore(t *testing.T) {
	store := testStore(t, nil)

	text := store.Context()
	assert.Contains(t, text, "Previously covered topics (0 total)")
	assert.Contains(t, text, "(No topics used yet)")
	assert.Contains(t, text, "Available categories to explore:")
}

func TestContextListsRecentTopicsOnly(t *testing.T) {
	store := testStore(t, nil)
	ctx := context.Background()

	for i := 0; i < 13; i++ {
		topic := fmt.Sprintf("Topic %02d", i)
		date := fmt.Sprintf("2026-01-%02d", i+1)
		require.NoError(t, store.Record(ctx, topic, date, "", nil))
	}

	text := store.Context()
	assert.Contains(t, text, "Previously covered topics (13 total)")
	assert.Contains(t, text, "Topic 12")
	assert.Contains(t, text, "Topic 03")
	assert.NotContains(t, text, "Topic 02", "older topics are summarized, not listed")
	assert.Contains(t, text, "... and 3 more")
}

func TestSuggestionBriefNoneYet(t *testing.T) {
	store := testStore(t, nil)

	brief := store.SuggestionBrief()
	assert.Contains(t, brief, "Banned concepts already covered by past posts: (none yet)")
	assert.Contains(t, brief, "TOPIC:")
	assert.Contains(t, brief, "CATEGORY:")
	assert.Contains(t, brief, "BRIEF:")
}

func TestSuggestionBriefListsBannedConcepts(t *testing.T) {
	source := &fakeSource{concepts: map[string][]string{
		"Sauna Culture": {"sauna", "löyly", "wellness"},
	}}
	store := testStore(t, source)
	require.NoError(t, store.Record(context.Background(), "Sauna Culture", "2026-01-10", "", nil))

	brief := store.SuggestionBrief()
	assert.Contains(t, brief, "löyly, sauna, wellness")
	assert.Contains(t, brief, "Must NOT semantically overlap any of the banned concepts")
}
