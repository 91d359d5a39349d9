// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history tracks which topics and publication dates have already
// been consumed, and accumulates the banned-concept set that steers the
// generator away from themes it has covered before.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pdiddy/blog-engine/pkg/types"
)

const (
	topicsFile = "topics_history.json"
	datesFile  = "dates_used.json"
)

// ErrDatesExhausted is returned when no free publication date exists within
// the bounded forward search window.
var ErrDatesExhausted = errors.New("no available dates found in the next year")

// ConceptSource reduces a topic to a small set of lowercase keyword themes.
// Implementations must not fail: a degraded extraction returns an empty
// slice so that recording a topic never blocks on the generative backend.
type ConceptSource interface {
	Concepts(ctx context.Context, topic, category string) []string
}

// TopicDetail holds everything stored about a recorded topic except the
// topic string itself.
type TopicDetail struct {
	// Date is the publication date in YYYY-MM-DD form.
	Date string `json:"date"`

	// Category is the category label chosen at first recording, if any.
	Category string `json:"category"`

	// Concepts are the keyword themes derived at first recording.
	// They are never recomputed for an existing topic.
	Concepts []string `json:"concepts"`

	// Metadata carries caller-supplied annotations (rendered title, tags).
	// The store never reads it back.
	Metadata map[string]any `json:"metadata"`

	// RecordedAt is the insertion timestamp, informational only.
	RecordedAt time.Time `json:"recorded_at"`
}

// TopicRecord pairs a topic string with its stored detail, for listing.
type TopicRecord struct {
	Topic string `json:"topic"`
	TopicDetail
}

// topicsDocument is the on-disk shape of topics_history.json.
type topicsDocument struct {
	UsedTopics   []string               `json:"used_topics"`
	TopicDetails map[string]TopicDetail `json:"topic_details"`
}

// datesDocument is the on-disk shape of dates_used.json. Dates are kept
// sorted; this file is the single source of truth for date uniqueness.
type datesDocument struct {
	Dates []string `json:"dates"`
}

// Store is the durable topic/date history. It is not safe for concurrent
// multi-process writers: the two JSON documents are rewritten in full on
// every mutation with no locking, which is acceptable for a
// single-operator batch tool.
type Store struct {
	topicsPath string
	datesPath  string
	source     ConceptSource

	topics topicsDocument
	dates  datesDocument

	now func() time.Time
}

// NewStore opens the history store in cfg.DataDir, creating the directory
// and empty in-memory structures when no prior state exists. A document
// that exists but does not parse is an unrecoverable error.
func NewStore(cfg types.HistoryConfig, source ConceptSource) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	s := &Store{
		topicsPath: filepath.Join(cfg.DataDir, topicsFile),
		datesPath:  filepath.Join(cfg.DataDir, datesFile),
		source:     source,
		now:        time.Now,
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads both documents, initializing empty structures for missing files.
func (s *Store) load() error {
	s.topics = topicsDocument{
		UsedTopics:   []string{},
		TopicDetails: map[string]TopicDetail{},
	}
	s.dates = datesDocument{Dates: []string{}}

	if err := readDocument(s.topicsPath, &s.topics); err != nil {
		return err
	}
	if s.topics.TopicDetails == nil {
		s.topics.TopicDetails = map[string]TopicDetail{}
	}
	return readDocument(s.datesPath, &s.dates)
}

// readDocument unmarshals path into v. A missing file leaves v untouched.
func readDocument(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// persist rewrites both documents in full. A mutation is not committed
// until this returns nil; there is no retry and no rollback of the
// in-memory state on failure.
func (s *Store) persist() error {
	if err := writeDocument(s.topicsPath, &s.topics); err != nil {
		return err
	}
	return writeDocument(s.datesPath, &s.dates)
}

func writeDocument(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// UsedTopics returns all recorded topics in recording order.
func (s *Store) UsedTopics() []string {
	out := make([]string, len(s.topics.UsedTopics))
	copy(out, s.topics.UsedTopics)
	return out
}

// Detail returns the stored detail for a topic.
func (s *Store) Detail(topic string) (TopicDetail, bool) {
	d, ok := s.topics.TopicDetails[topic]
	return d, ok
}

// Records returns every recorded topic with its detail, in recording order.
func (s *Store) Records() []TopicRecord {
	out := make([]TopicRecord, 0, len(s.topics.UsedTopics))
	for _, topic := range s.topics.UsedTopics {
		out = append(out, TopicRecord{Topic: topic, TopicDetail: s.topics.TopicDetails[topic]})
	}
	return out
}

// IsDateUsed reports whether a publication date is already taken.
func (s *Store) IsDateUsed(date string) bool {
	i := sort.SearchStrings(s.dates.Dates, date)
	return i < len(s.dates.Dates) && s.dates.Dates[i] == date
}

// UsedDates returns the date ledger in sorted order.
func (s *Store) UsedDates() []string {
	out := make([]string, len(s.dates.Dates))
	copy(out, s.dates.Dates)
	return out
}

// BannedConcepts returns the union of concepts across all recorded topics,
// sorted and deduplicated. The set only grows as topics are recorded; it
// shrinks only through Clear.
func (s *Store) BannedConcepts() []string {
	seen := map[string]bool{}
	for _, d := range s.topics.TopicDetails {
		for _, c := range d.Concepts {
			seen[c] = true
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Record marks a topic as used on the given date and persists the store
// before returning. For a new topic the concept source is consulted once
// and the resulting keywords become part of the banned-concept set
// permanently. Re-recording an existing topic never touches its concepts
// or category; the date still enters the ledger, and metadata, date, and
// the recording timestamp are refreshed.
func (s *Store) Record(ctx context.Context, topic, date, category string, metadata map[string]any) error {
	detail, exists := s.topics.TopicDetails[topic]
	if !exists {
		s.topics.UsedTopics = append(s.topics.UsedTopics, topic)
		detail = TopicDetail{Category: category, Concepts: []string{}}
		if s.source != nil {
			if concepts := s.source.Concepts(ctx, topic, category); concepts != nil {
				detail.Concepts = concepts
			}
		}
	}

	detail.Date = date
	if metadata == nil {
		metadata = map[string]any{}
	}
	detail.Metadata = metadata
	detail.RecordedAt = s.now()
	s.topics.TopicDetails[topic] = detail

	s.insertDate(date)
	return s.persist()
}

// insertDate adds date to the ledger if absent, keeping it sorted.
func (s *Store) insertDate(date string) {
	i := sort.SearchStrings(s.dates.Dates, date)
	if i < len(s.dates.Dates) && s.dates.Dates[i] == date {
		return
	}
	s.dates.Dates = append(s.dates.Dates, "")
	copy(s.dates.Dates[i+1:], s.dates.Dates[i:])
	s.dates.Dates[i] = date
}

// Clear wipes all topic and date history and persists immediately.
func (s *Store) Clear() error {
	s.topics = topicsDocument{
		UsedTopics:   []string{},
		TopicDetails: map[string]TopicDetail{},
	}
	s.dates = datesDocument{Dates: []string{}}
	return s.persist()
}
