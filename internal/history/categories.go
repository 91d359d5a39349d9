// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

// Categories is the fixed list of topic categories for the blog. Coverage
// is measured against this list; it is not enforced as unique per post.
var Categories = []string{
	// Culture & Lifestyle
	"Finnish Culture and Traditions",
	"Travel and Tourism in Finland",
	"Finnish Food and Dining",
	"Nature and Outdoors",
	"Finnish Lifestyle and Society",
	"Sauna Culture",
	"Finnish Design and Arts",
	"Famous Finnish People",
	"Cities and Places to Visit",

	// Practical Life
	"Daily Routines in Finland",
	"Shopping and Money",
	"Work and Professions",
	"Hobbies and Free Time",
	"Home and Living",
	"Health and Well-being",

	// Language Basics
	"Greetings and Introductions",
	"Numbers and Counting",
	"Family and Relationships",
	"Time and Calendar",
	"Weather and Seasons",
	"Basic Grammar Tips",
	"Common Expressions",
}

// AvailableCategories returns the category labels not yet explored. A label
// is excluded only when some past topic title equals it verbatim; the
// comparison is against topic titles, not recorded category fields.
func (s *Store) AvailableCategories() []string {
	used := map[string]bool{}
	for _, topic := range s.topics.UsedTopics {
		used[topic] = true
	}

	var out []string
	for _, cat := range Categories {
		if !used[cat] {
			out = append(out, cat)
		}
	}
	return out
}
