// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mdx

import (
	"fmt"
	"regexp"
	"strings"
)

// markerPattern matches [IMAGE:description] markers left by the generator
// to request inline illustrations.
var markerPattern = regexp.MustCompile(`\[IMAGE:([^\]]+)\]`)

// Marker is one inline-image request found in generated content.
type Marker struct {
	// Marker is the full matched text, e.g. "[IMAGE:a cozy sauna]".
	Marker string

	// Description is the trimmed illustration description.
	Description string
}

// ParseImageMarkers finds all [IMAGE:description] markers in content.
func ParseImageMarkers(content string) []Marker {
	matches := markerPattern.FindAllStringSubmatch(content, -1)
	markers := make([]Marker, 0, len(matches))
	for _, m := range matches {
		markers = append(markers, Marker{
			Marker:      m[0],
			Description: strings.TrimSpace(m[1]),
		})
	}
	return markers
}

// ReplaceMarkers swaps each marker for a Markdown image pointing at its
// generated file. Markers with no corresponding image are removed.
func ReplaceMarkers(content string, images map[string]string) string {
	return markerPattern.ReplaceAllStringFunc(content, func(marker string) string {
		path, ok := images[marker]
		if !ok || path == "" {
			return ""
		}
		desc := strings.TrimSpace(markerPattern.FindStringSubmatch(marker)[1])
		return fmt.Sprintf("![%s](%s)", desc, ImageURL(path))
	})
}
