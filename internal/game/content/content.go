// Package content holds the text shown when a target is activated.
package content

import (
	"fmt"
	"sort"
	"strings"
)

// Link is an optional external reference attached to an entry.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Entry is the modal content for one target.
type Entry struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	Link  *Link  `yaml:"link,omitempty"`
}

// Text renders the entry body with its link, if any, as plain text.
func (e Entry) Text() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(e.Body))
	if e.Link != nil && e.Link.URL != "" {
		label := e.Link.Label
		if label == "" {
			label = "Link"
		}
		fmt.Fprintf(&b, "\n\n%s: %s", label, e.Link.URL)
	}
	return b.String()
}

// Catalog maps target ids to entries.
type Catalog map[string]Entry

// Lookup returns the entry for id.
func (c Catalog) Lookup(id string) (Entry, bool) {
	e, ok := c[id]
	return e, ok
}

// IDs returns the catalog keys, sorted.
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Missing returns the ids from want that have no entry.
func (c Catalog) Missing(want []string) []string {
	var out []string
	for _, id := range want {
		if _, ok := c[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// DefaultCatalog returns placeholder entries for the three portfolio targets.
func DefaultCatalog() Catalog {
	return Catalog{
		"aboutme": {
			Title: "About Me",
			Body:  "Hi! I build small interactive things for the web and beyond.",
		},
		"projects": {
			Title: "Projects",
			Body:  "A selection of things I have made.",
			Link:  &Link{Label: "GitHub", URL: "https://github.com/"},
		},
		"hobbies": {
			Title: "Hobbies",
			Body:  "When I am not coding I like to draw, cook, and hike.",
		},
	}
}
