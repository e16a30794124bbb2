// Package content provides the dropdown content sources: a static catalog
// (built in or read from TOML), an HTTP source, and a latency wrapper.
package content

import (
	"sort"

	"github.com/hinke/navdeck/internal/panel"
)

// Catalog is an in-memory map of category key to payload. Unknown keys
// resolve to panel.Fallback.
type Catalog struct {
	entries map[string]panel.Payload
}

var _ panel.Provider = (*Catalog)(nil)

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]panel.Payload)}
}

// Builtin returns the catalog shipped with navdeck.
func Builtin() *Catalog {
	c := NewCatalog()
	c.Set(panel.Payload{
		Category: "services",
		Links: []panel.Link{
			{Label: "Design", Href: "#design"},
			{Label: "Technology", Href: "#technology"},
			{Label: "Marketing", Href: "#marketing"},
		},
		Cards: []panel.Card{
			{Title: "Design Services", Body: "Handcraft the user experience.", Pattern: "pattern-1"},
			{Title: "Technology", Body: "Leverage the power of code.", Pattern: "pattern-2"},
			{Title: "Marketing", Body: "Creative strategies for brands.", Pattern: "pattern-3"},
		},
	})
	c.Set(panel.Payload{
		Category: "about",
		Links: []panel.Link{
			{Label: "About Us", Href: "#about"},
			{Label: "Our Team", Href: "#team"},
			{Label: "Careers", Href: "#careers"},
		},
		Cards: []panel.Card{
			{Title: "Our Story", Pattern: "pattern-1"},
			{Title: "Join Our Team", Body: "Join our team and help us build the future.", Pattern: "pattern-2"},
		},
	})
	return c
}

// Set adds or replaces the payload for p.Category.
func (c *Catalog) Set(p panel.Payload) {
	p.Unavailable = false
	c.entries[p.Category] = p
}

// Merge copies every entry of other over c.
func (c *Catalog) Merge(other *Catalog) {
	for k, p := range other.entries {
		c.entries[k] = p
	}
}

// Lookup implements panel.Provider.
func (c *Catalog) Lookup(key string) panel.Payload {
	if p, ok := c.entries[key]; ok {
		return p
	}
	return panel.Fallback(key)
}

// Has reports whether key has content.
func (c *Catalog) Has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Keys returns the known category keys, sorted.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
