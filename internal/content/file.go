package content

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/hinke/navdeck/internal/panel"
)

// catalogFile is the on-disk TOML layout:
//
//	[[category]]
//	key = "services"
//
//	  [[category.links]]
//	  label = "Design"
//	  href = "#design"
//
//	  [[category.cards]]
//	  title = "Design Services"
//	  body = "Handcraft the user experience."
type catalogFile struct {
	Category []categoryFile `toml:"category"`
}

type categoryFile struct {
	Key   string     `toml:"key"`
	Links []linkFile `toml:"links"`
	Cards []cardFile `toml:"cards"`
}

type linkFile struct {
	Label string `toml:"label"`
	Href  string `toml:"href"`
}

type cardFile struct {
	Title   string `toml:"title"`
	Body    string `toml:"body"`
	Pattern string `toml:"pattern"`
}

// LoadFile reads a TOML catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a TOML catalog. Every category needs a key.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing content catalog: %w", err)
	}

	c := NewCatalog()
	for i, cat := range f.Category {
		if cat.Key == "" {
			return nil, fmt.Errorf("content catalog: category %d has no key", i)
		}
		p := panel.Payload{Category: cat.Key}
		for _, l := range cat.Links {
			p.Links = append(p.Links, panel.Link{Label: l.Label, Href: l.Href})
		}
		for _, cd := range cat.Cards {
			p.Cards = append(p.Cards, panel.Card{Title: cd.Title, Body: cd.Body, Pattern: cd.Pattern})
		}
		c.Set(p)
	}
	return c, nil
}

// Open returns the built-in catalog with the file at path merged over it.
// An empty path returns the built-ins alone.
func Open(path string) (*Catalog, error) {
	c := Builtin()
	if path == "" {
		return c, nil
	}
	extra, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	c.Merge(extra)
	return c, nil
}
