package prefs

import (
	"context"
	"fmt"
)

// ThemeKey is the preference key holding the colour theme.
const ThemeKey = "theme"

// Theme is the colour theme flag.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme validates s.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// LoadTheme reads the stored theme. An absent or unrecognised value yields
// Light; only a store failure is returned as an error, alongside Light.
func LoadTheme(ctx context.Context, s Store) (Theme, error) {
	v, ok, err := s.Get(ctx, ThemeKey)
	if err != nil {
		return Light, err
	}
	if !ok {
		return Light, nil
	}
	t, err := ParseTheme(v)
	if err != nil {
		return Light, nil
	}
	return t, nil
}

// SaveTheme stores t.
func SaveTheme(ctx context.Context, s Store, t Theme) error {
	return s.Set(ctx, ThemeKey, string(t))
}
