package prefs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"sqlite": func(t *testing.T) Store { return openTestStore(t) },
		"memory": func(*testing.T) Store { return NewMemoryStore() },
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			_, ok, err := s.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set(ctx, "theme", "dark"))
			require.NoError(t, s.Set(ctx, "theme", "light"))

			v, ok, err := s.Get(ctx, "theme")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "light", v)
		})
	}
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())
	require.NoError(t, SaveTheme(ctx, s, Dark))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	theme, err := LoadTheme(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, Dark, theme)
}

func TestLoadThemeDefaults(t *testing.T) {
	ctx := context.Background()

	s := NewMemoryStore()
	theme, err := LoadTheme(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, Light, theme)

	require.NoError(t, s.Set(ctx, ThemeKey, "sepia"))
	theme, err = LoadTheme(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, Light, theme)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("disk on fire")
}

func TestLoadThemeStoreError(t *testing.T) {
	theme, err := LoadTheme(context.Background(), failingStore{})
	assert.Error(t, err)
	assert.Equal(t, Light, theme)
}

func TestThemeToggleAndParse(t *testing.T) {
	assert.Equal(t, Dark, Light.Toggle())
	assert.Equal(t, Light, Dark.Toggle())

	th, err := ParseTheme("dark")
	require.NoError(t, err)
	assert.Equal(t, Dark, th)

	_, err = ParseTheme("Dark")
	assert.Error(t, err)
}
