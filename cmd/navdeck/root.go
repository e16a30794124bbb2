package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hinke/navdeck/internal/config"
	"github.com/hinke/navdeck/internal/content"
	"github.com/hinke/navdeck/internal/logging"
	"github.com/hinke/navdeck/internal/panel"
	"github.com/hinke/navdeck/internal/prefs"
	"github.com/hinke/navdeck/internal/tui"
)

var (
	cfgFile    string
	closeDelay time.Duration
	latency    time.Duration
	ephemeral  bool
	logStderr  bool
)

var rootCmd = &cobra.Command{
	Use:   "navdeck",
	Short: "Hover-driven navigation bar with dropdown panels in the terminal",
	Long: `navdeck renders a navigation bar whose entries open dropdown panels
when the mouse hovers them. Panels load their content the first time they
open, close shortly after the pointer leaves, and only one is open at a time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep preferences in memory only")
	rootCmd.Flags().DurationVar(&closeDelay, "close-delay", 0, "hover-out close delay (overrides config)")
	rootCmd.Flags().DurationVar(&latency, "latency", 0, "artificial content latency (overrides config)")
	rootCmd.Flags().BoolVar(&logStderr, "log-stderr", false, "log to stderr instead of the log file")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if f := cmd.Flags().Lookup("close-delay"); f != nil && f.Changed {
		cfg.Panels.CloseDelayMS = int(closeDelay / time.Millisecond)
	}
	if f := cmd.Flags().Lookup("latency"); f != nil && f.Changed {
		cfg.Content.LatencyMS = int(latency / time.Millisecond)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (zerolog.Logger, func() error, error) {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(cfg.Log.Level)
	if cfg.Log.Format != "" {
		lc.Format = cfg.Log.Format
	}
	lc = logging.ApplyEnv(lc)

	if logStderr {
		return logging.New(lc, os.Stderr), func() error { return nil }, nil
	}
	return logging.NewWithFile(lc, cfg.Log.File)
}

// openPrefs returns the preferences store and a func releasing it.
func openPrefs(cfg *config.Config) (prefs.Store, func() error, error) {
	if ephemeral {
		return prefs.NewMemoryStore(), func() error { return nil }, nil
	}
	s, err := prefs.OpenSQLite(cfg.Prefs.Path)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}

// contentSource picks the dropdown content collaborators: a remote source
// when configured, else the catalog, delayed when a latency is set.
func contentSource(cfg *config.Config, log zerolog.Logger) (panel.Provider, panel.Fetcher, error) {
	catalog, err := content.Open(cfg.Content.File)
	if err != nil {
		return nil, nil, fmt.Errorf("loading content catalog: %w", err)
	}
	log.Debug().Strs("categories", catalog.Keys()).Msg("content catalog loaded")

	switch {
	case cfg.Content.RemoteURL != "":
		var opts []content.RemoteOption
		if tok := os.Getenv("NAVDECK_CONTENT_TOKEN"); tok != "" {
			opts = append(opts, content.WithToken(tok))
		}
		log.Info().Str("url", cfg.Content.RemoteURL).Msg("using remote content")
		return catalog, content.NewRemote(cfg.Content.RemoteURL, opts...), nil
	case cfg.ContentLatency() > 0:
		log.Info().Dur("latency", cfg.ContentLatency()).Msg("delaying content")
		return catalog, content.Delayed{Provider: catalog, Latency: cfg.ContentLatency()}, nil
	}
	return catalog, nil, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(logging.WithContext(context.Background(), log))
	defer cancel()

	store, closeStore, err := openPrefs(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	th, err := prefs.LoadTheme(ctx, store)
	if err != nil {
		log.Warn().Err(err).Msg("reading theme preference, using light")
	}

	provider, fetcher, err := contentSource(cfg, log)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(cfg, tui.Deps{
		Provider: provider,
		Fetcher:  fetcher,
		Prefs:    store,
		Theme:    th,
		Context:  ctx,
	})
	if err != nil {
		return err
	}

	log.Info().
		Int("triggers", len(cfg.Triggers)).
		Dur("close_delay", cfg.CloseDelay()).
		Str("theme", string(th)).
		Msg("starting")

	p := tea.NewProgram(app)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
