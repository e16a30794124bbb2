package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hinke/navdeck/internal/prefs"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Print or set the saved colour theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(prefs.Light), string(prefs.Dark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		store, closeStore, err := openPrefs(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx := cmd.Context()
		if len(args) == 0 {
			th, err := prefs.LoadTheme(ctx, store)
			if err != nil {
				return fmt.Errorf("reading theme: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), th)
			return nil
		}

		th, err := prefs.ParseTheme(args[0])
		if err != nil {
			return err
		}
		if err := prefs.SaveTheme(ctx, store, th); err != nil {
			return fmt.Errorf("saving theme: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", th)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
