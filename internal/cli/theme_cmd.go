// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/nightowl-tui/internal/logging"
	"github.com/jeranaias/nightowl-tui/internal/prefs"
	"github.com/jeranaias/nightowl-tui/internal/theme"
)

func newThemeCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "theme [show|toggle]",
		Short:     "Show or toggle the saved light/dark theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"show", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "show"
			if len(args) == 1 {
				action = args[0]
			}

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			// No log file for a one-line answer.
			store, err := prefs.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			ts := theme.New(store, cfg.UI.DefaultDark, logging.Discard())
			dark, err := ts.Load()
			if err != nil {
				return err
			}

			switch action {
			case "show":
			case "toggle":
				if dark, err = ts.Toggle(); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown action %q (want show or toggle)", action)
			}

			fmt.Fprintln(cmd.OutOrStdout(), modeName(dark))
			return nil
		},
	}
	return cmd
}

func modeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
