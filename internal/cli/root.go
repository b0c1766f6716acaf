// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/nightowl-tui/internal/config"
	"github.com/jeranaias/nightowl-tui/internal/ui/chat"
)

// Version information, set at build time.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Execute runs the command line.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "nightowl",
		Short: "Ask Gemini questions from the terminal",
		Long: `NightOwl AI sends your questions to Google Gemini and renders the
markdown answers. Answers from this run are kept in a history you can
browse, and the light/dark theme is remembered between runs.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.nightowl/config.toml)")
	root.PersistentFlags().StringVar(&flags.model, "model", "", "Gemini model name")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newAskCommand(flags),
		newChatCommand(flags),
		newThemeCommand(flags),
		newConfigCommand(flags),
		newVersionCommand(),
	)
	return root
}

func runTUI(ctx context.Context, cfg *config.Config) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	changes, err := a.theme.Watch(ctx)
	if err != nil {
		a.log.WithError(err).Warn("theme changes from other windows will not be seen")
		changes = nil
	}

	exportDir, err := config.ExportDir()
	if err != nil {
		a.log.WithError(err).Warn("history export disabled")
	}

	m := chat.New(chat.Options{
		Session:      a.session,
		Theme:        a.theme,
		ThemeChanges: changes,
		WordWrap:     cfg.UI.WordWrap,
		ExportDir:    exportDir,
		Log:          a.log,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		a.log.WithError(err).Error("program exited with error")
		return err
	}
	return nil
}
