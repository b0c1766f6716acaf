// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/nightowl-tui/internal/session"
	"github.com/jeranaias/nightowl-tui/internal/ui/markdown"
)

// ErrRequestFailed is returned when a question could not be answered. The
// cause is in the log file.
var ErrRequestFailed = errors.New(session.ErrorAnswer)

func newAskCommand(flags *globalFlags) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question and print the answer",
		Example: `  nightowl ask "What is 2+2?"
  nightowl ask --raw explain goroutines > answer.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			question := strings.Join(args, " ")
			if err := a.session.Submit(question); err != nil {
				if errors.Is(err, session.ErrEmptyQuestion) {
					return err
				}
				return ErrRequestFailed
			}

			out := cmd.OutOrStdout()
			answer := a.session.Answer()
			if raw {
				fmt.Fprintln(out, answer)
				return nil
			}

			tty := isTerminalWriter(out)
			width := terminalWidth(out)
			if cfg.UI.WordWrap > 0 {
				width = cfg.UI.WordWrap
			}
			md := markdown.New(markdown.StyleFor(a.theme.IsDark(), tty), width)
			fmt.Fprintln(out, md.Render(answer))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the markdown source instead of rendering it")
	return cmd
}
