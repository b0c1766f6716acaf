// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/nightowl-tui/internal/config"
	"github.com/jeranaias/nightowl-tui/internal/export"
	"github.com/jeranaias/nightowl-tui/internal/session"
	"github.com/jeranaias/nightowl-tui/internal/ui/markdown"
	"github.com/jeranaias/nightowl-tui/internal/ui/styles"
	"github.com/jeranaias/nightowl-tui/internal/util"
)

const chatHelp = `Commands:
  /history           list answered questions
  /show <n>          show entry n
  /export [md|json]  save history to a file
  /theme             toggle light/dark
  /help              this text
  /quit              exit`

// =============================================================================
// LINE INPUT
// =============================================================================

// lineReader reads one line of input per prompt.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	Close()
}

// linerReader provides editing and persistent input history on a terminal.
type linerReader struct {
	line        *liner.State
	historyFile string
}

func newLinerReader() *linerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &linerReader{line: line}
	if dir, err := config.ConfigDir(); err == nil {
		r.historyFile = filepath.Join(dir, "chat_history")
		if f, err := os.Open(r.historyFile); err == nil {
			r.line.ReadHistory(f)
			f.Close()
		}
	}
	return r
}

func (r *linerReader) ReadLine(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

func (r *linerReader) Close() {
	if r.historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(r.historyFile), 0700); err == nil {
			if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
				r.line.WriteHistory(f)
				f.Close()
			}
		}
	}
	r.line.Close()
}

// scanReader reads plain lines, for pipes and tests.
type scanReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (r *scanReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *scanReader) Close() {}

// =============================================================================
// CHAT LOOP
// =============================================================================

// chatLoop is the line-oriented front end over a session.
type chatLoop struct {
	app   *app
	in    lineReader
	out   io.Writer
	tty   bool
	width int
	theme *styles.Theme
	md    *markdown.Renderer
}

func newChatCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat line by line without the full-screen interface",
		Args:  cobra.NoArgs,
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

			out := cmd.OutOrStdout()
			var in lineReader
			if IsTTY() && isTerminalWriter(out) {
				in = newLinerReader()
			} else {
				in = &scanReader{scanner: bufio.NewScanner(cmd.InOrStdin()), out: out}
			}
			defer in.Close()

			loop := newChatLoop(a, in, out)
			return loop.run()
		},
	}
}

func newChatLoop(a *app, in lineReader, out io.Writer) *chatLoop {
	tty := isTerminalWriter(out)
	width := terminalWidth(out)
	if a.cfg.UI.WordWrap > 0 {
		width = a.cfg.UI.WordWrap
	}

	profile := termenv.Ascii
	if tty {
		profile = termenv.NewOutput(os.Stdout).ColorProfile()
	}

	t := styles.NewThemeWithProfile(a.theme.IsDark(), profile)
	return &chatLoop{
		app:   a,
		in:    in,
		out:   out,
		tty:   tty,
		width: width,
		theme: t,
		md:    markdown.New(markdown.StyleFor(t.IsDark, tty), width),
	}
}

func (c *chatLoop) run() error {
	fmt.Fprintln(c.out, c.theme.HeaderTitle.Render("NightOwl AI"))
	fmt.Fprintln(c.out, c.theme.InputHint.Render("Type a question, or /help."))

	for {
		line, err := c.in.ReadLine(c.theme.InputPrompt.Render("> "))
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(c.out)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := c.command(line); quit {
				return nil
			}
			continue
		}
		c.ask(line)
	}
}

// command runs a slash command and reports whether to exit.
func (c *chatLoop) command(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit", "/q":
		return true

	case "/help":
		fmt.Fprintln(c.out, chatHelp)

	case "/history":
		entries := c.app.session.History().Entries()
		if len(entries) == 0 {
			fmt.Fprintln(c.out, c.theme.HistoryEmpty.Render("No questions yet."))
		}
		for i, e := range entries {
			q := util.Shorten(util.SingleLine(e.Question), c.width-6)
			fmt.Fprintf(c.out, "%3d. %s\n", i+1, q)
		}

	case "/show":
		if len(fields) != 2 {
			fmt.Fprintln(c.out, "usage: /show <n>")
			return false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintln(c.out, "usage: /show <n>")
			return false
		}
		if err := c.app.session.SelectHistory(n - 1); err != nil {
			fmt.Fprintln(c.out, c.theme.ErrorText.Render(fmt.Sprintf("No entry %d.", n)))
			return false
		}
		fmt.Fprintln(c.out, c.theme.QuestionLabel.Render("Q: ")+c.app.session.Question())
		c.printAnswer(c.app.session.Answer())

	case "/export":
		format := ""
		if len(fields) > 1 {
			format = fields[1]
		}
		c.export(format)

	case "/theme":
		dark, err := c.app.theme.Toggle()
		if err != nil {
			fmt.Fprintln(c.out, c.theme.ErrorText.Render("Could not save theme preference."))
			return false
		}
		c.theme = styles.NewThemeWithProfile(dark, c.theme.ColorProfile)
		c.md.SetStyle(markdown.StyleFor(dark, c.tty))
		fmt.Fprintf(c.out, "Theme: %s\n", c.theme.ModeLabel())

	default:
		fmt.Fprintf(c.out, "Unknown command %s. Type /help.\n", fields[0])
	}
	return false
}

func (c *chatLoop) export(format string) {
	exporter, err := export.ForFormat(format)
	if err != nil {
		fmt.Fprintln(c.out, c.theme.ErrorText.Render(err.Error()))
		return
	}
	dir, err := config.ExportDir()
	if err != nil {
		fmt.Fprintln(c.out, c.theme.ErrorText.Render(err.Error()))
		return
	}

	path, err := export.ToFile(c.app.session.History().Entries(), exporter, dir)
	switch {
	case errors.Is(err, export.ErrNothingToExport):
		fmt.Fprintln(c.out, c.theme.HistoryEmpty.Render("No questions yet."))
	case err != nil:
		c.app.log.WithError(err).Error("history export failed")
		fmt.Fprintln(c.out, c.theme.ErrorText.Render("Could not export history."))
	default:
		fmt.Fprintf(c.out, "Exported to %s\n", path)
	}
}

func (c *chatLoop) ask(question string) {
	fmt.Fprintln(c.out, c.theme.Placeholder.Render(session.Placeholder))

	if err := c.app.session.Submit(question); err != nil {
		fmt.Fprintln(c.out, c.theme.ErrorText.Render(session.ErrorAnswer))
		return
	}
	c.printAnswer(c.app.session.Answer())
}

func (c *chatLoop) printAnswer(answer string) {
	fmt.Fprintln(c.out, c.md.Render(answer))
	fmt.Fprintln(c.out)
}
