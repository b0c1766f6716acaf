// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jeranaias/nightowl-tui/internal/history"
	"github.com/jeranaias/nightowl-tui/internal/util"
)

// MarkdownExporter writes a Markdown document. Answers are already Markdown
// and are copied unchanged.
type MarkdownExporter struct{}

// NewMarkdownExporter returns a Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export implements Exporter.
func (e *MarkdownExporter) Export(entries []history.Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# NightOwl AI\n")

	for i, entry := range entries {
		fmt.Fprintf(&buf, "\n## %d. %s\n\n", i+1, headingText(entry.Question))
		if !entry.AskedAt.IsZero() {
			fmt.Fprintf(&buf, "*Asked %s*\n\n", entry.AskedAt.Format("2006-01-02 15:04:05"))
		}

		// Multi-line questions do not fit in a heading.
		if strings.Contains(strings.TrimSpace(entry.Question), "\n") {
			for _, line := range strings.Split(strings.TrimSpace(entry.Question), "\n") {
				buf.WriteString("> " + line + "\n")
			}
			buf.WriteString("\n")
		}

		buf.WriteString(strings.TrimSpace(entry.Answer))
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// FileExtension implements Exporter.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

func headingText(question string) string {
	return util.Shorten(util.SingleLine(question), 80)
}
