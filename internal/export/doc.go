// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the answered questions of a run to a file.
//
// Supported formats:
//
//   - Markdown (.md): one section per question, answers verbatim
//   - JSON (.json): an array of {question, answer, asked_at}
//
// Usage:
//
//	path, err := export.ToFile(hist.Entries(), export.NewMarkdownExporter(), dir)
package export
