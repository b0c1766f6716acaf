// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the full-screen Bubble Tea view of nightowl.
//
// # Layout
//
//	+-------------------------------------------------------+
//	| NightOwl AI                                  dark mode |
//	+--------------+----------------------------------------+
//	| History      | Q: What is 2+2?                        |
//	| 1. What is.. |                                        |
//	|              | 4                                      |
//	+--------------+----------------------------------------+
//	| > question...                                  [Ask]  |
//	+-------------------------------------------------------+
//	 enter ask  tab focus  ctrl+t theme  esc quit
//
// # Message Flow
//
//   - enter in the input: session.Begin, then askCmd runs the request in a
//     tea.Cmd and returns AnswerMsg
//   - AnswerMsg: session.Complete, then the view re-reads session state
//   - ctrl+t: theme store Toggle, then styles and markdown are rebuilt
//   - ctrl+s: history written as Markdown to the export directory
//   - ThemeChangedMsg: a preference written by another process
//
// The session controller owns all question/answer state. The model only
// mirrors it into widgets.
package chat
