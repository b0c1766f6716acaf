// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the nightowl packages:
// crash-safe file writes for persisted preferences and width-aware text
// shortening for the history sidebar.
//
//	err := util.AtomicWriteFile(path, data, 0600)
//	label := util.Shorten(entry.Question, 24)
package util
