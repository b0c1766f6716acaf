// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the question/answer state of one chat window and the
// lifecycle of its single outstanding request.
//
// # Key Types
//
//   - Controller: current question, displayed answer, generating flag and
//     history
//   - Request: a started request, handed to Run
//   - Result: the outcome of Run, handed to Complete
//
// # Usage
//
// In an event loop the three steps are split so that only Run blocks:
//
//	req, err := ctl.Begin()
//	if err != nil {
//	    return // busy, empty or closed
//	}
//	go func() {
//	    results <- ctl.Run(req)
//	}()
//	...
//	ctl.Complete(<-results)
//
// Submit performs all three synchronously for line-oriented callers.
//
// # Rules
//
// At most one request is outstanding. A failure shows a fixed message and
// leaves history and the question untouched. Selecting a history entry while
// a request runs replaces what is displayed; the request still completes and
// its answer is still recorded, but it does not overwrite the selection.
package session
