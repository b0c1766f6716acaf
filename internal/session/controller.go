// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/nightowl-tui/internal/gemini"
	"github.com/jeranaias/nightowl-tui/internal/history"
)

const (
	// Placeholder is displayed while a request is outstanding.
	Placeholder = "Generating your answer..."

	// ErrorAnswer is displayed for every kind of request failure.
	ErrorAnswer = "An error occurred. Please try again."
)

var (
	// ErrBusy is returned by Begin while a request is outstanding.
	ErrBusy = errors.New("a request is already in progress")

	// ErrEmptyQuestion is returned by Begin for a blank question.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrClosed is returned by Begin after Close.
	ErrClosed = errors.New("session is closed")
)

// Asker answers a single question.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Request is a started request.
type Request struct {
	ID        string
	Question  string
	StartedAt time.Time

	ctx   context.Context
	epoch uint64
}

// Result is the outcome of a request.
type Result struct {
	RequestID string
	Question  string
	Answer    string
	Err       error
	Duration  time.Duration
}

// Controller holds the state of one chat window.
type Controller struct {
	mu sync.Mutex

	asker   Asker
	history *history.Store
	log     logrus.FieldLogger

	question   string
	answer     string
	generating bool
	pending    *Request
	closed     bool

	// epoch changes whenever the displayed Q/A is replaced by something
	// other than the pending request, so its completion knows to leave the
	// display alone.
	epoch uint64

	cancelMgr *cancelManager
}

// NewController returns an idle controller with an empty question and
// answer.
func NewController(asker Asker, hist *history.Store, log logrus.FieldLogger) *Controller {
	if hist == nil {
		hist = history.New(0)
	}
	return &Controller{
		asker:     asker,
		history:   hist,
		log:       log.WithField("component", "session"),
		cancelMgr: newCancelManager(),
	}
}

// =============================================================================
// STATE
// =============================================================================

// Question returns the current input text.
func (c *Controller) Question() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.question
}

// SetQuestion replaces the input text.
func (c *Controller) SetQuestion(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.question = q
}

// Answer returns the displayed answer.
func (c *Controller) Answer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.answer
}

// Generating reports whether a request is outstanding.
func (c *Controller) Generating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generating
}

// History returns the history store.
func (c *Controller) History() *history.Store {
	return c.history
}

// =============================================================================
// REQUEST LIFECYCLE
// =============================================================================

// Begin starts a request for the current question. The displayed answer
// becomes Placeholder. The question text itself is left in place until the
// request succeeds.
func (c *Controller) Begin() (*Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if c.generating {
		return nil, ErrBusy
	}
	if strings.TrimSpace(c.question) == "" {
		return nil, ErrEmptyQuestion
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancelMgr.set(cancel)

	c.epoch++
	req := &Request{
		ID:        uuid.NewString(),
		Question:  c.question,
		StartedAt: time.Now(),
		ctx:       ctx,
		epoch:     c.epoch,
	}

	c.pending = req
	c.generating = true
	c.answer = Placeholder

	c.log.WithField("request_id", req.ID).Debug("request started")
	return req, nil
}

// Run performs req and blocks until it finishes. It does not touch
// controller state and may run on any goroutine.
func (c *Controller) Run(req *Request) Result {
	ctx := gemini.WithRequestID(req.ctx, req.ID)
	answer, err := c.asker.Ask(ctx, req.Question)
	return Result{
		RequestID: req.ID,
		Question:  req.Question,
		Answer:    answer,
		Err:       err,
		Duration:  time.Since(req.StartedAt),
	}
}

// Complete applies res. It returns false when res belongs to a request that
// is no longer pending, which happens after Close.
func (c *Controller) Complete(res Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := c.log.WithFields(logrus.Fields{
		"request_id":  res.RequestID,
		"duration_ms": res.Duration.Milliseconds(),
	})

	if c.closed || c.pending == nil || c.pending.ID != res.RequestID {
		log.Debug("ignoring stale completion")
		return false
	}

	req := c.pending
	c.pending = nil
	c.generating = false
	c.cancelMgr.cancel()

	// Still showing this request's placeholder.
	current := c.epoch == req.epoch

	if res.Err != nil {
		if gemini.IsCancelled(res.Err) {
			log.WithError(res.Err).Debug("request cancelled")
		} else {
			log.WithError(res.Err).Error("request failed")
		}
		if current {
			c.answer = ErrorAnswer
		}
		return true
	}

	c.history.Append(history.Entry{
		Question: res.Question,
		Answer:   res.Answer,
		AskedAt:  req.StartedAt,
	})
	if current {
		c.answer = res.Answer
		c.question = ""
	}
	log.Debug("request completed")
	return true
}

// Submit sets the question and runs a full request synchronously. The
// returned error is the request error, or a Begin error.
func (c *Controller) Submit(question string) error {
	c.SetQuestion(question)

	req, err := c.Begin()
	if err != nil {
		return err
	}
	res := c.Run(req)
	c.Complete(res)
	return res.Err
}

// SelectHistory displays entry index. It works while a request is
// outstanding and does not cancel it.
func (c *Controller) SelectHistory(index int) error {
	entry, err := c.history.Select(index)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.question = entry.Question
	c.answer = entry.Answer
	c.epoch++
	return nil
}

// Close cancels the outstanding request. Its completion is ignored and
// Begin fails from then on.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cancelMgr.cancel()
	if c.pending != nil {
		c.log.WithField("request_id", c.pending.ID).Debug("request cancelled on close")
	}
	c.pending = nil
	c.generating = false
}
