// MIT License
//
// Copyright (c) 2026 Hudagents Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package actor implements a mailbox-based actor execution engine with
// single-actor supervised restart and a timeout-bounded request/reply
// gateway.
//
// An actor is an isolated unit of mutable state with exactly one goroutine
// applying messages to it serially. Spawn creates the actor and hands back a
// producer Sender and a Completion describing how the loop ended. Start
// supervises a factory-created actor, restarting it under a RestartPolicy
// and republishing the live Sender through a Handle. Ask drives the
// request/reply protocol over a Client with a per-client send discipline.
package actor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hudagents/actorkit/errors"
	"github.com/hudagents/actorkit/log"
)

// Control is the signal a handler returns to steer its message loop.
type Control int

const (
	// Continue keeps the loop receiving.
	Continue Control = iota
	// Stop terminates the loop immediately with StoppedByMessage. Messages
	// still queued behind the current one are dropped and their reply slots
	// are never resolved.
	Stop
)

// String returns the string representation of the control signal
func (c Control) String() string {
	switch c {
	case Continue:
		return "Continue"
	case Stop:
		return "Stop"
	default:
		return ""
	}
}

// Handler processes one message with exclusive mutable access to the actor's
// state. Side effects, reply delivery and sleeps included, happen inline; the
// loop does not proceed to the next message until the handler returns. A
// panic inside the handler aborts the loop abnormally, which is what a
// supervising monitor watches for.
type Handler[S, M any] func(ctx context.Context, state *S, msg M) Control

// SpawnOption configures a spawned actor.
type SpawnOption func(*spawnConfig)

type spawnConfig struct {
	logger log.Logger
}

// WithSpawnLogger sets the logger the actor loop reports its lifecycle to.
// Defaults to log.DiscardLogger.
func WithSpawnLogger(logger log.Logger) SpawnOption {
	return func(cfg *spawnConfig) {
		cfg.logger = logger
	}
}

// Spawn creates a bounded mailbox of the given capacity and starts a message
// loop that owns initialState. It returns the producer handle and the loop's
// Completion, or ErrInvalidCapacity when capacity is less than one.
//
// The loop dequeues one message at a time, invokes the handler, and keeps
// receiving until the handler returns Stop (exit StoppedByMessage), every
// Sender clone is released and the buffer drained (exit AllSendersDropped),
// or the handler panics (abnormal termination, visible on the Completion as
// a *errors.PanicError).
func Spawn[S, M any](capacity int, initialState S, handler Handler[S, M], opts ...SpawnOption) (*Sender[M], *Completion, error) {
	if capacity < 1 {
		return nil, nil, errors.ErrInvalidCapacity
	}

	cfg := &spawnConfig{logger: log.DiscardLogger}
	for _, opt := range opts {
		opt(cfg)
	}

	mbox := newMailbox[M](capacity)
	completion := newCompletion()
	id := uuid.NewString()

	go run(id, mbox, completion, initialState, handler, cfg.logger)

	return newSender(mbox), completion, nil
}

// run is the consumer loop. It is the sole goroutine allowed to touch state.
func run[S, M any](id string, mbox *mailbox[M], completion *Completion, state S, handler Handler[S, M], logger log.Logger) {
	ctx := context.Background()

	// the death signal must fire after the recovery below has settled the
	// completion, hence registered first
	defer mbox.markDead()
	defer func() {
		if r := recover(); r != nil {
			err := recoveredError(r)
			logger.Errorf("actor=(%s) crashed: %v", id, err)
			completion.fail(err)
		}
	}()

	logger.Debugf("actor=(%s) started", id)
	for {
		select {
		case msg := <-mbox.buffer:
			if handler(ctx, &state, msg) == Stop {
				logger.Debugf("actor=(%s) exited: %s", id, StoppedByMessage)
				completion.complete(StoppedByMessage)
				return
			}
		case <-mbox.sendersGone:
			// messages buffered before the last release are still delivered
			for {
				select {
				case msg := <-mbox.buffer:
					if handler(ctx, &state, msg) == Stop {
						logger.Debugf("actor=(%s) exited: %s", id, StoppedByMessage)
						completion.complete(StoppedByMessage)
						return
					}
				default:
					logger.Debugf("actor=(%s) exited: %s", id, AllSendersDropped)
					completion.complete(AllSendersDropped)
					return
				}
			}
		}
	}
}

// recoveredError normalizes a recovered panic value into a *errors.PanicError.
func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return errors.NewPanicError(err)
	}
	return errors.NewPanicError(fmt.Errorf("%v", r))
}
