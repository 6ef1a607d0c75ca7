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

package actor

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/hudagents/actorkit/errors"
	"github.com/hudagents/actorkit/log"
)

// Factory is a repeatable actor constructor. Every call must produce a fresh
// instance with fresh initial state; the supervisor invokes it once at start
// and once per allowed restart. State is never carried across a restart.
type Factory[M any] func() (*Sender[M], *Completion, error)

// StartOption configures a supervised actor.
type StartOption func(*startConfig)

type startConfig struct {
	logger log.Logger
}

// WithLogger sets the logger the supervisor reports restarts and exits to.
// Defaults to log.DiscardLogger.
func WithLogger(logger log.Logger) StartOption {
	return func(cfg *startConfig) {
		cfg.logger = logger
	}
}

// Start invokes the factory once and supervises the resulting actor under
// the given restart policy. It returns a Handle publishing the live sender,
// or the factory's error wrapped in ErrInitFailure; in that case no
// monitoring begins.
//
// A background monitor awaits the actor's termination:
//
//   - A clean exit, either reason, ends supervision permanently. The
//     published sender then points at a closed mailbox and every later send
//     fails with ErrSendFailed, whatever the policy says.
//   - A crash consults the policy against the cumulative restart counter.
//     When allowed, the counter is incremented, the factory re-invoked, and
//     the new sender atomically swapped into the Handle. When disallowed, or
//     when the factory itself fails, supervision ends permanently and the
//     dead sender stays published.
//
// A caller racing a pending restart may still observe ErrSendFailed on the
// dead sender before the swap lands; see Client's WithSendRetry.
func Start[M any](factory Factory[M], policy RestartPolicy, opts ...StartOption) (*Handle[M], error) {
	cfg := &startConfig{logger: log.DiscardLogger}
	for _, opt := range opts {
		opt(cfg)
	}

	sender, completion, err := factory()
	if err != nil {
		return nil, errors.NewErrInitFailure(err)
	}

	handle := &Handle[M]{
		slot: &senderSlot[M]{
			mu:       sync.RWMutex{},
			sender:   sender,
			restarts: atomic.NewUint32(0),
		},
	}

	go monitor(handle, factory, policy, completion, cfg.logger)

	return handle, nil
}

// monitor is the supervisor's watch loop. It is the only writer of the
// handle's sender slot.
func monitor[M any](handle *Handle[M], factory Factory[M], policy RestartPolicy, completion *Completion, logger log.Logger) {
	ctx := context.Background()
	for {
		reason, err := completion.Wait(ctx)
		if err == nil {
			logger.Infof("supervised actor exited cleanly: %s", reason)
			return
		}

		restarts := handle.slot.restarts.Load()
		if !policy.Allows(restarts) {
			logger.Errorf("supervised actor crashed, policy=(%s) forbids restart after %d attempt(s): %v", policy, restarts, err)
			return
		}

		restarts = handle.slot.restarts.Inc()
		logger.Warnf("supervised actor crashed, restart attempt=(%d): %v", restarts, err)

		sender, next, ferr := factory()
		if ferr != nil {
			logger.Errorf("restart factory failed, supervision ends: %v", ferr)
			return
		}

		handle.swap(sender)
		logger.Infof("supervised actor restarted, attempt=(%d)", restarts)
		completion = next
	}
}
