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
)

// ExitReason classifies why an actor's message loop returned cleanly.
type ExitReason int

const (
	// StoppedByMessage indicates the handler explicitly requested Stop.
	StoppedByMessage ExitReason = iota
	// AllSendersDropped indicates the mailbox closed because every sender
	// clone was released while the actor was idle.
	AllSendersDropped
)

// String returns the string representation of the exit reason
func (r ExitReason) String() string {
	switch r {
	case StoppedByMessage:
		return "StoppedByMessage"
	case AllSendersDropped:
		return "AllSendersDropped"
	default:
		return ""
	}
}

// Completion is the readable half of an actor's termination. Exactly one of
// the two outcomes is produced per actor instance: a clean ExitReason, or an
// abnormal *errors.PanicError when the handler panicked. The supervisor's
// monitor waits on it; tests can too.
type Completion struct {
	once   sync.Once
	done   chan struct{}
	reason ExitReason
	err    error
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

func (c *Completion) complete(reason ExitReason) {
	c.once.Do(func() {
		c.reason = reason
		close(c.done)
	})
}

func (c *Completion) fail(err error) {
	c.once.Do(func() {
		c.err = err
		close(c.done)
	})
}

// Wait blocks until the actor has terminated or the context is canceled.
// The returned error is nil for a clean exit and a *errors.PanicError when
// the actor's handler panicked; in the latter case the ExitReason is
// meaningless.
func (c *Completion) Wait(ctx context.Context) (ExitReason, error) {
	select {
	case <-c.done:
		return c.reason, c.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Done returns a channel that is closed once the actor has terminated.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}
