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
)

// mailbox is a bounded, FIFO, multi-producer single-consumer message queue.
//
// Two independent lifecycle signals hang off it:
//   - sendersGone is closed when the last Sender clone is released; the
//     consumer drains the remaining buffer and exits AllSendersDropped.
//   - dead is closed when the consumer loop returns, for whatever reason;
//     producers blocked in Send are unblocked with ErrSendFailed and the
//     request gateway uses it to detect dropped replies.
type mailbox[M any] struct {
	buffer      chan M
	senders     *atomic.Int64
	sendersGone chan struct{}
	goneOnce    sync.Once
	dead        chan struct{}
	deadOnce    sync.Once
}

func newMailbox[M any](capacity int) *mailbox[M] {
	return &mailbox[M]{
		buffer:      make(chan M, capacity),
		senders:     atomic.NewInt64(1),
		sendersGone: make(chan struct{}),
		dead:        make(chan struct{}),
	}
}

// markDead closes the death signal. Invoked exactly once, by the consumer
// loop on its way out.
func (m *mailbox[M]) markDead() {
	m.deadOnce.Do(func() {
		close(m.dead)
	})
}

// Sender is a caller-facing producer handle onto an actor's mailbox.
//
// Senders are reference counted: Clone shares the mailbox and adds one
// reference, Release drops one. When the last reference is released the
// consumer drains whatever is buffered and then exits with
// AllSendersDropped. Senders are safe for concurrent use; Release is
// idempotent per clone.
type Sender[M any] struct {
	mbox     *mailbox[M]
	released *atomic.Bool
}

func newSender[M any](m *mailbox[M]) *Sender[M] {
	return &Sender[M]{
		mbox:     m,
		released: atomic.NewBool(false),
	}
}

// Clone returns a new Sender sharing the same mailbox. The mailbox stays
// open until every clone has been released.
func (s *Sender[M]) Clone() *Sender[M] {
	s.mbox.senders.Inc()
	return newSender(s.mbox)
}

// Release drops this clone's reference on the mailbox. Releasing the last
// clone lets the actor drain its buffer and terminate with
// AllSendersDropped. Calling Release more than once on the same clone is a
// no-op.
func (s *Sender[M]) Release() {
	if !s.released.CompareAndSwap(false, true) {
		return
	}
	if s.mbox.senders.Dec() == 0 {
		s.mbox.goneOnce.Do(func() {
			close(s.mbox.sendersGone)
		})
	}
}

// Send enqueues a message, blocking while the mailbox is full. It returns
// ErrSendFailed when the actor is gone, the clone has been released, or
// ctx's error when the context expires first.
func (s *Sender[M]) Send(ctx context.Context, msg M) error {
	if s.released.Load() {
		return errors.ErrSendFailed
	}
	select {
	case <-s.mbox.dead:
		return errors.ErrSendFailed
	default:
	}
	select {
	case s.mbox.buffer <- msg:
		return nil
	case <-s.mbox.dead:
		return errors.ErrSendFailed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySend enqueues a message without blocking. A full mailbox yields
// ErrMailboxFull; a dead or released mailbox yields ErrSendFailed.
func (s *Sender[M]) TrySend(msg M) error {
	if s.released.Load() {
		return errors.ErrSendFailed
	}
	select {
	case <-s.mbox.dead:
		return errors.ErrSendFailed
	default:
	}
	select {
	case s.mbox.buffer <- msg:
		return nil
	default:
		return errors.ErrMailboxFull
	}
}

// Closed returns a channel that is closed once the actor behind this sender
// has terminated. A message accepted by Send before the closure may or may
// not have been processed.
func (s *Sender[M]) Closed() <-chan struct{} {
	return s.mbox.dead
}
