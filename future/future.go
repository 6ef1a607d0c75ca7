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

// Package future provides a single-assignment, one-shot reply slot shared
// between exactly one producer (the actor resolving a request) and one
// consumer (the caller awaiting it).
package future

import (
	"context"
	"sync"

	"github.com/hudagents/actorkit/errors"
)

// Completable is the writable half of a one-shot reply slot. It completes the
// associated Future exactly once: later completions are silently ignored.
// A request message embeds a Completable so the receiving actor can answer.
type Completable[T any] struct {
	once   sync.Once
	future *Future[T]
}

// New creates an unresolved Completable and its Future.
func New[T any]() *Completable[T] {
	return &Completable[T]{
		future: &Future[T]{done: make(chan struct{})},
	}
}

// Success completes the underlying Future with a value.
func (c *Completable[T]) Success(value T) {
	c.once.Do(func() {
		c.future.value = value
		close(c.future.done)
	})
}

// Failure fails the underlying Future with an error.
func (c *Completable[T]) Failure(err error) {
	c.once.Do(func() {
		c.future.err = err
		close(c.future.done)
	})
}

// Discard explicitly abandons the reply slot. The awaiting caller observes
// errors.ErrResponseDropped, the same outcome as when the slot's owner dies
// without answering.
func (c *Completable[T]) Discard() {
	c.Failure(errors.ErrResponseDropped)
}

// Future returns the readable half of the slot.
func (c *Completable[T]) Future() *Future[T] {
	return c.future
}

// Future represents a value which may or may not currently be available, but
// will be available at some point, or an error if that value could not be
// produced.
//
// The result fields are written exactly once before done is closed; readers
// observe them only after done, so no further synchronization is needed.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Await blocks until the Future is completed or the context is canceled and
// returns either a result or an error.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed once the Future has been completed.
// It allows callers to race the Future against other events in a select.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result returns the outcome of a completed Future. It must only be called
// after Done has been observed closed; calling it earlier races the producer.
func (f *Future[T]) Result() (T, error) {
	return f.value, f.err
}
