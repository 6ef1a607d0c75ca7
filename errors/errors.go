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

// Package errors defines the error taxonomy of the actorkit engine.
//
// The sentinel values split into four families:
//
//   - construction errors (ErrInvalidCapacity, ErrInitFailure): fatal at
//     spawn/start time, never retried by the engine.
//   - transient delivery errors (ErrMailboxFull): only produced under the
//     fail-fast send policy; the caller may retry.
//   - terminal delivery errors (ErrSendFailed): the mailbox will never accept
//     another message because the actor stopped cleanly, or crashed with restarts
//     forbidden or exhausted.
//   - reply errors (ErrResponseDropped, ErrRequestTimeout): the request may
//     have partially executed. Callers must treat them as an unknown outcome,
//     not as proof the message was never processed.
//
// Callers match against these values with errors.Is and unwrap recovered
// handler panics with errors.As on *PanicError.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCapacity is returned when an actor is spawned with a mailbox
	// capacity of less than one.
	ErrInvalidCapacity = errors.New("mailbox capacity must be at least one")

	// ErrMailboxFull is returned by a fail-fast send when the bounded mailbox
	// has reached its capacity. The caller was not queued and may retry.
	ErrMailboxFull = errors.New("mailbox is full")

	// ErrSendFailed is returned when the mailbox is closed: the actor has
	// stopped cleanly, or crashed and will not be restarted. The mailbox will
	// never accept another message.
	ErrSendFailed = errors.New("mailbox is closed")

	// ErrResponseDropped is returned when a request was delivered but its
	// reply slot was discarded before being resolved: the actor died while
	// the message was queued or in flight, or it explicitly declined to
	// answer. The request may have partially executed.
	ErrResponseDropped = errors.New("response dropped before delivery")

	// ErrRequestTimeout is returned when a reply did not arrive before the
	// request deadline. The message is not retracted from the mailbox and may
	// still be processed after the caller has given up.
	ErrRequestTimeout = errors.New("request timed out")

	// ErrInitFailure is returned when the actor factory fails to produce an
	// instance at supervisor start. No monitoring begins.
	ErrInitFailure = errors.New("actor factory failed")
)

// NewErrInitFailure wraps a factory error with ErrInitFailure.
func NewErrInitFailure(err error) error {
	return errors.Join(ErrInitFailure, err)
}

// PanicError wraps a panic recovered from an actor's message handler. It is
// the abnormal-termination signal the supervisor consults its restart policy
// for; it never reaches a request caller directly.
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError.
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}
