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
	stderrors "errors"
	"time"

	"github.com/flowchartsman/retry"

	"github.com/hudagents/actorkit/errors"
	"github.com/hudagents/actorkit/future"
)

// Client is the request/reply gateway over a supervised actor. It carries
// the Handle addressing the actor's current mailbox, a SendPolicy, a default
// request timeout, and an optional bounded retry on ErrSendFailed for
// callers that know a restart may be pending.
//
// Clients deriving from one another share the same supervised actor but are
// governed independently; a FailFast client and a Backpressure client may be
// used concurrently against the same mailbox.
type Client[M any] struct {
	handle      *Handle[M]
	policy      SendPolicy
	timeout     time.Duration
	sendRetries int
	retryFirst  time.Duration
	retryMax    time.Duration
}

// ClientOption configures a Client.
type ClientOption[M any] func(*Client[M])

// WithSendPolicy sets the client's delivery discipline. Defaults to
// Backpressure.
func WithSendPolicy[M any](policy SendPolicy) ClientOption[M] {
	return func(c *Client[M]) {
		c.policy = policy
	}
}

// WithAskTimeout sets the client's default request deadline. Defaults to
// DefaultAskTimeout.
func WithAskTimeout[M any](timeout time.Duration) ClientOption[M] {
	return func(c *Client[M]) {
		c.timeout = timeout
	}
}

// WithSendRetry makes the client retry a delivery that failed with
// ErrSendFailed up to maxRetries times, backing off between first and max.
// The engine never retries on its own: a send racing a pending restart can
// observe the dead sender before the supervisor swaps in the new one, and
// whether to ride that window out is the caller's choice.
func WithSendRetry[M any](maxRetries int, first, longest time.Duration) ClientOption[M] {
	return func(c *Client[M]) {
		c.sendRetries = maxRetries
		c.retryFirst = first
		c.retryMax = longest
	}
}

// NewClient creates a request/reply client over the given supervised handle.
func NewClient[M any](handle *Handle[M], opts ...ClientOption[M]) *Client[M] {
	client := &Client[M]{
		handle:  handle,
		policy:  Backpressure,
		timeout: DefaultAskTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.retryFirst <= 0 {
		client.retryFirst = defaultRetryInitialDelay
	}
	if client.retryMax < client.retryFirst {
		client.retryMax = client.retryFirst
	}
	return client
}

// WithPolicy derives an independent client over the same supervised actor,
// governed by its own send discipline.
func (c *Client[M]) WithPolicy(policy SendPolicy) *Client[M] {
	derived := *c
	derived.policy = policy
	derived.handle = c.handle.Clone()
	return &derived
}

// Handle returns the supervised handle this client addresses.
func (c *Client[M]) Handle() *Handle[M] {
	return c.handle
}

// Tell delivers a fire-and-forget message under the client's SendPolicy.
// No reply is awaited; the error only reports whether the mailbox accepted
// the message.
func (c *Client[M]) Tell(ctx context.Context, msg M) error {
	_, err := c.deliver(ctx, msg)
	return err
}

// Ask performs a request/reply round trip under the client's default
// timeout. See AskTimeout.
func Ask[M, T any](ctx context.Context, c *Client[M], build func(reply *future.Completable[T]) M) (T, error) {
	return AskTimeout(ctx, c, c.timeout, build)
}

// AskTimeout builds a single-use reply slot, embeds it into the message via
// build, delivers the message to the actor's current mailbox under the
// client's SendPolicy, and awaits the reply within the given deadline.
//
// Outcomes:
//   - the actor resolves the slot within the deadline: the value is returned;
//   - the mailbox is full under FailFast: ErrMailboxFull, immediately;
//   - the mailbox is closed for good: ErrSendFailed;
//   - the actor terminates with the request still unanswered, or discards
//     the slot: ErrResponseDropped;
//   - the deadline expires first: ErrRequestTimeout. The message is not
//     retracted from the mailbox and may still be processed afterwards.
func AskTimeout[M, T any](ctx context.Context, c *Client[M], timeout time.Duration, build func(reply *future.Completable[T]) M) (T, error) {
	var zero T

	comp := future.New[T]()
	msg := build(comp)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sender, err := c.deliver(ctx, msg)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return zero, errors.ErrRequestTimeout
		}
		return zero, err
	}

	fut := comp.Future()
	select {
	case <-fut.Done():
		return fut.Result()
	case <-sender.Closed():
		// the reply may have been resolved in the instant the actor died
		select {
		case <-fut.Done():
			return fut.Result()
		default:
			return zero, errors.ErrResponseDropped
		}
	case <-ctx.Done():
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, errors.ErrRequestTimeout
		}
		return zero, ctx.Err()
	}
}

// deliver applies the send policy against the currently published sender,
// optionally retrying ErrSendFailed when the client opted in. It returns the
// sender the message was accepted by, so the caller can watch its death
// signal while awaiting the reply.
func (c *Client[M]) deliver(ctx context.Context, msg M) (*Sender[M], error) {
	if c.sendRetries <= 0 {
		return c.send(ctx, msg)
	}

	var sender *Sender[M]
	var terminal error
	retrier := retry.NewRetrier(c.sendRetries, c.retryFirst, c.retryMax)
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		s, serr := c.send(ctx, msg)
		if serr != nil {
			if stderrors.Is(serr, errors.ErrSendFailed) {
				// a restart may still be pending; retry on a fresh sender
				return serr
			}
			terminal = serr
			return nil
		}
		sender = s
		return nil
	})
	if terminal != nil {
		return nil, terminal
	}
	if err != nil {
		return nil, err
	}
	return sender, nil
}

func (c *Client[M]) send(ctx context.Context, msg M) (*Sender[M], error) {
	sender := c.handle.Sender()
	switch c.policy {
	case FailFast:
		if err := sender.TrySend(msg); err != nil {
			return nil, err
		}
	default:
		if err := sender.Send(ctx, msg); err != nil {
			return nil, err
		}
	}
	return sender, nil
}
