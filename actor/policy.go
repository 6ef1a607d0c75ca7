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

import "fmt"

// RestartPolicy decides whether a crashed actor may be recreated. It is a
// pure predicate over the cumulative restart counter of one supervised
// lifetime; the counter is never reset by a successful restart.
type RestartPolicy interface {
	// Allows reports whether one more restart may happen given how many
	// restarts have already been performed.
	Allows(restarts uint32) bool
	fmt.Stringer
}

type neverPolicy struct{}

// enforce compilation error
var _ RestartPolicy = neverPolicy{}

func (neverPolicy) Allows(uint32) bool { return false }
func (neverPolicy) String() string     { return "Never" }

type maxRetriesPolicy struct {
	n uint32
}

// enforce compilation error
var _ RestartPolicy = maxRetriesPolicy{}

func (p maxRetriesPolicy) Allows(restarts uint32) bool { return restarts < p.n }
func (p maxRetriesPolicy) String() string              { return fmt.Sprintf("MaxRetries(%d)", p.n) }

// Never returns the policy that forbids any restart: the first crash leaves
// the published mailbox permanently closed.
func Never() RestartPolicy {
	return neverPolicy{}
}

// MaxRetries returns the policy that allows at most n restarts over the
// whole supervised lifetime, not per crash.
func MaxRetries(n uint32) RestartPolicy {
	return maxRetriesPolicy{n: n}
}

// SendPolicy is the delivery discipline a Client applies when its request
// message meets a full mailbox.
type SendPolicy int

const (
	// Backpressure suspends the caller until mailbox space is available. It
	// only fails when the mailbox is permanently closed.
	Backpressure SendPolicy = iota
	// FailFast never suspends: a full mailbox yields ErrMailboxFull
	// immediately and the caller is not queued.
	FailFast
)

// String returns the string representation of the send policy
func (p SendPolicy) String() string {
	switch p {
	case Backpressure:
		return "Backpressure"
	case FailFast:
		return "FailFast"
	default:
		return ""
	}
}
