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
	"sync"

	"go.uber.org/atomic"
)

// senderSlot is the single piece of state mutated by a party other than its
// owner: many handle clones read the live sender, exactly one supervisor
// monitor swaps it. Reader-writer discipline, no writer starvation required.
type senderSlot[M any] struct {
	mu       sync.RWMutex
	sender   *Sender[M]
	restarts *atomic.Uint32
}

// Handle is a cheaply cloned, concurrency-safe reference to whichever
// mailbox sender is currently live for a supervised actor. Immediately after
// the supervisor swaps the sender, every clone observes the new one; a
// clone never lags.
type Handle[M any] struct {
	slot *senderSlot[M]
}

// Sender fetches the currently published mailbox sender. Concurrent readers
// never block each other; a pending swap excludes them for its duration.
func (h *Handle[M]) Sender() *Sender[M] {
	h.slot.mu.RLock()
	sender := h.slot.sender
	h.slot.mu.RUnlock()
	return sender
}

// Clone returns a new Handle sharing the same underlying sender slot.
func (h *Handle[M]) Clone() *Handle[M] {
	return &Handle[M]{slot: h.slot}
}

// RestartCount returns how many times the supervised actor has been
// restarted so far.
func (h *Handle[M]) RestartCount() uint32 {
	return h.slot.restarts.Load()
}

func (h *Handle[M]) swap(sender *Sender[M]) {
	h.slot.mu.Lock()
	h.slot.sender = sender
	h.slot.mu.Unlock()
}
