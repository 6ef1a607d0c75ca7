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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hudagents/actorkit/errors"
)

func spawnGroup(t *testing.T) (*echoAgent, *echoAgent, *groupManager) {
	t.Helper()
	alice, err := spawnEchoAgent("alice", DefaultMailboxCapacity, Never())
	require.NoError(t, err)
	bob, err := spawnEchoAgent("bob", DefaultMailboxCapacity, Never())
	require.NoError(t, err)
	mgr, err := spawnGroupManager([]*echoAgent{alice, bob}, DefaultMailboxCapacity, Never())
	require.NoError(t, err)
	return alice, bob, mgr
}

func drainGroup(t *testing.T, ctx context.Context, alice, bob *echoAgent, mgr *groupManager) {
	t.Helper()
	require.NoError(t, mgr.stop(ctx))
	awaitClosed(t, mgr.client.Handle())
	require.NoError(t, alice.stop(ctx))
	awaitClosed(t, alice.client.Handle())
	require.NoError(t, bob.stop(ctx))
	awaitClosed(t, bob.client.Handle())
}

func TestRoundRobinRotation(t *testing.T) {
	ctx := context.Background()
	alice, bob, mgr := spawnGroup(t)

	transcript, err := mgr.run(ctx, "hello", 4, time.Second)
	require.NoError(t, err)

	require.Len(t, transcript, 4)
	assert.True(t, strings.HasPrefix(transcript[0], "alice[1]:"))
	assert.True(t, strings.HasPrefix(transcript[1], "bob[1]:"))
	assert.True(t, strings.HasPrefix(transcript[2], "alice[2]:"))
	assert.True(t, strings.HasPrefix(transcript[3], "bob[2]:"))

	drainGroup(t, ctx, alice, bob, mgr)
}

func TestRoundRobinContentChaining(t *testing.T) {
	ctx := context.Background()
	alice, bob, mgr := spawnGroup(t)

	transcript, err := mgr.run(ctx, "hello", 4, time.Second)
	require.NoError(t, err)

	// each turn's output embeds the previous one verbatim
	require.Len(t, transcript, 4)
	assert.True(t, strings.HasSuffix(transcript[0], "hello"))
	for i := 1; i < len(transcript); i++ {
		assert.True(t, strings.HasSuffix(transcript[i], transcript[i-1]))
	}

	drainGroup(t, ctx, alice, bob, mgr)
}

func TestRoundRobinRotationPersistsAcrossRuns(t *testing.T) {
	ctx := context.Background()
	alice, bob, mgr := spawnGroup(t)

	first, err := mgr.run(ctx, "one", 1, time.Second)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, strings.HasPrefix(first[0], "alice[1]:"))

	// the rotation cursor survives between runs
	second, err := mgr.run(ctx, "two", 1, time.Second)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.True(t, strings.HasPrefix(second[0], "bob[1]:"))

	drainGroup(t, ctx, alice, bob, mgr)
}

func TestGroupPartialTranscriptOnMemberFailure(t *testing.T) {
	ctx := context.Background()
	alice, bob, mgr := spawnGroup(t)

	// bob leaves; his turn fails and the round ends with alice's output only
	require.NoError(t, bob.stop(ctx))
	awaitClosed(t, bob.client.Handle())

	transcript, err := mgr.run(ctx, "hello", 4, 2*time.Second)
	require.NoError(t, err)
	require.Len(t, transcript, 1)
	assert.True(t, strings.HasPrefix(transcript[0], "alice[1]:"))

	require.NoError(t, mgr.stop(ctx))
	awaitClosed(t, mgr.client.Handle())
	require.NoError(t, alice.stop(ctx))
	awaitClosed(t, alice.client.Handle())
}

func TestGroupManagerStop(t *testing.T) {
	ctx := context.Background()
	alice, bob, mgr := spawnGroup(t)

	require.NoError(t, mgr.stop(ctx))
	awaitClosed(t, mgr.client.Handle())

	_, err := mgr.run(ctx, "hello", 2, time.Second)
	require.ErrorIs(t, err, errors.ErrSendFailed)

	require.NoError(t, alice.stop(ctx))
	awaitClosed(t, alice.client.Handle())
	require.NoError(t, bob.stop(ctx))
	awaitClosed(t, bob.client.Handle())
}

func TestGroupManagerRequiresMembers(t *testing.T) {
	_, err := spawnGroupManager(nil, DefaultMailboxCapacity, Never())
	require.ErrorIs(t, err, errors.ErrInitFailure)
}
