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
	"fmt"
	"time"

	"github.com/hudagents/actorkit/future"
)

// counter fixture: the canonical request/reply actor. The hold message is a
// test-only capability used to block the actor deterministically; it is not
// part of any production message set.

type counterMsg any

type addMsg struct {
	delta int64
	reply *future.Completable[int64]
}

type getMsg struct {
	reply *future.Completable[int64]
}

type delayGetMsg struct {
	delay time.Duration
	reply *future.Completable[int64]
}

type counterStopMsg struct {
	reply *future.Completable[struct{}]
}

type crashMsg struct {
	reply *future.Completable[struct{}]
}

type discardMsg struct {
	reply *future.Completable[int64]
}

// holdMsg parks the actor until release is closed; started is closed first so
// the test knows the actor is blocked.
type holdMsg struct {
	started chan struct{}
	release chan struct{}
}

func counterHandler(_ context.Context, state *int64, msg counterMsg) Control {
	switch msg := msg.(type) {
	case addMsg:
		*state += msg.delta
		msg.reply.Success(*state)
		return Continue
	case getMsg:
		msg.reply.Success(*state)
		return Continue
	case delayGetMsg:
		value := *state
		time.Sleep(msg.delay)
		msg.reply.Success(value)
		return Continue
	case counterStopMsg:
		msg.reply.Success(struct{}{})
		return Stop
	case crashMsg:
		msg.reply.Success(struct{}{})
		panic("crash requested")
	case discardMsg:
		msg.reply.Discard()
		return Continue
	case holdMsg:
		close(msg.started)
		<-msg.release
		return Continue
	default:
		return Continue
	}
}

type counter struct {
	client *Client[counterMsg]
}

func counterFactory(capacity int) Factory[counterMsg] {
	return func() (*Sender[counterMsg], *Completion, error) {
		return Spawn(capacity, int64(0), counterHandler)
	}
}

func spawnCounter(capacity int, policy RestartPolicy, opts ...ClientOption[counterMsg]) (*counter, error) {
	handle, err := Start(counterFactory(capacity), policy)
	if err != nil {
		return nil, err
	}
	return &counter{client: NewClient(handle, opts...)}, nil
}

func (c *counter) withPolicy(policy SendPolicy) *counter {
	return &counter{client: c.client.WithPolicy(policy)}
}

func (c *counter) add(ctx context.Context, delta int64) (int64, error) {
	return Ask(ctx, c.client, func(reply *future.Completable[int64]) counterMsg {
		return addMsg{delta: delta, reply: reply}
	})
}

func (c *counter) get(ctx context.Context) (int64, error) {
	return Ask(ctx, c.client, func(reply *future.Completable[int64]) counterMsg {
		return getMsg{reply: reply}
	})
}

func (c *counter) delayGet(ctx context.Context, delay, timeout time.Duration) (int64, error) {
	return AskTimeout(ctx, c.client, timeout, func(reply *future.Completable[int64]) counterMsg {
		return delayGetMsg{delay: delay, reply: reply}
	})
}

func (c *counter) stop(ctx context.Context) error {
	_, err := Ask(ctx, c.client, func(reply *future.Completable[struct{}]) counterMsg {
		return counterStopMsg{reply: reply}
	})
	return err
}

func (c *counter) crashNow(ctx context.Context) error {
	_, err := Ask(ctx, c.client, func(reply *future.Completable[struct{}]) counterMsg {
		return crashMsg{reply: reply}
	})
	return err
}

func (c *counter) discard(ctx context.Context) (int64, error) {
	return Ask(ctx, c.client, func(reply *future.Completable[int64]) counterMsg {
		return discardMsg{reply: reply}
	})
}

// hold parks the counter actor via the raw sender and returns the release
// switch once the actor is confirmed blocked.
func (c *counter) hold(ctx context.Context) (chan struct{}, error) {
	started := make(chan struct{})
	release := make(chan struct{})
	sender := c.client.Handle().Sender()
	if err := sender.Send(ctx, holdMsg{started: started, release: release}); err != nil {
		return nil, err
	}
	<-started
	return release, nil
}

// echo agent fixture: prefixes its name and turn count to whatever it is
// given, so each output is derivable from the prior one.

type echoMsg any

type respondMsg struct {
	input string
	reply *future.Completable[string]
}

type echoStopMsg struct {
	reply *future.Completable[struct{}]
}

type echoState struct {
	name  string
	turns uint64
}

func echoHandler(_ context.Context, state *echoState, msg echoMsg) Control {
	switch msg := msg.(type) {
	case respondMsg:
		state.turns++
		msg.reply.Success(fmt.Sprintf("%s[%d]: %s", state.name, state.turns, msg.input))
		return Continue
	case echoStopMsg:
		msg.reply.Success(struct{}{})
		return Stop
	default:
		return Continue
	}
}

type echoAgent struct {
	client *Client[echoMsg]
}

func spawnEchoAgent(name string, capacity int, policy RestartPolicy) (*echoAgent, error) {
	factory := func() (*Sender[echoMsg], *Completion, error) {
		return Spawn(capacity, echoState{name: name}, echoHandler)
	}
	handle, err := Start(factory, policy)
	if err != nil {
		return nil, err
	}
	return &echoAgent{client: NewClient(handle)}, nil
}

func (a *echoAgent) respond(ctx context.Context, input string) (string, error) {
	return Ask(ctx, a.client, func(reply *future.Completable[string]) echoMsg {
		return respondMsg{input: input, reply: reply}
	})
}

func (a *echoAgent) stop(ctx context.Context) error {
	_, err := Ask(ctx, a.client, func(reply *future.Completable[struct{}]) echoMsg {
		return echoStopMsg{reply: reply}
	})
	return err
}

// group manager fixture: a coordinator actor driving echo agents in strict
// rotation, chaining each agent's output into the next agent's input.

type groupMsg any

type runMsg struct {
	initial  string
	maxTurns int
	reply    *future.Completable[[]string]
}

type groupStopMsg struct {
	reply *future.Completable[struct{}]
}

type groupState struct {
	agents []*echoAgent
	next   int
}

func groupHandler(ctx context.Context, state *groupState, msg groupMsg) Control {
	switch msg := msg.(type) {
	case runMsg:
		transcript := make([]string, 0, msg.maxTurns)
		input := msg.initial
		for turn := 0; turn < msg.maxTurns; turn++ {
			agent := state.agents[state.next]
			state.next = (state.next + 1) % len(state.agents)
			output, err := agent.respond(ctx, input)
			if err != nil {
				// a failed member ends the round; the partial transcript is
				// still the answer
				break
			}
			transcript = append(transcript, output)
			input = output
		}
		msg.reply.Success(transcript)
		return Continue
	case groupStopMsg:
		msg.reply.Success(struct{}{})
		return Stop
	default:
		return Continue
	}
}

type groupManager struct {
	client *Client[groupMsg]
}

func spawnGroupManager(agents []*echoAgent, capacity int, policy RestartPolicy) (*groupManager, error) {
	factory := func() (*Sender[groupMsg], *Completion, error) {
		if len(agents) == 0 {
			return nil, nil, fmt.Errorf("group manager needs at least one agent")
		}
		members := make([]*echoAgent, len(agents))
		copy(members, agents)
		return Spawn(capacity, groupState{agents: members}, groupHandler)
	}
	handle, err := Start(factory, policy)
	if err != nil {
		return nil, err
	}
	return &groupManager{client: NewClient(handle)}, nil
}

func (g *groupManager) run(ctx context.Context, initial string, maxTurns int, timeout time.Duration) ([]string, error) {
	return AskTimeout(ctx, g.client, timeout, func(reply *future.Completable[[]string]) groupMsg {
		return runMsg{initial: initial, maxTurns: maxTurns, reply: reply}
	})
}

func (g *groupManager) stop(ctx context.Context) error {
	_, err := Ask(ctx, g.client, func(reply *future.Completable[struct{}]) groupMsg {
		return groupStopMsg{reply: reply}
	})
	return err
}
