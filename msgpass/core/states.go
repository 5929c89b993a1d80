// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"strings"
)

// ThreadState is the state a simulated thread occupies.
type ThreadState int

const (
	// StateReady is the zero value so a freshly allocated Thread is idle.
	StateReady ThreadState = iota
	StateSend
	StateReceive
	StateReply
)

var threadStateNames = map[ThreadState]string{
	StateReady:   ThreadReadyStateName,
	StateSend:    ThreadSendStateName,
	StateReceive: ThreadReceiveStateName,
	StateReply:   ThreadReplyStateName,
}

func (s ThreadState) String() string {
	if name, ok := threadStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ThreadState(%d)", int(s))
}

// Valid reports whether s is one of the four enumerated states.
func (s ThreadState) Valid() bool {
	_, ok := threadStateNames[s]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (s ThreadState) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid thread state %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ThreadState) UnmarshalText(text []byte) error {
	parsed, err := ParseThreadState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseThreadState converts a state name, in any letter case, to a ThreadState.
func ParseThreadState(name string) (ThreadState, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for state, stateName := range threadStateNames {
		if stateName == normalized {
			return state, nil
		}
	}
	return StateReady, fmt.Errorf("unknown thread state %q", name)
}

// Operation names a transition a thread may be asked to perform.
type Operation string

const (
	SendOperation           Operation = "send"
	ReceiveOperation        Operation = "receive"
	ReplyOperation          Operation = "reply"
	UnblockOnReplyOperation Operation = "unblock-on-reply"
)

// transitionRules answers, for one current state, what the next state is for
// each operation. Rules are pure: they never write anything.
type transitionRules interface {
	Send(serverState ThreadState) (ThreadState, error)
	Receive(clientState ThreadState) (ThreadState, error)
	Reply() (ThreadState, error)
	ServerReplied() (ThreadState, error)
}

type disallowEveryTransitionByDefault struct{}

func (r *disallowEveryTransitionByDefault) Send(ThreadState) (ThreadState, error) {
	return 0, ErrNotAllowed
}
func (r *disallowEveryTransitionByDefault) Receive(ThreadState) (ThreadState, error) {
	return 0, ErrNotAllowed
}
func (r *disallowEveryTransitionByDefault) Reply() (ThreadState, error) { return 0, ErrNotAllowed }
func (r *disallowEveryTransitionByDefault) ServerReplied() (ThreadState, error) {
	return 0, ErrNotAllowed
}

// readyRules applies to an idle thread, the only state send, receive and
// reply may be initiated from.
type readyRules struct {
	disallowEveryTransitionByDefault
}

// Send delivers immediately when the server is already waiting in receive;
// otherwise the client blocks until the server calls receive.
func (r *readyRules) Send(serverState ThreadState) (ThreadState, error) {
	if serverState == StateReceive {
		return StateReply, nil
	}
	return StateSend, nil
}

// Receive does not block when a client message is already pending.
func (r *readyRules) Receive(clientState ThreadState) (ThreadState, error) {
	if clientState == StateSend {
		return StateReady, nil
	}
	return StateReceive, nil
}

// Reply is non-blocking for the server.
func (r *readyRules) Reply() (ThreadState, error) {
	return StateReady, nil
}

type sendBlockedRules struct {
	disallowEveryTransitionByDefault
}

type receiveBlockedRules struct {
	disallowEveryTransitionByDefault
}

// replyBlockedRules applies to a client awaiting its server's reply.
type replyBlockedRules struct {
	disallowEveryTransitionByDefault
}

func (r *replyBlockedRules) ServerReplied() (ThreadState, error) {
	return StateReady, nil
}

var rulesByState = map[ThreadState]transitionRules{
	StateReady:   &readyRules{},
	StateSend:    &sendBlockedRules{},
	StateReceive: &receiveBlockedRules{},
	StateReply:   &replyBlockedRules{},
}

func rulesFor(s ThreadState) transitionRules {
	if rules, ok := rulesByState[s]; ok {
		return rules
	}
	return &disallowEveryTransitionByDefault{}
}

// MaybeReleaseReceiver returns the server's state after a client sent to it,
// given the server's state before the send.
func MaybeReleaseReceiver(serverBefore ThreadState) ThreadState {
	if serverBefore == StateReceive {
		return StateReady
	}
	return serverBefore
}

// MaybeAdvanceToReply returns the client's state after a server received
// from it, given the client's state before the receive.
func MaybeAdvanceToReply(clientBefore ThreadState) ThreadState {
	if clientBefore == StateSend {
		return StateReply
	}
	return clientBefore
}
