// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"time"

	"go.ipcsim.dev/msgpass/core/statejson"
)

// ThreadID is the handle a Registry issues for a thread.
type ThreadID uint32

// Thread is a simulated thread record. Its state is only ever written by the
// Registry that created it; the Decide methods compute next states without
// writing them.
type Thread struct {
	ID ThreadID

	state             ThreadState
	stateLastModified time.Time
}

func newThread(id ThreadID) *Thread {
	return &Thread{
		ID:                id,
		state:             StateReady,
		stateLastModified: time.Now(),
	}
}

// State returns the thread's current state.
func (t *Thread) State() ThreadState {
	return t.state
}

func (t *Thread) setState(state ThreadState) {
	if state == t.state {
		return
	}
	t.state = state
	t.stateLastModified = time.Now()
}

// DecideSend computes the client's next state for a send to a server
// currently in serverState.
func (t *Thread) DecideSend(serverState ThreadState) (ThreadState, error) {
	next, err := rulesFor(t.state).Send(serverState)
	return next, t.wrap(err, SendOperation)
}

// DecideReceive computes the server's next state for a receive from a client
// currently in clientState.
func (t *Thread) DecideReceive(clientState ThreadState) (ThreadState, error) {
	next, err := rulesFor(t.state).Receive(clientState)
	return next, t.wrap(err, ReceiveOperation)
}

// DecideReply validates that the replying server is not blocked.
func (t *Thread) DecideReply() (ThreadState, error) {
	next, err := rulesFor(t.state).Reply()
	return next, t.wrap(err, ReplyOperation)
}

// DecideUnblockOnReply computes the client's next state when its server replies.
func (t *Thread) DecideUnblockOnReply() (ThreadState, error) {
	next, err := rulesFor(t.state).ServerReplied()
	return next, t.wrap(err, UnblockOnReplyOperation)
}

func (t *Thread) wrap(err error, op Operation) error {
	if err == nil {
		return nil
	}
	return &InvalidStateTransitionError{ID: t.ID, CurrentState: t.state, Operation: op}
}

// GetThreadDescription returns thread description object for debugging purposes
func (t *Thread) GetThreadDescription() statejson.ThreadDescription {
	return statejson.ThreadDescription{
		ID: uint32(t.ID),
		State: statejson.StateDescription{
			Name:         t.state.String(),
			LastModified: t.stateLastModified.UnixNano() / int64(time.Millisecond),
		},
	}
}
