// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"errors"
	"fmt"
)

// ErrNotAllowed returned on illegal state transition
var ErrNotAllowed = errors.New("State transition is not allowed")

// ErrUnknownThreadID returned when an operation references an id the registry never issued
var ErrUnknownThreadID = errors.New("Unknown thread id")

// UnknownThreadIDError carries the offending id. It matches ErrUnknownThreadID.
type UnknownThreadIDError struct {
	ID ThreadID
}

func (e *UnknownThreadIDError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnknownThreadID, e.ID)
}

func (e *UnknownThreadIDError) Unwrap() error {
	return ErrUnknownThreadID
}

// InvalidStateTransitionError is returned when an operation is invoked on a
// thread that is not in the state required for it. It matches ErrNotAllowed.
type InvalidStateTransitionError struct {
	ID           ThreadID
	CurrentState ThreadState
	Operation    Operation
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("thread %d cannot %s from state %s: %s", e.ID, e.Operation, e.CurrentState, ErrNotAllowed)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrNotAllowed
}
