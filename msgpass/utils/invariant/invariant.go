// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package invariant reports violations of conditions the simulator's own code
// must uphold. Misuse by callers is reported through error values instead.
package invariant

import (
	"fmt"
	"sync"
)

func Check(cond bool, statement string) {
	if !cond {
		Violate(statement)
	}
}

func Checkf(cond bool, format string, args ...any) {
	if !cond {
		Violatef(format, args...)
	}
}

func Violate(statement string) {
	std.mtx.Lock()
	defer std.mtx.Unlock()

	std.executor.Exec(ViolationError{Statement: statement})
}

func Violatef(format string, args ...any) {
	Violate(fmt.Sprintf(format, args...))
}

// SetViolationExecutor replaces the process-wide executor and returns the previous one.
func SetViolationExecutor(executor ViolationExecutor) ViolationExecutor {
	std.mtx.Lock()
	defer std.mtx.Unlock()

	previous := std.executor
	std.executor = executor
	return previous
}

var std = struct {
	executor ViolationExecutor
	mtx      sync.Mutex
}{
	executor: NewPanicViolationExecutor(),
}
