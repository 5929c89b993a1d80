// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package invariant

import (
	log "github.com/sirupsen/logrus"
)

// ViolationError describes a broken internal consistency rule of the registry.
type ViolationError struct {
	Statement string
}

func (err ViolationError) Error() string {
	return "Invariant violation: " + err.Statement
}

// ViolationExecutor decides what a violation does to the running program.
type ViolationExecutor interface {
	Exec(ViolationError)
}

// PanicViolationExecutor is the default executor.
type PanicViolationExecutor struct{}

var _ ViolationExecutor = (*PanicViolationExecutor)(nil)

func NewPanicViolationExecutor() *PanicViolationExecutor {
	return &PanicViolationExecutor{}
}

func (executor *PanicViolationExecutor) Exec(err ViolationError) {
	panic(err)
}

// LogViolationExecutor records violations without interrupting the caller.
// Long-running hosts install it so one bad transition does not take the
// process down.
type LogViolationExecutor struct {
	logger log.FieldLogger
}

var _ ViolationExecutor = (*LogViolationExecutor)(nil)

func NewLogViolationExecutor(logger log.FieldLogger) *LogViolationExecutor {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogViolationExecutor{logger: logger}
}

func (executor *LogViolationExecutor) Exec(err ViolationError) {
	executor.logger.WithError(err).Error("Invariant violated")
}
