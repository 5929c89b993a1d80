// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"go.ipcsim.dev/msgpass/core"
)

// Op is a scenario step operation
type Op string

const (
	OpCreate  Op = "create"
	OpSend    Op = "send"
	OpReceive Op = "receive"
	OpReply   Op = "reply"
	OpPrint   Op = "print"
)

// Error kinds a step may expect
const (
	ErrorKindUnknownThreadID        = "UnknownThreadID"
	ErrorKindInvalidStateTransition = "InvalidStateTransition"
)

// ErrInvalidScenario is returned when a scenario document fails validation.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is an ordered script of registry operations over named threads.
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Threads     []string `yaml:"threads,omitempty"`
	Steps       []Step   `yaml:"steps"`
}

// Step is one registry operation. Client and Server name threads by alias; a
// bare number refers to that id directly, which lets a scenario reference an
// id the registry never issued.
type Step struct {
	Op          Op                          `yaml:"op"`
	Thread      string                      `yaml:"thread,omitempty"`
	Client      string                      `yaml:"client,omitempty"`
	Server      string                      `yaml:"server,omitempty"`
	Payload     string                      `yaml:"payload,omitempty"`
	Expect      map[string]core.ThreadState `yaml:"expect,omitempty"`
	ExpectError string                      `yaml:"expectError,omitempty"`
}

// Load reads and validates a YAML scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates a YAML scenario document.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks that every step is well formed and that every alias is
// declared before it is used.
func (sc *Scenario) Validate() error {
	if sc.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidScenario)
	}

	declared := make(map[string]bool)
	declare := func(alias string) error {
		if alias == "" {
			return fmt.Errorf("%w: empty thread alias", ErrInvalidScenario)
		}
		if isLiteralID(alias) {
			return fmt.Errorf("%w: thread alias %q must not be a number", ErrInvalidScenario, alias)
		}
		if declared[alias] {
			return fmt.Errorf("%w: thread alias %q declared twice", ErrInvalidScenario, alias)
		}
		declared[alias] = true
		return nil
	}
	reference := func(i int, role, alias string) error {
		if alias == "" {
			return fmt.Errorf("%w: step %d: %s is required", ErrInvalidScenario, i+1, role)
		}
		if !declared[alias] && !isLiteralID(alias) {
			return fmt.Errorf("%w: step %d: undeclared thread %q", ErrInvalidScenario, i+1, alias)
		}
		return nil
	}

	for _, alias := range sc.Threads {
		if err := declare(alias); err != nil {
			return err
		}
	}

	for i, step := range sc.Steps {
		switch step.Op {
		case OpCreate:
			if err := declare(step.Thread); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		case OpSend, OpReceive, OpReply:
			if err := reference(i, "client", step.Client); err != nil {
				return err
			}
			if err := reference(i, "server", step.Server); err != nil {
				return err
			}
		case OpPrint:
		default:
			return fmt.Errorf("%w: step %d: unknown op %q", ErrInvalidScenario, i+1, step.Op)
		}

		switch step.ExpectError {
		case "", ErrorKindUnknownThreadID, ErrorKindInvalidStateTransition:
		default:
			return fmt.Errorf("%w: step %d: unknown error kind %q", ErrInvalidScenario, i+1, step.ExpectError)
		}

		for alias := range step.Expect {
			if !declared[alias] {
				return fmt.Errorf("%w: step %d: expectation on undeclared thread %q", ErrInvalidScenario, i+1, alias)
			}
		}
	}

	return nil
}

func isLiteralID(alias string) bool {
	_, err := strconv.ParseUint(alias, 10, 32)
	return err == nil
}

func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, core.ErrUnknownThreadID):
		return ErrorKindUnknownThreadID
	case errors.Is(err, core.ErrNotAllowed):
		return ErrorKindInvalidStateTransition
	default:
		return err.Error()
	}
}
