// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	log "github.com/sirupsen/logrus"

	"go.ipcsim.dev/msgpass/core"
)

// Report is the outcome of running one scenario.
type Report struct {
	Name     string
	Steps    int
	Failures []string
}

// Passed reports whether every expectation held.
func (r *Report) Passed() bool {
	return len(r.Failures) == 0
}

type runner struct {
	registry core.RegistryService
	out      io.Writer
	ids      map[string]core.ThreadID
	report   *Report
}

// Run executes sc against registry, writing a trace of operations and every
// print step's snapshot to out. Failed expectations are collected in the
// report; the returned error is reserved for cancellation and write failures.
func Run(ctx context.Context, registry core.RegistryService, sc *Scenario, out io.Writer) (*Report, error) {
	r := &runner{
		registry: registry,
		out:      out,
		ids:      make(map[string]core.ThreadID),
		report:   &Report{Name: sc.Name},
	}

	logger := log.WithField("scenario", sc.Name)
	logger.Debug("Scenario started")

	if _, err := fmt.Fprintf(out, "== %s\n", sc.Name); err != nil {
		return r.report, err
	}

	for _, alias := range sc.Threads {
		r.create(alias)
	}

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return r.report, err
		}
		if err := r.runStep(i+1, step); err != nil {
			return r.report, err
		}
		r.report.Steps++
	}

	logger.WithFields(log.Fields{"steps": r.report.Steps, "failures": len(r.report.Failures)}).Debug("Scenario finished")
	return r.report, nil
}

func (r *runner) create(alias string) core.ThreadID {
	id := r.registry.Create()
	r.ids[alias] = id
	return id
}

func (r *runner) resolve(alias string) core.ThreadID {
	if id, ok := r.ids[alias]; ok {
		return id
	}
	id, _ := strconv.ParseUint(alias, 10, 32)
	return core.ThreadID(id)
}

func (r *runner) runStep(n int, step Step) error {
	var opErr error

	switch step.Op {
	case OpCreate:
		id := r.create(step.Thread)
		if _, err := fmt.Fprintf(r.out, "Create %s -> %d\n", step.Thread, id); err != nil {
			return err
		}
	case OpSend:
		client, server := r.resolve(step.Client), r.resolve(step.Server)
		if _, err := fmt.Fprintf(r.out, "Send %d, %d\n", client, server); err != nil {
			return err
		}
		opErr = r.registry.Send(client, server, []byte(step.Payload))
	case OpReceive:
		client, server := r.resolve(step.Client), r.resolve(step.Server)
		if _, err := fmt.Fprintf(r.out, "Receive %d, %d\n", server, client); err != nil {
			return err
		}
		opErr = r.registry.Receive(server, client)
	case OpReply:
		client, server := r.resolve(step.Client), r.resolve(step.Server)
		if _, err := fmt.Fprintf(r.out, "Reply %d, %d\n", server, client); err != nil {
			return err
		}
		opErr = r.registry.Reply(server, client, []byte(step.Payload))
	case OpPrint:
		desc := r.registry.Describe()
		if err := desc.Render(r.out); err != nil {
			return err
		}
	}

	if opErr != nil {
		if _, err := fmt.Fprintf(r.out, "  error: %s\n", opErr); err != nil {
			return err
		}
	}

	if kind := errorKind(opErr); kind != step.ExpectError {
		r.failf("step %d (%s): expected error %q, got %q", n, step.Op, step.ExpectError, kind)
	}

	aliases := make([]string, 0, len(step.Expect))
	for alias := range step.Expect {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	for _, alias := range aliases {
		expected := step.Expect[alias]
		actual, err := r.registry.State(r.resolve(alias))
		if err != nil {
			r.failf("step %d (%s): %s: %s", n, step.Op, alias, err)
			continue
		}
		if actual != expected {
			r.failf("step %d (%s): %s expected %s, got %s", n, step.Op, alias, expected, actual)
		}
	}

	return nil
}

func (r *runner) failf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.WithField("scenario", r.report.Name).Warn(msg)
	r.report.Failures = append(r.report.Failures, msg)
}
