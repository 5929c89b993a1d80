// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.ipcsim.dev/msgpass/core"
)

func TestParseValidScenario(t *testing.T) {
	sc, err := Parse([]byte(`
name: mixed
threads: [a]
steps:
  - op: create
    thread: b
  - op: send
    client: a
    server: b
    expect: {a: send, b: READY}
`))
	require.NoError(t, err)
	assert.Equal(t, "mixed", sc.Name)
	require.Len(t, sc.Steps, 2)
	assert.Equal(t, OpCreate, sc.Steps[0].Op)
	assert.Equal(t, map[string]core.ThreadState{"a": core.StateSend, "b": core.StateReady}, sc.Steps[1].Expect)
}

func TestParseInvalidScenarios(t *testing.T) {
	testCases := map[string]string{
		"missing name":      "steps: []",
		"bad yaml":          "name: [",
		"unknown op":        "name: x\nsteps:\n  - op: fork",
		"undeclared alias":  "name: x\nsteps:\n  - op: send\n    client: a\n    server: b",
		"missing server":    "name: x\nthreads: [a]\nsteps:\n  - op: receive\n    client: a",
		"duplicate alias":   "name: x\nthreads: [a, a]\nsteps: []",
		"numeric alias":     "name: x\nthreads: [\"7\"]\nsteps: []",
		"create twice":      "name: x\nthreads: [a]\nsteps:\n  - op: create\n    thread: a",
		"unknown state":     "name: x\nthreads: [a]\nsteps:\n  - op: print\n    expect: {a: BUSY}",
		"unknown err kind":  "name: x\nthreads: [a]\nsteps:\n  - op: print\n    expectError: Timeout",
		"expect undeclared": "name: x\nthreads: [a]\nsteps:\n  - op: print\n    expect: {b: READY}",
	}

	for name, doc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidScenario), err.Error())
		})
	}
}

func TestBuiltinScenariosPass(t *testing.T) {
	scenarios, err := Builtin()
	require.NoError(t, err)
	require.Len(t, scenarios, 4)
	assert.Equal(t, "client-first", scenarios[0].Name)
	assert.Equal(t, "server-first", scenarios[1].Name)

	for _, sc := range scenarios {
		report, err := Run(context.Background(), core.NewRegistry(), sc, new(bytes.Buffer))
		require.NoError(t, err)
		assert.True(t, report.Passed(), "%s: %v", sc.Name, report.Failures)
		assert.Equal(t, len(sc.Steps), report.Steps)
	}
}

func TestRunTrace(t *testing.T) {
	scenarios, err := Builtin()
	require.NoError(t, err)

	out := new(bytes.Buffer)
	_, err = Run(context.Background(), core.NewRegistry(), scenarios[0], out)
	require.NoError(t, err)

	expected := "== client-first\n" +
		"Thread 1, READY\nThread 2, READY\n\n" +
		"Send 1, 2\n" +
		"Receive 2, 1\n" +
		"Reply 2, 1\n" +
		"Thread 1, READY\nThread 2, READY\n\n"
	assert.Equal(t, expected, out.String())
}

func TestRunCollectsFailures(t *testing.T) {
	sc, err := Parse([]byte(`
name: wrong-expectations
threads: [a, b]
steps:
  - op: send
    client: a
    server: b
    expect: {a: REPLY}
  - op: send
    client: a
    server: b
  - op: reply
    client: a
    server: "4242"
    expectError: InvalidStateTransition
`))
	require.NoError(t, err)

	registry := core.NewRegistry()
	report, err := Run(context.Background(), registry, sc, new(bytes.Buffer))
	require.NoError(t, err)
	assert.False(t, report.Passed())
	assert.Equal(t, []string{
		`step 1 (send): a expected REPLY, got SEND`,
		`step 2 (send): expected error "", got "InvalidStateTransition"`,
		`step 3 (reply): expected error "InvalidStateTransition", got "UnknownThreadID"`,
	}, report.Failures)
}

func TestRunHonoursCancellation(t *testing.T) {
	scenarios, err := Builtin()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, core.NewRegistry(), scenarios[0], new(bytes.Buffer))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Steps)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: from-file\nthreads: [a]\nsteps:\n  - op: print\n"), 0o600))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", sc.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
