// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"

	"go.ipcsim.dev/msgpass/core"
	"go.ipcsim.dev/msgpass/scenario"

	log "github.com/sirupsen/logrus"
)

// runScenarios runs each scenario against a fresh registry and reports
// whether all of them passed.
func runScenarios(ctx context.Context, paths []string, out io.Writer) (bool, error) {
	scenarios, err := loadScenarios(paths)
	if err != nil {
		return false, err
	}

	passed := true
	for _, sc := range scenarios {
		registry := core.NewRegistry()
		log.WithFields(log.Fields{"scenario": sc.Name, "runId": registry.RunID()}).Info("Running scenario")

		report, err := scenario.Run(ctx, registry, sc, out)
		if err != nil {
			return false, err
		}

		if report.Passed() {
			fmt.Fprintf(out, "PASS %s (%d steps)\n\n", report.Name, report.Steps)
			continue
		}

		passed = false
		fmt.Fprintf(out, "FAIL %s\n", report.Name)
		for _, failure := range report.Failures {
			fmt.Fprintf(out, "  %s\n", failure)
		}
		fmt.Fprintln(out)
	}
	return passed, nil
}

func loadScenarios(paths []string) ([]*scenario.Scenario, error) {
	if len(paths) == 0 {
		return scenario.Builtin()
	}

	scenarios := make([]*scenario.Scenario, 0, len(paths))
	for _, path := range paths {
		sc, err := scenario.Load(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}
