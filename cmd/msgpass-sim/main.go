// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"

	"github.com/jessevdk/go-flags"

	"go.ipcsim.dev/msgpass/logging"

	log "github.com/sirupsen/logrus"
)

type options struct {
	LogLevel  string   `long:"log-level" env:"MSGPASS_LOG_LEVEL" default:"info" description:"log level"`
	Scenarios []string `long:"scenario" description:"YAML scenario file to run, may be repeated; the built-in scenarios run when none is given"`
	Listen    string   `long:"listen" env:"MSGPASS_LISTEN" description:"serve the thread registry API on host:port instead of running scenarios"`
}

func main() {
	opts, err := getCLIArgs(os.Args[1:])
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.WithError(err).Fatal("Failed to parse command line arguments:", os.Args)
	}

	if err := logging.SetLogLevel(opts.LogLevel); err != nil {
		log.WithError(err).Fatal("Failed to set log level")
	}

	if opts.Listen != "" {
		if err := serve(context.Background(), opts.Listen); err != nil {
			log.WithError(err).Fatal("Thread registry API failed")
		}
		return
	}

	passed, err := runScenarios(context.Background(), opts.Scenarios, os.Stdout)
	if err != nil {
		log.WithError(err).Fatal("Failed to run scenarios")
	}
	if !passed {
		os.Exit(1)
	}
}

func getCLIArgs(args []string) (options, error) {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	_, err := parser.ParseArgs(args)
	return opts, err
}
