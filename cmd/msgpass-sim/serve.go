// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/sync/errgroup"

	"go.ipcsim.dev/msgpass/core"
	"go.ipcsim.dev/msgpass/rapi"
	"go.ipcsim.dev/msgpass/utils/invariant"

	log "github.com/sirupsen/logrus"
)

// serve exposes a single registry over HTTP until SIGINT or SIGTERM.
func serve(ctx context.Context, listen string) error {
	host, portStr, err := net.SplitHostPort(listen)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", listen, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid listen port %q: %w", portStr, err)
	}

	invariant.SetViolationExecutor(invariant.NewLogViolationExecutor(log.StandardLogger()))

	registry := core.NewRegistry()
	server := rapi.NewServer(host, port, registry)
	if err := server.Listen(); err != nil {
		return err
	}
	log.WithField("runId", registry.RunID()).Info("Thread registry created")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		signalHandler(gctx, cancel)
		return nil
	})
	g.Go(func() error {
		err := server.Serve(gctx)
		if err == context.Canceled {
			return nil
		}
		return err
	})

	return g.Wait()
}

// Trap SIGINT and SIGTERM signals and call shutdown function
func signalHandler(ctx context.Context, shutdown context.CancelFunc) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case sigReceived := <-sig:
		log.WithField("signal", sigReceived.String()).Info("Received signal")
		shutdown()
	case <-ctx.Done():
	}
}
