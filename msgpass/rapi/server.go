// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.ipcsim.dev/msgpass/core"

	log "github.com/sirupsen/logrus"
)

// Server is the thread registry API server
type Server struct {
	host     string
	port     int
	server   *http.Server
	listener net.Listener
}

// NewServer creates a new API Server
//
// Unlike net/http server's ListenAndServe, we separate Listen()
// and Serve(), this is done so callers learn the bound address
// before requests are served.
//
// When port is 0, OS will dynamically allocate the listening port.
func NewServer(host string, port int, registry core.RegistryService) *Server {
	return &Server{
		host:     host,
		port:     port,
		server:   &http.Server{Handler: NewRouter(registry)},
		listener: nil,
	}
}

// Listen on port
func (s *Server) Listen() error {
	addr := net.JoinHostPort(s.host, fmt.Sprint(s.port))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.listener = ln
	if s.port == 0 {
		s.port = ln.Addr().(*net.TCPAddr).Port
		log.WithField("port", s.port).Info("Listening port was dynamically allocated")
	}

	log.Infof("Thread registry API listening on %s", s.Addr())

	return nil
}

func (s *Server) IsListening() bool {
	return s.listener != nil
}

// Serve requests until ctx is canceled, then shut down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("Serve called before Listen")
	}

	errs := s.serveAsync()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		if err := s.Shutdown(); err != nil {
			return err
		}
		<-errs
		return ctx.Err()
	}
}

func (s *Server) serveAsync() chan error {
	errors := make(chan error, 1)
	go func() {
		errors <- s.server.Serve(s.listener)
	}()

	return errors
}

// Host is server's host
func (s *Server) Host() string {
	return s.host
}

// Port is server's port
func (s *Server) Port() int {
	return s.port
}

// Addr is server's host:port
func (s *Server) Addr() string {
	return net.JoinHostPort(s.host, fmt.Sprint(s.port))
}

// URL is full server url for specified endpoint
func (s *Server) URL(endpoint string) string {
	return fmt.Sprintf("http://%s%s", s.Addr(), endpoint)
}

// Close forcefully closes listeners & connections
func (s *Server) Close() error {
	err := s.server.Close()
	if err == nil {
		log.Info("Thread registry API closed")
	}
	return err
}

// Shutdown gracefully shuts down server
func (s *Server) Shutdown() error {
	return s.server.Shutdown(context.Background())
}
