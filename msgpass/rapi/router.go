// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rapi

import (
	"net/http"

	"github.com/go-chi/chi"

	"go.ipcsim.dev/msgpass/core"
	"go.ipcsim.dev/msgpass/rapi/handler"
	"go.ipcsim.dev/msgpass/rapi/middleware"
)

// NewRouter returns a new instance of chi router exposing the thread
// registry. The registry serializes every operation itself, so handlers run
// concurrently without further locking.
func NewRouter(registry core.RegistryService) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.AccessLogMiddleware())

	router.Get("/ping", handler.NewPingHandler().ServeHTTP)

	router.Route("/threads", func(r chi.Router) {
		r.Post("/", handler.NewThreadCreateHandler(registry).ServeHTTP)
		r.Get("/", handler.NewThreadListHandler(registry).ServeHTTP)
		r.Get("/{"+handler.ThreadIDParam+"}", handler.NewThreadGetHandler(registry).ServeHTTP)

		r.Post("/{"+handler.ThreadIDParam+"}/send/{"+handler.PeerIDParam+"}",
			handler.NewSendHandler(registry).ServeHTTP)
		r.Post("/{"+handler.ThreadIDParam+"}/receive/{"+handler.PeerIDParam+"}",
			handler.NewReceiveHandler(registry).ServeHTTP)
		r.Post("/{"+handler.ThreadIDParam+"}/reply/{"+handler.PeerIDParam+"}",
			handler.NewReplyHandler(registry).ServeHTTP)
	})

	return router
}
