// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"go.ipcsim.dev/msgpass/core"
	"go.ipcsim.dev/msgpass/rapi/model"
	"go.ipcsim.dev/msgpass/rapi/rendering"
)

// URL parameter names used by the thread routes. The first path segment is
// always the thread initiating the operation, the second the peer.
const (
	ThreadIDParam = "id"
	PeerIDParam   = "peer"
)

// threadIDParam parses a thread id path parameter, rendering a 400 response
// when it is not a valid id.
func threadIDParam(w http.ResponseWriter, r *http.Request, param string) (core.ThreadID, bool) {
	value := chi.URLParam(r, param)
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		rendering.RenderInvalidThreadID(w, r, param, value)
		return 0, false
	}
	return core.ThreadID(id), true
}

// readPayload reads the message payload from the request body. The payload is
// only measured; the registry does not retain it.
func readPayload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body := http.MaxBytesReader(w, r.Body, model.MaxPayloadSize)
	payload, err := io.ReadAll(body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			rendering.RenderRequestEntityTooLarge(w, r)
			return nil, false
		}
		log.WithError(err).Warn("Failed to read payload")
		rendering.RenderInternalServerError(w, r)
		return nil, false
	}
	return payload, true
}

func threadStatus(registry core.RegistryService, id core.ThreadID) model.ThreadStatus {
	status := model.ThreadStatus{ID: uint32(id)}
	if state, err := registry.State(id); err == nil {
		status.State = state.String()
	}
	return status
}

func renderOperationResponse(w http.ResponseWriter, r *http.Request, registry core.RegistryService, op core.Operation, initiator, peer core.ThreadID) {
	resp := &model.OperationResponse{
		Operation: string(op),
		Initiator: threadStatus(registry, initiator),
		Peer:      threadStatus(registry, peer),
	}
	if err := rendering.RenderJSON(http.StatusOK, w, r, resp); err != nil {
		log.WithError(err).Warn("Error while rendering response")
		rendering.RenderInternalServerError(w, r)
	}
}
