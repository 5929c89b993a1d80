// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"

	"go.ipcsim.dev/msgpass/core"
	"go.ipcsim.dev/msgpass/rapi/rendering"
)

type sendHandler struct {
	registry core.RegistryService
}

func (h *sendHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	clientID, ok := threadIDParam(writer, request, ThreadIDParam)
	if !ok {
		return
	}
	serverID, ok := threadIDParam(writer, request, PeerIDParam)
	if !ok {
		return
	}
	payload, ok := readPayload(writer, request)
	if !ok {
		return
	}

	if err := h.registry.Send(clientID, serverID, payload); err != nil {
		rendering.RenderRegistryError(writer, request, err)
		return
	}

	renderOperationResponse(writer, request, h.registry, core.SendOperation, clientID, serverID)
}

// NewSendHandler returns a new instance of http handler
// for serving POST /threads/{id}/send/{peer}, id being the client
func NewSendHandler(registry core.RegistryService) http.Handler {
	return &sendHandler{registry: registry}
}
