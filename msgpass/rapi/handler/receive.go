// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"

	"go.ipcsim.dev/msgpass/core"
	"go.ipcsim.dev/msgpass/rapi/rendering"
)

type receiveHandler struct {
	registry core.RegistryService
}

func (h *receiveHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	serverID, ok := threadIDParam(writer, request, ThreadIDParam)
	if !ok {
		return
	}
	clientID, ok := threadIDParam(writer, request, PeerIDParam)
	if !ok {
		return
	}

	if err := h.registry.Receive(serverID, clientID); err != nil {
		rendering.RenderRegistryError(writer, request, err)
		return
	}

	renderOperationResponse(writer, request, h.registry, core.ReceiveOperation, serverID, clientID)
}

// NewReceiveHandler returns a new instance of http handler
// for serving POST /threads/{id}/receive/{peer}, id being the server
func NewReceiveHandler(registry core.RegistryService) http.Handler {
	return &receiveHandler{registry: registry}
}
