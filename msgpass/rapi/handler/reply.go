// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"

	"go.ipcsim.dev/msgpass/core"
	"go.ipcsim.dev/msgpass/rapi/rendering"
)

type replyHandler struct {
	registry core.RegistryService
}

func (h *replyHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	serverID, ok := threadIDParam(writer, request, ThreadIDParam)
	if !ok {
		return
	}
	clientID, ok := threadIDParam(writer, request, PeerIDParam)
	if !ok {
		return
	}
	payload, ok := readPayload(writer, request)
	if !ok {
		return
	}

	if err := h.registry.Reply(serverID, clientID, payload); err != nil {
		rendering.RenderRegistryError(writer, request, err)
		return
	}

	renderOperationResponse(writer, request, h.registry, core.ReplyOperation, serverID, clientID)
}

// NewReplyHandler returns a new instance of http handler
// for serving POST /threads/{id}/reply/{peer}, id being the server
func NewReplyHandler(registry core.RegistryService) http.Handler {
	return &replyHandler{registry: registry}
}
