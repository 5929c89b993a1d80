// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"go.ipcsim.dev/msgpass/core"
	"go.ipcsim.dev/msgpass/rapi/model"
	"go.ipcsim.dev/msgpass/rapi/rendering"
)

type threadCreateHandler struct {
	registry core.RegistryService
}

func (h *threadCreateHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	id := h.registry.Create()
	if err := rendering.RenderJSON(http.StatusCreated, writer, request, &model.ThreadCreatedResponse{ID: uint32(id)}); err != nil {
		log.WithError(err).Warn("Error while rendering response")
		rendering.RenderInternalServerError(writer, request)
	}
}

// NewThreadCreateHandler returns a new instance of http handler
// for serving POST /threads
func NewThreadCreateHandler(registry core.RegistryService) http.Handler {
	return &threadCreateHandler{registry: registry}
}

type threadListHandler struct {
	registry core.RegistryService
}

func (h *threadListHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	desc := h.registry.Describe()
	if err := rendering.RenderJSON(http.StatusOK, writer, request, &desc); err != nil {
		log.WithError(err).Warn("Error while rendering response")
		rendering.RenderInternalServerError(writer, request)
	}
}

// NewThreadListHandler returns a new instance of http handler
// for serving GET /threads, a read-only snapshot of the registry.
func NewThreadListHandler(registry core.RegistryService) http.Handler {
	return &threadListHandler{registry: registry}
}

type threadGetHandler struct {
	registry core.RegistryService
}

func (h *threadGetHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	id, ok := threadIDParam(writer, request, ThreadIDParam)
	if !ok {
		return
	}

	desc, err := h.registry.DescribeThread(id)
	if err != nil {
		rendering.RenderRegistryError(writer, request, err)
		return
	}

	if err := rendering.RenderJSON(http.StatusOK, writer, request, &desc); err != nil {
		log.WithError(err).Warn("Error while rendering response")
		rendering.RenderInternalServerError(writer, request)
	}
}

// NewThreadGetHandler returns a new instance of http handler
// for serving GET /threads/{id}
func NewThreadGetHandler(registry core.RegistryService) http.Handler {
	return &threadGetHandler{registry: registry}
}
