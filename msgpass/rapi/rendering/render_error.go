// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendering

import (
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"go.ipcsim.dev/msgpass/core"
	"go.ipcsim.dev/msgpass/rapi/model"
)

const (
	ErrorTypeInternalServerError    = "InternalServerError"
	ErrorTypeRequestEntityTooLarge  = "RequestEntityTooLarge"
	ErrorTypeInvalidThreadID        = "InvalidThreadID"
	ErrorTypeUnknownThreadID        = "Thread.UnknownThreadID"
	ErrorTypeInvalidStateTransition = "Thread.InvalidStateTransition"
)

func renderError(w http.ResponseWriter, r *http.Request, status int, errorType string, format string, args ...interface{}) {
	if err := RenderJSON(status, w, r, &model.ErrorResponse{
		ErrorType:    errorType,
		ErrorMessage: fmt.Sprintf(format, args...),
	}); err != nil {
		log.WithError(err).Warn("Error while rendering response")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// RenderInternalServerError method for rendering error response
func RenderInternalServerError(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, http.StatusInternalServerError, ErrorTypeInternalServerError, "Internal Server Error")
}

// RenderRequestEntityTooLarge method for rendering error response
func RenderRequestEntityTooLarge(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, http.StatusRequestEntityTooLarge, ErrorTypeRequestEntityTooLarge,
		"Exceeded maximum allowed payload size (%d bytes).", model.MaxPayloadSize)
}

// RenderInvalidThreadID renders a malformed thread id path parameter
func RenderInvalidThreadID(w http.ResponseWriter, r *http.Request, param, value string) {
	renderError(w, r, http.StatusBadRequest, ErrorTypeInvalidThreadID, "Invalid %s thread id %q", param, value)
}

// RenderRegistryError maps an error returned by the thread registry onto a
// response. Unknown ids and rejected transitions are client errors.
func RenderRegistryError(w http.ResponseWriter, r *http.Request, err error) {
	var unknownErr *core.UnknownThreadIDError
	var transitionErr *core.InvalidStateTransitionError

	switch {
	case errors.As(err, &unknownErr):
		renderError(w, r, http.StatusNotFound, ErrorTypeUnknownThreadID, "Unknown thread id %d", unknownErr.ID)
	case errors.As(err, &transitionErr):
		renderError(w, r, http.StatusConflict, ErrorTypeInvalidStateTransition,
			"Thread %d cannot %s while in state %s", transitionErr.ID, transitionErr.Operation, transitionErr.CurrentState)
	case errors.Is(err, core.ErrUnknownThreadID):
		renderError(w, r, http.StatusNotFound, ErrorTypeUnknownThreadID, "%s", err)
	case errors.Is(err, core.ErrNotAllowed):
		renderError(w, r, http.StatusConflict, ErrorTypeInvalidStateTransition, "%s", err)
	default:
		log.WithError(err).Error("Unexpected registry error")
		RenderInternalServerError(w, r)
	}
}
