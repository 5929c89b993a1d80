// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendering

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.ipcsim.dev/msgpass/core"
	"go.ipcsim.dev/msgpass/rapi/model"
)

func renderRegistryError(t *testing.T, err error) (int, model.ErrorResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/threads/1/send/2", nil)
	RenderRegistryError(w, r, err)

	var errorResponse model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errorResponse))
	return w.Code, errorResponse
}

func TestRenderRegistryErrorUnknownThreadID(t *testing.T) {
	code, resp := renderRegistryError(t, &core.UnknownThreadIDError{ID: 9999})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, ErrorTypeUnknownThreadID, resp.ErrorType)
	assert.Equal(t, "Unknown thread id 9999", resp.ErrorMessage)
}

func TestRenderRegistryErrorInvalidStateTransition(t *testing.T) {
	err := fmt.Errorf("reply: %w", &core.InvalidStateTransitionError{ID: 1, CurrentState: core.StateReady, Operation: core.UnblockOnReplyOperation})
	code, resp := renderRegistryError(t, err)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, ErrorTypeInvalidStateTransition, resp.ErrorType)
	assert.Equal(t, "Thread 1 cannot unblock-on-reply while in state READY", resp.ErrorMessage)
}

func TestRenderRegistryErrorSentinels(t *testing.T) {
	code, resp := renderRegistryError(t, core.ErrNotAllowed)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, ErrorTypeInvalidStateTransition, resp.ErrorType)

	code, resp = renderRegistryError(t, core.ErrUnknownThreadID)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, ErrorTypeUnknownThreadID, resp.ErrorType)
}

func TestRenderRegistryErrorUnexpected(t *testing.T) {
	code, resp := renderRegistryError(t, errors.New("disk on fire"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, ErrorTypeInternalServerError, resp.ErrorType)
}

func TestRenderJSONRejectsUnmarshallableValue(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/threads", nil)
	err := RenderJSON(http.StatusOK, w, r, map[string]interface{}{"ch": make(chan int)})
	assert.Error(t, err)
	assert.Zero(t, w.Body.Len())
}
