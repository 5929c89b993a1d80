// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"go.ipcsim.dev/msgpass/core"
	"go.ipcsim.dev/msgpass/core/statejson"
	"go.ipcsim.dev/msgpass/rapi/middleware"
	"go.ipcsim.dev/msgpass/rapi/model"
	"go.ipcsim.dev/msgpass/rapi/rendering"
)

func makeRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	responseRecorder := httptest.NewRecorder()
	router.ServeHTTP(responseRecorder, httptest.NewRequest(method, target, reader))
	return responseRecorder
}

func createThread(t *testing.T, router http.Handler) uint32 {
	t.Helper()
	responseRecorder := makeRequest(t, router, "POST", "/threads", "")
	require.Equal(t, http.StatusCreated, responseRecorder.Code)
	var resp model.ThreadCreatedResponse
	require.NoError(t, json.Unmarshal(responseRecorder.Body.Bytes(), &resp))
	return resp.ID
}

func requireOperation(t *testing.T, router http.Handler, target, body, initiatorState, peerState string) {
	t.Helper()
	responseRecorder := makeRequest(t, router, "POST", target, body)
	require.Equal(t, http.StatusOK, responseRecorder.Code, responseRecorder.Body.String())
	var resp model.OperationResponse
	require.NoError(t, json.Unmarshal(responseRecorder.Body.Bytes(), &resp))
	assert.Equal(t, initiatorState, resp.Initiator.State, target)
	assert.Equal(t, peerState, resp.Peer.State, target)
}

func TestRouterClientFirst(t *testing.T) {
	router := NewRouter(core.NewRegistry())
	a, b := createThread(t, router), createThread(t, router)

	requireOperation(t, router, fmt.Sprintf("/threads/%d/send/%d", a, b), "hi!", "SEND", "READY")
	requireOperation(t, router, fmt.Sprintf("/threads/%d/receive/%d", b, a), "", "READY", "REPLY")
	requireOperation(t, router, fmt.Sprintf("/threads/%d/reply/%d", b, a), "welcome back", "READY", "READY")
}

func TestRouterServerFirst(t *testing.T) {
	router := NewRouter(core.NewRegistry())
	a, b := createThread(t, router), createThread(t, router)

	requireOperation(t, router, fmt.Sprintf("/threads/%d/receive/%d", b, a), "", "RECEIVE", "READY")
	requireOperation(t, router, fmt.Sprintf("/threads/%d/send/%d", a, b), "", "REPLY", "READY")
	requireOperation(t, router, fmt.Sprintf("/threads/%d/reply/%d", b, a), "", "READY", "READY")
}

func TestRouterErrors(t *testing.T) {
	router := NewRouter(core.NewRegistry())
	a := createThread(t, router)

	responseRecorder := makeRequest(t, router, "POST", fmt.Sprintf("/threads/%d/reply/%d", a, a), "")
	assert.Equal(t, http.StatusConflict, responseRecorder.Code)

	responseRecorder = makeRequest(t, router, "POST", fmt.Sprintf("/threads/%d/send/9999", a), "")
	assert.Equal(t, http.StatusNotFound, responseRecorder.Code)
	var errorResponse model.ErrorResponse
	require.NoError(t, json.Unmarshal(responseRecorder.Body.Bytes(), &errorResponse))
	assert.Equal(t, rendering.ErrorTypeUnknownThreadID, errorResponse.ErrorType)

	responseRecorder = makeRequest(t, router, "POST", "/threads/one/send/2", "")
	assert.Equal(t, http.StatusBadRequest, responseRecorder.Code)

	responseRecorder = makeRequest(t, router, "GET", fmt.Sprintf("/threads/%d/send/9999", a), "")
	assert.Equal(t, http.StatusMethodNotAllowed, responseRecorder.Code)

	responseRecorder = makeRequest(t, router, "GET", fmt.Sprintf("/threads/%d", a), "")
	require.Equal(t, http.StatusOK, responseRecorder.Code)
	var thread statejson.ThreadDescription
	require.NoError(t, json.Unmarshal(responseRecorder.Body.Bytes(), &thread))
	assert.Equal(t, core.ThreadReadyStateName, thread.State.Name)
}

func TestRouterSnapshotAndPing(t *testing.T) {
	registry := core.NewRegistry()
	router := NewRouter(registry)
	a, b := createThread(t, router), createThread(t, router)
	requireOperation(t, router, fmt.Sprintf("/threads/%d/send/%d", a, b), "", "SEND", "READY")

	responseRecorder := makeRequest(t, router, "GET", "/threads", "")
	require.Equal(t, http.StatusOK, responseRecorder.Code)
	assert.NotEmpty(t, responseRecorder.Header().Get(middleware.RequestIDHeader))

	var desc statejson.RegistryDescription
	require.NoError(t, json.Unmarshal(responseRecorder.Body.Bytes(), &desc))
	require.Len(t, desc.Threads, 2)
	assert.Equal(t, "SEND", desc.Threads[0].State.Name)
	assert.Equal(t, "READY", desc.Threads[1].State.Name)

	responseRecorder = makeRequest(t, router, "GET", "/ping", "")
	assert.Equal(t, "pong", responseRecorder.Body.String())
}

func TestServerListenServeShutdown(t *testing.T) {
	server := NewServer("127.0.0.1", 0, core.NewRegistry())
	require.NoError(t, server.Listen())
	require.True(t, server.IsListening())
	require.NotZero(t, server.Port())

	ctx, cancel := context.WithCancel(context.Background())
	var errg errgroup.Group
	errg.Go(func() error { return server.Serve(ctx) })

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Post(server.URL("/threads"), "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	cancel()
	assert.ErrorIs(t, errg.Wait(), context.Canceled)
}
