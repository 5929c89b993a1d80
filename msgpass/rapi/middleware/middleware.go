// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"net/http"

	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RequestIDHeader carries the id assigned to each API request.
const RequestIDHeader = "Msgpass-Request-Id"

type requestIDCtxKeyType struct{}

var requestIDCtxKey = requestIDCtxKeyType{}

// RequestIDFromContext returns the request id assigned by AccessLogMiddleware.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDCtxKey).(string)
	return id, ok
}

// AccessLogMiddleware assigns a request id, echoes it in the response header
// and writes api access log.
func AccessLogMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.New().String()
			w.Header().Set(RequestIDHeader, requestID)
			r = r.WithContext(context.WithValue(r.Context(), requestIDCtxKey, requestID))

			logger := log.WithFields(log.Fields{"requestId": requestID, "method": r.Method, "url": r.URL.String()})
			logger.Debug("API request")

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			logger = logger.WithField("status", status)
			if status/100 == 5 {
				logger.Error("API response")
			} else {
				logger.Debug("API response")
			}
		}
		return http.HandlerFunc(fn)
	}
}
