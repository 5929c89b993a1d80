// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendering

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
)

// RenderJSON renders v as a JSON response with the given status code. The
// value is marshalled up front so a failure is returned before anything is
// written to w.
func RenderJSON(status int, w http.ResponseWriter, r *http.Request, v interface{}) error {
	if _, err := json.Marshal(v); err != nil {
		return err
	}

	render.Status(r, status)
	render.JSON(w, r, v)
	return nil
}
