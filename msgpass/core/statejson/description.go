// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statejson

import (
	"encoding/json"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// StateDescription ...
type StateDescription struct {
	Name         string `json:"name"`
	LastModified int64  `json:"lastModified"`
}

// ThreadDescription ...
type ThreadDescription struct {
	ID    uint32           `json:"id"`
	State StateDescription `json:"state"`
}

// RegistryDescription describes every thread of a registry for debugging
// purposes. Threads are ordered by id.
type RegistryDescription struct {
	RunID   string              `json:"runId"`
	NextID  uint32              `json:"nextId"`
	Threads []ThreadDescription `json:"threads"`
}

func (s *ThreadDescription) AsJSON() []byte {
	bytes, err := json.Marshal(s)
	if err != nil {
		log.Panicf("Failed to marshall thread description: %s", err)
	}
	return bytes
}

func (s *RegistryDescription) AsJSON() []byte {
	bytes, err := json.Marshal(s)
	if err != nil {
		log.Panicf("Failed to marshall registry description: %s", err)
	}
	return bytes
}

// Render writes one "Thread <id>, <state>" line per thread followed by a
// blank line.
func (s *RegistryDescription) Render(w io.Writer) error {
	for _, t := range s.Threads {
		if _, err := fmt.Fprintf(w, "Thread %d, %s\n", t.ID, t.State.Name); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
