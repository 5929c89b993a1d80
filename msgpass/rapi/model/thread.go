// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

// MaxPayloadSize is the largest message payload accepted by send and reply.
// Payloads are read and discarded.
const MaxPayloadSize = 6 * 1024 * 1024

// ThreadCreatedResponse is returned by POST /threads
type ThreadCreatedResponse struct {
	ID uint32 `json:"id"`
}

// ThreadStatus is a thread id with the state observed after an operation.
type ThreadStatus struct {
	ID    uint32 `json:"id"`
	State string `json:"state"`
}

// OperationResponse is returned by the send, receive and reply endpoints.
// States are read right after the operation completed, so under concurrent
// use they may already include later operations.
type OperationResponse struct {
	Operation string       `json:"operation"`
	Initiator ThreadStatus `json:"initiator"`
	Peer      ThreadStatus `json:"peer"`
}

// StatusResponse is a generic status response.
type StatusResponse struct {
	Status string `json:"status"`
}
