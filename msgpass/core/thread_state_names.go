// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

// String values of possible thread states
const (
	ThreadReadyStateName   = "READY"
	ThreadSendStateName    = "SEND"
	ThreadReceiveStateName = "RECEIVE"
	ThreadReplyStateName   = "REPLY"
)
