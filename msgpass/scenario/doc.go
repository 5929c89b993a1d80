// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package scenario drives a thread registry from YAML scripts.

	name: client-first
	threads: [client, server]
	steps:
	  - op: send
	    client: client
	    server: server
	    expect: {client: SEND, server: READY}
	  - op: print

Steps run in order against one registry. Each step may state the thread
states it expects afterwards and the kind of error it expects the operation
to fail with.
*/
package scenario
