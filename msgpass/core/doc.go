// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package core provides the thread state objects and the registry that applies
paired send/receive/reply transitions between them.

# States

A simulated thread is always in exactly one of four states:

	READY    idle, the only state an operation may be initiated from
	SEND     client sent before the server called receive
	RECEIVE  server called receive before any client sent to it
	REPLY    client message was delivered, client awaits the server's reply

Blocked states are labels only. Nothing in this package suspends the caller.

# Transition rules

Thread implements state object design pattern. Every state carries a rule set
which disallows every transition by default; READY and REPLY override the
transitions they permit:

	type transitionRules interface {
		Send(serverState ThreadState) (ThreadState, error)
		Receive(clientState ThreadState) (ThreadState, error)
		Reply() (ThreadState, error)
		ServerReplied() (ThreadState, error)
	}

# Registry

Registry owns every Thread and is the only place thread states are written.
Each operation reads the peer's state, asks the initiating thread for its next
state, and applies the symmetric follow-up to the peer using the same
pre-call snapshot:

[client] Send(client, server)    -> client SEND,  server unchanged
[server] Receive(server, client) -> server READY, client REPLY
[server] Reply(server, client)   -> server READY, client READY

or, when the server arrives first:

[server] Receive(server, client) -> server RECEIVE, client unchanged
[client] Send(client, server)    -> client REPLY,   server READY
[server] Reply(server, client)   -> server READY,   client READY

A single mutex covers the whole registry since every operation touches two
arbitrary records.
*/
package core
