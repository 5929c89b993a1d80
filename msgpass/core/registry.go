// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"go.ipcsim.dev/msgpass/core/statejson"
	"go.ipcsim.dev/msgpass/utils/invariant"

	log "github.com/sirupsen/logrus"
)

// FirstThreadID is the id issued by the first Create call of a registry.
const FirstThreadID ThreadID = 1

// RegistryService is the complete contract of a thread pool: creation, the
// three paired operations and read-only views.
type RegistryService interface {
	Create() ThreadID
	Send(clientID, serverID ThreadID, payload []byte) error
	Receive(serverID, clientID ThreadID) error
	Reply(serverID, clientID ThreadID, payload []byte) error
	State(id ThreadID) (ThreadState, error)
	Snapshot() map[ThreadID]ThreadState
	Describe() statejson.RegistryDescription
	DescribeThread(id ThreadID) (statejson.ThreadDescription, error)
	RunID() uuid.UUID
}

// Registry owns every Thread of a simulation run and serializes all
// transitions under one mutex.
type Registry struct {
	mutex   sync.Mutex
	runID   uuid.UUID
	threads map[ThreadID]*Thread
	nextID  ThreadID
}

var _ RegistryService = (*Registry)(nil)

// NewRegistry returns an empty registry for a new simulation run.
func NewRegistry() *Registry {
	return &Registry{
		runID:   uuid.New(),
		threads: make(map[ThreadID]*Thread),
		nextID:  FirstThreadID,
	}
}

// RunID identifies the simulation run the registry belongs to.
func (r *Registry) RunID() uuid.UUID {
	return r.runID
}

// Create allocates the next id and inserts a READY thread under it.
func (r *Registry) Create() ThreadID {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	id := r.nextID
	r.nextID++
	r.threads[id] = newThread(id)

	log.WithField("thread", id).Debug("Thread created")
	return id
}

// Send models MsgSend from client to server. The client becomes REPLY blocked
// if the server was already RECEIVE blocked, which also releases the server;
// otherwise the client becomes SEND blocked and the server is untouched. The
// payload is accepted but not retained.
func (r *Registry) Send(clientID, serverID ThreadID, payload []byte) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	logger := log.WithFields(log.Fields{"client": clientID, "server": serverID, "payloadSize": len(payload)})

	client, server, err := r.findPair(clientID, serverID)
	if err != nil {
		logger.WithError(err).Debug("Send rejected")
		return err
	}

	serverBefore := server.state
	clientNext, err := client.DecideSend(serverBefore)
	if err != nil {
		logger.WithError(err).Debug("Send rejected")
		return err
	}
	serverNext := MaybeReleaseReceiver(serverBefore)

	client.setState(clientNext)
	if serverNext != serverBefore {
		server.setState(serverNext)
	}

	if serverBefore == StateReceive {
		invariant.Checkf(client.state == StateReply && server.state == StateReady,
			"send to receiving server %d left client %d in %s and server in %s", serverID, clientID, client.state, server.state)
	} else {
		invariant.Checkf(client.state == StateSend,
			"send to non-receiving server %d left client %d in %s", serverID, clientID, client.state)
	}

	logger.WithFields(log.Fields{"clientState": client.state, "serverState": server.state}).Debug("Send")
	return nil
}

// Receive models MsgReceive by server from client. The server does not block
// if the client was already SEND blocked, and that client advances to REPLY;
// otherwise the server becomes RECEIVE blocked and the client is untouched.
func (r *Registry) Receive(serverID, clientID ThreadID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	logger := log.WithFields(log.Fields{"server": serverID, "client": clientID})

	server, client, err := r.findPair(serverID, clientID)
	if err != nil {
		logger.WithError(err).Debug("Receive rejected")
		return err
	}

	clientBefore := client.state
	serverNext, err := server.DecideReceive(clientBefore)
	if err != nil {
		logger.WithError(err).Debug("Receive rejected")
		return err
	}
	clientNext := MaybeAdvanceToReply(clientBefore)

	server.setState(serverNext)
	if clientNext != clientBefore {
		client.setState(clientNext)
	}

	if clientBefore == StateSend {
		invariant.Checkf(server.state == StateReady && client.state == StateReply,
			"receive from sending client %d left server %d in %s and client in %s", clientID, serverID, server.state, client.state)
	} else {
		invariant.Checkf(server.state == StateReceive,
			"receive from non-sending client %d left server %d in %s", clientID, serverID, server.state)
	}

	logger.WithFields(log.Fields{"serverState": server.state, "clientState": client.state}).Debug("Receive")
	return nil
}

// Reply models MsgReply from server to a REPLY blocked client. The server
// must be READY and stays READY; the client becomes READY. Nothing is written
// unless both parties accept the transition.
func (r *Registry) Reply(serverID, clientID ThreadID, payload []byte) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	logger := log.WithFields(log.Fields{"server": serverID, "client": clientID, "payloadSize": len(payload)})

	server, client, err := r.findPair(serverID, clientID)
	if err != nil {
		logger.WithError(err).Debug("Reply rejected")
		return err
	}

	serverNext, err := server.DecideReply()
	if err != nil {
		logger.WithError(err).Debug("Reply rejected")
		return err
	}
	clientNext, err := client.DecideUnblockOnReply()
	if err != nil {
		logger.WithError(err).Debug("Reply rejected")
		return err
	}

	server.setState(serverNext)
	client.setState(clientNext)

	invariant.Checkf(server.state == StateReady && client.state == StateReady,
		"reply from server %d left server in %s and client %d in %s", serverID, server.state, clientID, client.state)

	logger.Debug("Reply")
	return nil
}

// State returns the current state of a single thread.
func (r *Registry) State(id ThreadID) (ThreadState, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	t, err := r.find(id)
	if err != nil {
		return StateReady, err
	}
	return t.state, nil
}

// Snapshot returns a copy of the id to state mapping.
func (r *Registry) Snapshot() map[ThreadID]ThreadState {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	snapshot := make(map[ThreadID]ThreadState, len(r.threads))
	for id, t := range r.threads {
		snapshot[id] = t.state
	}
	return snapshot
}

// Len returns the number of threads created so far.
func (r *Registry) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.threads)
}

// Describe returns registry description object, threads ordered by id.
func (r *Registry) Describe() statejson.RegistryDescription {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ids := make([]ThreadID, 0, len(r.threads))
	for id := range r.threads {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	res := statejson.RegistryDescription{
		RunID:   r.runID.String(),
		NextID:  uint32(r.nextID),
		Threads: make([]statejson.ThreadDescription, 0, len(ids)),
	}
	for _, id := range ids {
		res.Threads = append(res.Threads, r.threads[id].GetThreadDescription())
	}
	return res
}

// DescribeThread returns the description of a single thread.
func (r *Registry) DescribeThread(id ThreadID) (statejson.ThreadDescription, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	t, err := r.find(id)
	if err != nil {
		return statejson.ThreadDescription{}, err
	}
	return t.GetThreadDescription(), nil
}

func (r *Registry) find(id ThreadID) (*Thread, error) {
	t, found := r.threads[id]
	if !found {
		return nil, &UnknownThreadIDError{ID: id}
	}
	return t, nil
}

// findPair looks up the initiator and its peer. Both may be the same thread.
func (r *Registry) findPair(initiatorID, peerID ThreadID) (initiator *Thread, peer *Thread, err error) {
	if initiator, err = r.find(initiatorID); err != nil {
		return nil, nil, err
	}
	if peer, err = r.find(peerID); err != nil {
		return nil, nil, err
	}
	return initiator, peer, nil
}
