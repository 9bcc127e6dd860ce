// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package main

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bytemare/owl"
	"github.com/bytemare/owl/internal/encoding"
	"github.com/bytemare/owl/message"
	"github.com/bytemare/owl/store"
)

var (
	errKeyMismatch   = errors.New("client and server keys differ")
	errSuiteMismatch = errors.New("credential record was registered with another configuration")
)

// party bundles both sides of the protocol, with the server's storage. Messages between them go through their byte
// encodings, as they would on a network.
type party struct {
	log          *slog.Logger
	suite        []byte
	client       *owl.Client
	server       *owl.Server
	deserializer *owl.Deserializer
	records      store.CredentialStore
	sessions     *store.Sessions
}

func newParty(
	conf *owl.Configuration,
	serverID string,
	records store.CredentialStore,
	log *slog.Logger,
) (*party, error) {
	client, err := conf.Client([]byte(serverID))
	if err != nil {
		return nil, err
	}

	server, err := conf.Server([]byte(serverID))
	if err != nil {
		return nil, err
	}

	d, err := conf.Deserializer()
	if err != nil {
		return nil, err
	}

	return &party{
		log:          log,
		suite:        conf.Serialize(),
		client:       client,
		server:       server,
		deserializer: d,
		records:      records,
		sessions:     store.NewSessions(0, log),
	}, nil
}

func (p *party) register(ctx context.Context, identity, password []byte) error {
	registration, err := p.client.Register(identity, password)
	if err != nil {
		return err
	}

	upload, err := p.deserializer.RegisterMessage(registration.Serialize())
	if err != nil {
		return err
	}

	record, err := p.server.Register(upload)
	if err != nil {
		return err
	}

	p.log.DebugContext(ctx, "registered", "identity", string(identity))

	return p.records.Put(ctx, identity, encoding.Concatenate(encoding.EncodeVector(p.suite), record.Serialize()))
}

// loadRecord returns the credential record of identity, checking it was registered under the same configuration.
func (p *party) loadRecord(ctx context.Context, identity []byte) (*message.CredentialRecord, error) {
	stored, err := p.records.Get(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("loading credential record: %w", err)
	}

	suite, offset, err := encoding.DecodeVector(stored)
	if err != nil {
		return nil, fmt.Errorf("loading credential record: %w", err)
	}

	if !bytes.Equal(suite, p.suite) {
		return nil, errSuiteMismatch
	}

	return p.deserializer.CredentialRecord(stored[offset:])
}

// login runs the three login messages and returns the shared key once the server accepted the client.
func (p *party) login(ctx context.Context, identity, password []byte) ([]byte, error) {
	record, err := p.loadRecord(ctx, identity)
	if err != nil {
		return nil, err
	}

	session, request, err := p.client.InitialLogin(identity, password)
	if err != nil {
		return nil, err
	}

	receivedRequest, err := p.deserializer.InitialLoginRequest(request.Serialize())
	if err != nil {
		return nil, err
	}

	response, state, err := p.server.InitialLogin(identity, receivedRequest, record)
	if err != nil {
		return nil, err
	}

	id, err := p.sessions.Put(ctx, identity, state.Serialize())
	if err != nil {
		return nil, err
	}

	state.Flush()

	taken := false

	defer func() {
		if !taken {
			if pending, err := p.sessions.Take(ctx, identity, id); err == nil {
				clear(pending)
				p.log.DebugContext(ctx, "discarded login session", "identity", string(identity), "session", id)
			}
		}
	}()

	receivedResponse, err := p.deserializer.InitialLoginResponse(response.Serialize())
	if err != nil {
		return nil, err
	}

	clientKey, finalize, err := p.client.FinalizeLogin(session, receivedResponse)
	if err != nil {
		return nil, err
	}

	receivedFinalize, err := p.deserializer.FinalizeLoginRequest(finalize.Serialize())
	if err != nil {
		return nil, err
	}

	encodedState, err := p.sessions.Take(ctx, identity, id)
	taken = true

	if err != nil {
		return nil, fmt.Errorf("loading login session: %w", err)
	}

	restored, err := p.deserializer.ServerCarryState(encodedState)
	clear(encodedState)

	if err != nil {
		return nil, err
	}

	serverKey, err := p.server.FinalizeLogin(identity, receivedFinalize, restored)
	if err != nil {
		p.log.DebugContext(ctx, "login rejected", "identity", string(identity), "error", err)
		return nil, err
	}

	if subtle.ConstantTimeCompare(clientKey, serverKey) != 1 {
		return nil, errKeyMismatch
	}

	p.log.DebugContext(ctx, "login accepted", "identity", string(identity), "session", id)

	return serverKey, nil
}
