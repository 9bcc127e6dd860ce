// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package owl

import (
	"crypto/subtle"

	"github.com/bytemare/owl/internal"
	"github.com/bytemare/owl/message"
)

// Server represents an Owl Server. It is stateless: the credential record and the carry state it produces must be
// persisted by the application, and handed back on the subsequent calls.
type Server struct {
	conf     *internal.Configuration
	identity []byte
}

// NewServer returns a Server instantiation given the application Configuration and the server's identity.
// A nil configuration is replaced by DefaultConfiguration.
func NewServer(c *Configuration, serverIdentity []byte, options ...*Options) (*Server, error) {
	conf, err := setup(c, serverIdentity, options)
	if err != nil {
		return nil, err
	}

	return &Server{
		conf:     conf,
		identity: append([]byte(nil), serverIdentity...),
	}, nil
}

// Register returns the credential record for the client's registration message. The record must be stored by the
// application, keyed by the client's identity. The secret x3 is discarded, only X3 and its proof are kept.
func (s *Server) Register(request *message.RegisterMessage) (*message.CredentialRecord, error) {
	if !request.IsSet() {
		return nil, ErrRegisterMessage.Join(internal.ErrNilMessage)
	}

	if request.Pi.IsZero() || request.Secret.IsZero() {
		return nil, ErrRegisterMessage.Join(internal.ErrZeroScalar)
	}

	if subtle.ConstantTimeCompare(request.Verifier.Encode(), s.conf.Verifier(request.Secret).Encode()) != 1 {
		return nil, ErrRegisterMessage.Join(internal.ErrInvalidVerifier)
	}

	g := s.conf.Generator()
	x3 := s.conf.RandomScalar()
	X3 := g.Copy().Multiply(x3)
	pi3 := s.conf.CreateProof(x3, X3, g, s.identity)
	x3.Zero()

	return &message.CredentialRecord{
		X3:       X3,
		PI3:      pi3,
		Pi:       request.Pi.Copy(),
		Verifier: request.Verifier.Copy(),
	}, nil
}

// InitialLogin processes the client's initial login request against its credential record. It returns the response to
// send to the client, and the carry state the application must store, keyed by the client identity and session, until
// FinalizeLogin.
func (s *Server) InitialLogin(
	identity []byte,
	request *message.InitialLoginRequest,
	record *message.CredentialRecord,
) (*message.InitialLoginResponse, *message.ServerCarryState, error) {
	if len(identity) == 0 {
		return nil, nil, ErrInitialLoginRequest.Join(internal.ErrEmptyIdentity)
	}

	if !request.IsSet() {
		return nil, nil, ErrInitialLoginRequest.Join(internal.ErrNilMessage)
	}

	if !record.IsSet() {
		return nil, nil, ErrCredentialRecord.Join(internal.ErrNilMessage)
	}

	g := s.conf.Generator()

	if !s.conf.VerifyProof(request.PI1, request.X1, g, identity) {
		return nil, nil, ErrZKPVerification.Join(internal.ErrProofX1)
	}

	if !s.conf.VerifyProof(request.PI2, request.X2, g, identity) {
		return nil, nil, ErrZKPVerification.Join(internal.ErrProofX2)
	}

	x4 := s.conf.RandomScalar()
	X4 := g.Copy().Multiply(x4)
	pi4 := s.conf.CreateProof(x4, X4, g, s.identity)

	// beta = (X1 + X2 + X3)·(x4·pi)
	secret := x4.Copy().Multiply(record.Pi)
	betaGenerator := request.X1.Copy().Add(request.X2).Add(record.X3)
	beta := betaGenerator.Copy().Multiply(secret)
	piBeta := s.conf.CreateProof(secret, beta, betaGenerator, s.identity)
	secret.Zero()

	response := &message.InitialLoginResponse{
		X3:     record.X3.Copy(),
		X4:     X4.Copy(),
		PI3:    record.PI3.Copy(),
		PI4:    pi4.Copy(),
		Beta:   beta.Copy(),
		PIBeta: piBeta.Copy(),
	}

	state := &message.ServerCarryState{
		Verifier: record.Verifier.Copy(),
		Pi:       record.Pi.Copy(),
		SecretX4: x4,
		X1:       request.X1.Copy(),
		X2:       request.X2.Copy(),
		X3:       record.X3.Copy(),
		X4:       X4,
		Beta:     beta,
		PI1:      request.PI1.Copy(),
		PI2:      request.PI2.Copy(),
		PI3:      record.PI3.Copy(),
		PI4:      pi4,
		PIBeta:   piBeta,
	}

	return response, state, nil
}

// FinalizeLogin authenticates the client's final request against the carry state of the same login attempt, and
// returns the shared key on success. The carry state is flushed when the call returns, whatever the outcome, and the
// application must delete its stored copy.
func (s *Server) FinalizeLogin(
	identity []byte,
	request *message.FinalizeLoginRequest,
	state *message.ServerCarryState,
) ([]byte, error) {
	if !state.IsSet() {
		return nil, ErrCarryState.Join(internal.ErrSessionConsumed)
	}

	defer state.Flush()

	if len(identity) == 0 {
		return nil, ErrFinalizeLoginRequest.Join(internal.ErrEmptyIdentity)
	}

	if !request.IsSet() {
		return nil, ErrFinalizeLoginRequest.Join(internal.ErrNilMessage)
	}

	alphaGenerator := state.X1.Copy().Add(state.X3).Add(state.X4)
	if !s.conf.VerifyProof(request.PIAlpha, request.Alpha, alphaGenerator, identity) {
		return nil, ErrZKPVerification.Join(internal.ErrProofAlpha)
	}

	// K = (alpha - X2·(x4·pi))·x4
	secret := state.SecretX4.Copy().Multiply(state.Pi)
	k := request.Alpha.Copy().Subtract(state.X2.Copy().Multiply(secret)).Multiply(state.SecretX4)
	secret.Zero()

	h := s.conf.TranscriptHash(&internal.Transcript{
		K:              k,
		UserIdentity:   identity,
		X1:             state.X1,
		X2:             state.X2,
		PI1:            state.PI1,
		PI2:            state.PI2,
		ServerIdentity: s.identity,
		X3:             state.X3,
		X4:             state.X4,
		PI3:            state.PI3,
		PI4:            state.PI4,
		Beta:           state.Beta,
		PIBeta:         state.PIBeta,
		Alpha:          request.Alpha,
		PIAlpha:        request.PIAlpha,
	})

	// G·r + T·(h mod n) == X1
	check := s.conf.Generator().Multiply(request.R).Add(state.Verifier.Copy().Multiply(s.conf.ScalarFromDigest(h)))
	if subtle.ConstantTimeCompare(check.Encode(), state.X1.Encode()) != 1 {
		return nil, ErrAuthentication.Join(internal.ErrClientAuthentication)
	}

	return s.conf.SharedKey(k), nil
}
