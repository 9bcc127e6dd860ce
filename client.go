// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package owl

import (
	group "github.com/bytemare/crypto"

	"github.com/bytemare/owl/internal"
	"github.com/bytemare/owl/message"
)

// Client represents an Owl Client. It holds no per-login state: the secrets of a login attempt live in the
// ClientSession returned by InitialLogin.
type Client struct {
	conf           *internal.Configuration
	serverIdentity []byte
}

// NewClient returns a new Client instantiation given the application Configuration and the server's identity.
// A nil configuration is replaced by DefaultConfiguration.
func NewClient(c *Configuration, serverIdentity []byte, options ...*Options) (*Client, error) {
	conf, err := setup(c, serverIdentity, options)
	if err != nil {
		return nil, err
	}

	return &Client{
		conf:           conf,
		serverIdentity: append([]byte(nil), serverIdentity...),
	}, nil
}

// ClientSession holds the ephemeral secrets of a single login attempt, between InitialLogin and FinalizeLogin.
// It is single use and must not be shared between concurrent logins.
type ClientSession struct {
	identity []byte
	t        *group.Scalar
	pi       *group.Scalar
	x1       *group.Scalar
	x2       *group.Scalar

	// X1, X2, PI1 and PI2 are the public values sent in the initial login request.
	X1  *group.Element
	X2  *group.Element
	PI1 *message.Proof
	PI2 *message.Proof
}

func (s *ClientSession) ready() bool {
	return s != nil && s.t != nil && s.pi != nil && s.x1 != nil && s.x2 != nil
}

// Flush does a best-effort attempt to clear the session secrets from memory. A flushed session can't be finalized.
func (s *ClientSession) Flush() {
	if s == nil {
		return
	}

	internal.ClearScalar(&s.t)
	internal.ClearScalar(&s.pi)
	internal.ClearScalar(&s.x1)
	internal.ClearScalar(&s.x2)
	internal.ClearSlice(&s.identity)
}

// Register returns the registration message for the given identity and password. It retains no state.
func (c *Client) Register(identity, password []byte) (*message.RegisterMessage, error) {
	if len(identity) == 0 {
		return nil, ErrRegisterMessage.Join(internal.ErrEmptyIdentity)
	}

	hashes := c.conf.DeriveCredentialHashes(identity, password)

	return &message.RegisterMessage{
		Secret:   hashes.T,
		Pi:       hashes.Pi,
		Verifier: c.conf.Verifier(hashes.T),
	}, nil
}

// InitialLogin starts a login attempt. It returns the session to keep until the server's response arrives, and the
// request to send to the server.
func (c *Client) InitialLogin(identity, password []byte) (*ClientSession, *message.InitialLoginRequest, error) {
	if len(identity) == 0 {
		return nil, nil, ErrInitialLoginRequest.Join(internal.ErrEmptyIdentity)
	}

	hashes := c.conf.DeriveCredentialHashes(identity, password)
	defer hashes.Flush()

	g := c.conf.Generator()

	x1 := c.conf.RandomScalar()
	x2 := c.conf.RandomScalar()
	X1 := g.Copy().Multiply(x1)
	X2 := g.Copy().Multiply(x2)

	id := append([]byte(nil), identity...)
	session := &ClientSession{
		identity: id,
		t:        hashes.T.Copy(),
		pi:       hashes.Pi.Copy(),
		x1:       x1,
		x2:       x2,
		X1:       X1,
		X2:       X2,
		PI1:      c.conf.CreateProof(x1, X1, g, id),
		PI2:      c.conf.CreateProof(x2, X2, g, id),
	}

	return session, &message.InitialLoginRequest{
		X1:  X1.Copy(),
		X2:  X2.Copy(),
		PI1: session.PI1.Copy(),
		PI2: session.PI2.Copy(),
	}, nil
}

func (c *Client) verifyResponse(session *ClientSession, response *message.InitialLoginResponse) error {
	g := c.conf.Generator()

	if !c.conf.VerifyProof(response.PI3, response.X3, g, c.serverIdentity) {
		return ErrZKPVerification.Join(internal.ErrProofX3)
	}

	if !c.conf.VerifyProof(response.PI4, response.X4, g, c.serverIdentity) {
		return ErrZKPVerification.Join(internal.ErrProofX4)
	}

	betaGenerator := session.X1.Copy().Add(session.X2).Add(response.X3)
	if !c.conf.VerifyProof(response.PIBeta, response.Beta, betaGenerator, c.serverIdentity) {
		return ErrZKPVerification.Join(internal.ErrProofBeta)
	}

	return nil
}

// FinalizeLogin verifies the server's response and returns the shared key and the request to send to the server.
// The key must not be used before the server accepts that request. The session is flushed when the call returns,
// whatever the outcome.
func (c *Client) FinalizeLogin(
	session *ClientSession,
	response *message.InitialLoginResponse,
) (key []byte, request *message.FinalizeLoginRequest, err error) {
	if !session.ready() {
		return nil, nil, ErrUninitializedClient
	}

	defer session.Flush()

	if !response.IsSet() {
		return nil, nil, ErrInitialLoginResponse.Join(internal.ErrNilMessage)
	}

	if err = c.verifyResponse(session, response); err != nil {
		return nil, nil, err
	}

	// alpha = (X1 + X3 + X4)·(x2·pi)
	alphaGenerator := session.X1.Copy().Add(response.X3).Add(response.X4)
	secret := session.x2.Copy().Multiply(session.pi)
	alpha := alphaGenerator.Copy().Multiply(secret)
	piAlpha := c.conf.CreateProof(secret, alpha, alphaGenerator, session.identity)

	// K = (beta - X4·(x2·pi))·x2
	k := response.Beta.Copy().Subtract(response.X4.Copy().Multiply(secret)).Multiply(session.x2)
	secret.Zero()

	h := c.conf.TranscriptHash(&internal.Transcript{
		K:              k,
		UserIdentity:   session.identity,
		X1:             session.X1,
		X2:             session.X2,
		PI1:            session.PI1,
		PI2:            session.PI2,
		ServerIdentity: c.serverIdentity,
		X3:             response.X3,
		X4:             response.X4,
		PI3:            response.PI3,
		PI4:            response.PI4,
		Beta:           response.Beta,
		PIBeta:         response.PIBeta,
		Alpha:          alpha,
		PIAlpha:        piAlpha,
	})

	// r = x1 - t·h mod n
	r := session.x1.Copy().Subtract(session.t.Copy().Multiply(c.conf.ScalarFromDigest(h)))

	return c.conf.SharedKey(k), &message.FinalizeLoginRequest{
		Alpha:   alpha,
		PIAlpha: piAlpha,
		R:       r,
	}, nil
}
