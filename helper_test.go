// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package owl_test

import (
	"crypto"
	"errors"
	"testing"

	"github.com/bytemare/ksf"

	"github.com/bytemare/owl"
	"github.com/bytemare/owl/message"
)

type configuration struct {
	conf *owl.Configuration
	name string
}

var configurationTable = []*configuration{
	{
		name: "P256Sha256",
		conf: owl.DefaultConfiguration(),
	},
	{
		name: "Ristretto255Sha512",
		conf: &owl.Configuration{Group: owl.Ristretto255Sha512, Hash: crypto.SHA512},
	},
	{
		name: "P384Sha384",
		conf: &owl.Configuration{Group: owl.P384Sha384, Hash: crypto.SHA384},
	},
	{
		name: "P521Sha512",
		conf: &owl.Configuration{Group: owl.P521Sha512, Hash: crypto.SHA512},
	},
	{
		name: "Edwards25519Sha3",
		conf: &owl.Configuration{Group: owl.Edwards25519Sha512, Hash: crypto.SHA3_512},
	},
	{
		name: "Secp256k1Sha256",
		conf: &owl.Configuration{Group: owl.Secp256k1, Hash: crypto.SHA256},
	},
	{
		name: "P256Sha256Argon2id",
		conf: &owl.Configuration{Group: owl.P256Sha256, Hash: crypto.SHA256, KSF: ksf.Argon2id},
	},
}

var (
	testUser     = []byte("username")
	testPassword = []byte("password")
	testServer   = []byte("localhost")
)

func testAll(t *testing.T, f func(*testing.T, *configuration)) {
	for _, test := range configurationTable {
		t.Run(test.name, func(t *testing.T) {
			f(t, test)
		})
	}
}

func expectError(t *testing.T, err error, targets ...error) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error %q, got nil", targets[0])
	}

	for _, target := range targets {
		if !errors.Is(err, target) {
			t.Fatalf("expected error %q, got %q", target, err)
		}
	}
}

type parties struct {
	client *owl.Client
	server *owl.Server
}

func setup(t *testing.T, conf *owl.Configuration) *parties {
	t.Helper()

	client, err := conf.Client(testServer)
	if err != nil {
		t.Fatal(err)
	}

	server, err := conf.Server(testServer)
	if err != nil {
		t.Fatal(err)
	}

	return &parties{client: client, server: server}
}

func (p *parties) register(t *testing.T, identity, password []byte) *message.CredentialRecord {
	t.Helper()

	registration, err := p.client.Register(identity, password)
	if err != nil {
		t.Fatal(err)
	}

	record, err := p.server.Register(registration)
	if err != nil {
		t.Fatal(err)
	}

	return record
}

// loginState holds the values of a login up to the server's initial response.
type loginState struct {
	session  *owl.ClientSession
	request  *message.InitialLoginRequest
	response *message.InitialLoginResponse
	state    *message.ServerCarryState
}

func (p *parties) initLogin(
	t *testing.T,
	identity, password []byte,
	record *message.CredentialRecord,
) *loginState {
	t.Helper()

	session, request, err := p.client.InitialLogin(identity, password)
	if err != nil {
		t.Fatal(err)
	}

	response, state, err := p.server.InitialLogin(identity, request, record)
	if err != nil {
		t.Fatal(err)
	}

	return &loginState{session: session, request: request, response: response, state: state}
}
