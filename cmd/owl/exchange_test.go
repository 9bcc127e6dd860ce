// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package main

import (
	"context"
	"crypto"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/codahale/gubbins/assert"

	"github.com/bytemare/owl"
	"github.com/bytemare/owl/store"
)

func testParty(t *testing.T, g *globals, records store.CredentialStore) *party {
	t.Helper()

	conf, err := g.configuration()
	if err != nil {
		t.Fatal(err)
	}

	p, err := newParty(conf, g.ServerID, records, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}

	return p
}

func TestExchange(t *testing.T) {
	ctx := context.Background()

	for name := range groups {
		t.Run(name, func(t *testing.T) {
			g := &globals{Group: name, Hash: "sha512", ServerID: "localhost"}
			records, err := store.NewDirectoryCredentials(t.TempDir(), nil)
			if err != nil {
				t.Fatal(err)
			}

			p := testParty(t, g, records)

			if err = p.register(ctx, []byte("username"), []byte("password")); err != nil {
				t.Fatal(err)
			}

			key, err := p.login(ctx, []byte("username"), []byte("password"))
			assert.Equal(t, "err", nil, err)
			assert.Equal(t, "key length", 64, len(key))
			assert.Equal(t, "pending sessions", 0, p.sessions.Len())

			// A new party over the same directory, as a separate process would be.
			other := testParty(t, g, records)

			again, err := other.login(ctx, []byte("username"), []byte("password"))
			assert.Equal(t, "err", nil, err)
			assert.Equal(t, "key length", 64, len(again))

			if string(again) == string(key) {
				t.Fatal("two logins produced the same key")
			}
		})
	}
}

func TestExchangeWrongPassword(t *testing.T) {
	ctx := context.Background()
	p := testParty(t, &globals{Group: "p256", Hash: "sha256", ServerID: "localhost"}, store.NewMemoryCredentials(nil))

	if err := p.register(ctx, []byte("username"), []byte("password")); err != nil {
		t.Fatal(err)
	}

	if _, err := p.login(ctx, []byte("username"), []byte("incorrect")); !errors.Is(err, owl.ErrAuthentication) {
		t.Fatalf("expected %q, got %v", owl.ErrAuthentication, err)
	}

	assert.Equal(t, "pending sessions", 0, p.sessions.Len())
}

func TestExchangeAbortedLoginReleasesSession(t *testing.T) {
	ctx := context.Background()
	g := &globals{Group: "p256", Hash: "sha256", ServerID: "localhost"}
	p := testParty(t, g, store.NewMemoryCredentials(nil))

	if err := p.register(ctx, []byte("username"), []byte("password")); err != nil {
		t.Fatal(err)
	}

	// A client expecting another server rejects the server's proofs before the carry state is taken.
	conf, err := g.configuration()
	if err != nil {
		t.Fatal(err)
	}

	if p.client, err = conf.Client([]byte("elsewhere")); err != nil {
		t.Fatal(err)
	}

	if _, err = p.login(ctx, []byte("username"), []byte("password")); !errors.Is(err, owl.ErrZKPVerification) {
		t.Fatalf("expected %q, got %v", owl.ErrZKPVerification, err)
	}

	assert.Equal(t, "pending sessions", 0, p.sessions.Len())
}

func TestExchangeSuiteMismatch(t *testing.T) {
	ctx := context.Background()
	records := store.NewMemoryCredentials(nil)
	p := testParty(t, &globals{Group: "p256", Hash: "sha256", ServerID: "localhost"}, records)

	if err := p.register(ctx, []byte("username"), []byte("password")); err != nil {
		t.Fatal(err)
	}

	other := testParty(t, &globals{Group: "p384", Hash: "sha384", ServerID: "localhost"}, records)

	if _, err := other.login(ctx, []byte("username"), []byte("password")); !errors.Is(err, errSuiteMismatch) {
		t.Fatalf("expected %q, got %v", errSuiteMismatch, err)
	}
}

func TestExchangeUnknownUser(t *testing.T) {
	p := testParty(t, &globals{Group: "p256", Hash: "sha256", ServerID: "localhost"}, store.NewMemoryCredentials(nil))

	if _, err := p.login(context.Background(), []byte("nobody"), []byte("password")); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected %q, got %v", store.ErrNotFound, err)
	}
}

func TestConfigurationFlags(t *testing.T) {
	conf, err := (&globals{Group: "Ristretto255", Hash: "SHA3-256"}).configuration()
	assert.Equal(t, "err", nil, err)
	assert.Equal(t, "configuration", []byte{byte(owl.Ristretto255Sha512), byte(crypto.SHA3_256), 0}, conf.Serialize())

	if _, err = (&globals{Group: "p123", Hash: "sha256"}).configuration(); !errors.Is(err, errUnknownGroup) {
		t.Fatalf("expected %q, got %v", errUnknownGroup, err)
	}

	if _, err = (&globals{Group: "p256", Hash: "md5"}).configuration(); !errors.Is(err, errUnknownHash) {
		t.Fatalf("expected %q, got %v", errUnknownHash, err)
	}
}

func TestReadLine(t *testing.T) {
	for input, want := range map[string]string{
		"password\n":   "password",
		"password\r\n": "password",
		"password":     "password",
		"":             "",
	} {
		got, err := readLine(strings.NewReader(input))
		assert.Equal(t, "err", nil, err)
		assert.Equal(t, "line", want, string(got))
	}
}
