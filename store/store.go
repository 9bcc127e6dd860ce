// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package store provides reference persistence for the server side of Owl: credential records keyed by user identity,
// and the carry state of ongoing logins. Values are opaque byte encodings, as produced by the Serialize methods of the
// message package, and decoded with the owl Deserializer.
package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mr-tron/base58"
)

var (
	// ErrNotFound happens when no value is stored under the requested key.
	ErrNotFound = errors.New("not found")

	// ErrEmptyIdentity happens when the identity used as key is empty.
	ErrEmptyIdentity = errors.New("empty identity")
)

// CredentialStore persists the credential record of each registered user.
type CredentialStore interface {
	// Put stores the record for identity, replacing any previous one.
	Put(ctx context.Context, identity, record []byte) error

	// Get returns the record stored for identity, or ErrNotFound.
	Get(ctx context.Context, identity []byte) ([]byte, error)

	// Delete removes the record of identity. Deleting a missing record returns ErrNotFound.
	Delete(ctx context.Context, identity []byte) error
}

// key returns the textual form of an identity, usable as a map key or a file name.
func key(identity []byte) (string, error) {
	if len(identity) == 0 {
		return "", ErrEmptyIdentity
	}

	return base58.Encode(identity), nil
}

func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}

	return l
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
