// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import "errors"

var (
	// ErrConfigurationInvalidLength happens when deserializing a configuration of invalid length.
	ErrConfigurationInvalidLength = errors.New("invalid encoded configuration length")

	// ErrInvalidGroup happens when the group identifier is not supported.
	ErrInvalidGroup = errors.New("invalid group identifier")

	// ErrInvalidHash happens when the hash function identifier is not supported.
	ErrInvalidHash = errors.New("invalid hash function identifier")

	// ErrInvalidKSF happens when the key stretching function identifier is not available.
	ErrInvalidKSF = errors.New("invalid key stretching function identifier")

	// ErrEmptyServerIdentity happens when a party is set up without the server identity.
	ErrEmptyServerIdentity = errors.New("empty server identity")

	// ErrEmptyIdentity happens when the user identity is empty.
	ErrEmptyIdentity = errors.New("empty user identity")

	// ErrNilMessage happens when a message or one of its fields is nil.
	ErrNilMessage = errors.New("nil message or message field")

	// ErrInvalidEncodingLength happens when an encoded message does not have the expected length.
	ErrInvalidEncodingLength = errors.New("invalid encoding length")

	// ErrInvalidElement happens when an element fails to decode.
	ErrInvalidElement = errors.New("invalid group element encoding")

	// ErrIdentityElement happens when an element is the group identity.
	ErrIdentityElement = errors.New("element is the identity element")

	// ErrInvalidScalar happens when a scalar fails to decode.
	ErrInvalidScalar = errors.New("invalid scalar encoding")

	// ErrZeroScalar happens when a secret scalar is zero.
	ErrZeroScalar = errors.New("scalar is zero")

	// ErrInvalidVerifier happens when the registration verifier T does not match G·t.
	ErrInvalidVerifier = errors.New("registration verifier does not match the long-term secret")

	// ErrProofX1 happens when the proof of knowledge of x1 is invalid.
	ErrProofX1 = errors.New("invalid proof for X1")

	// ErrProofX2 happens when the proof of knowledge of x2 is invalid.
	ErrProofX2 = errors.New("invalid proof for X2")

	// ErrProofX3 happens when the proof of knowledge of x3 is invalid.
	ErrProofX3 = errors.New("invalid proof for X3")

	// ErrProofX4 happens when the proof of knowledge of x4 is invalid.
	ErrProofX4 = errors.New("invalid proof for X4")

	// ErrProofBeta happens when the proof for beta is invalid.
	ErrProofBeta = errors.New("invalid proof for beta")

	// ErrProofAlpha happens when the proof for alpha is invalid.
	ErrProofAlpha = errors.New("invalid proof for alpha")

	// ErrClientAuthentication happens when the server's final check over the client response fails.
	ErrClientAuthentication = errors.New("client response does not satisfy G·r + T·h = X1")

	// ErrSessionConsumed happens when a client session or a server carry state is used after it was finalized.
	ErrSessionConsumed = errors.New("session already consumed")
)
