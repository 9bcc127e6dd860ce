// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	group "github.com/bytemare/crypto"

	"github.com/bytemare/owl/message"
)

// Transcript gathers the public values of a login exchange, in the order they are hashed.
type Transcript struct {
	K              *group.Element
	UserIdentity   []byte
	X1, X2         *group.Element
	PI1, PI2       *message.Proof
	ServerIdentity []byte
	X3, X4         *group.Element
	PI3, PI4       *message.Proof
	Beta           *group.Element
	PIBeta         *message.Proof
	Alpha          *group.Element
	PIAlpha        *message.Proof
}

// TranscriptHash returns the digest binding the whole exchange. Both parties must produce the same order of inputs,
// any divergence fails the server's final check.
func (c *Configuration) TranscriptHash(t *Transcript) []byte {
	return c.Hash.Hash(
		t.K.Encode(),
		t.UserIdentity,
		t.X1.Encode(),
		t.X2.Encode(),
		t.PI1.Challenge, t.PI1.Response.Encode(),
		t.PI2.Challenge, t.PI2.Response.Encode(),
		t.ServerIdentity,
		t.X3.Encode(),
		t.X4.Encode(),
		t.PI3.Challenge, t.PI3.Response.Encode(),
		t.PI4.Challenge, t.PI4.Response.Encode(),
		t.Beta.Encode(),
		t.PIBeta.Challenge, t.PIBeta.Response.Encode(),
		t.Alpha.Encode(),
		t.PIAlpha.Challenge, t.PIAlpha.Response.Encode(),
	)
}

// SharedKey derives the session key from the shared element K.
func (c *Configuration) SharedKey(k *group.Element) []byte {
	return c.Hash.Hash(k.Encode())
}
