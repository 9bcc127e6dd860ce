// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	"crypto/subtle"

	group "github.com/bytemare/crypto"

	"github.com/bytemare/owl/message"
)

func (c *Configuration) challenge(generator, commitment, public *group.Element, proverIdentity []byte) []byte {
	return c.Hash.Hash(generator.Encode(), commitment.Encode(), public.Encode(), proverIdentity)
}

// CreateProof returns a Schnorr proof of knowledge of x such that X = G·x, bound to the prover's identity.
func (c *Configuration) CreateProof(
	x *group.Scalar,
	public, generator *group.Element,
	proverIdentity []byte,
) *message.Proof {
	v := c.RandomScalar()
	commitment := generator.Copy().Multiply(v)
	h := c.challenge(generator, commitment, public, proverIdentity)

	// r = v - x·h mod n
	response := v.Subtract(x.Copy().Multiply(c.ScalarFromDigest(h)))

	return &message.Proof{
		Challenge: h,
		Response:  response,
	}
}

// VerifyProof returns whether proof is a valid proof of knowledge of the discrete logarithm of public in base
// generator, made by proverIdentity.
func (c *Configuration) VerifyProof(
	proof *message.Proof,
	public, generator *group.Element,
	proverIdentity []byte,
) bool {
	if proof == nil || proof.Response == nil || public == nil || generator == nil {
		return false
	}

	if public.IsIdentity() || len(proof.Challenge) != c.Hash.Size() {
		return false
	}

	// V' = G·r + X·h
	commitment := generator.Copy().Multiply(proof.Response).
		Add(public.Copy().Multiply(c.ScalarFromDigest(proof.Challenge)))
	h := c.challenge(generator, commitment, public, proverIdentity)

	return subtle.ConstantTimeCompare(h, proof.Challenge) == 1
}
