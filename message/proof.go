// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package message provides message structures for the Owl protocol.
package message

import (
	group "github.com/bytemare/crypto"

	"github.com/bytemare/owl/internal/encoding"
)

// Proof is a Schnorr non-interactive zero-knowledge proof of knowledge of a discrete logarithm.
type Proof struct {
	// Challenge is the raw digest output of the Fiat-Shamir hash, read as a big-endian integer. It is not reduced.
	Challenge []byte `json:"h"`

	// Response is v - x·h mod n.
	Response *group.Scalar `json:"r"`
}

// Serialize returns the byte encoding of the proof.
func (p *Proof) Serialize() []byte {
	return encoding.Concatenate(p.Challenge, p.Response.Encode())
}

// Copy returns a deep copy of the proof.
func (p *Proof) Copy() *Proof {
	if p == nil {
		return nil
	}

	c := &Proof{Challenge: append([]byte(nil), p.Challenge...)}
	if p.Response != nil {
		c.Response = p.Response.Copy()
	}

	return c
}

func (p *Proof) isSet() bool {
	return p != nil && len(p.Challenge) != 0 && p.Response != nil
}

func elementsSet(elements ...*group.Element) bool {
	for _, e := range elements {
		if e == nil {
			return false
		}
	}

	return true
}

func proofsSet(proofs ...*Proof) bool {
	for _, p := range proofs {
		if !p.isSet() {
			return false
		}
	}

	return true
}

func clearScalar(s **group.Scalar) {
	if *s == nil {
		return
	}

	(*s).Zero()
	*s = nil
}
