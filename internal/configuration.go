// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package internal provides structures and functions to operate Owl that are not part of the public API.
package internal

import (
	cryptorand "crypto/rand"
	"io"
	"math/big"

	group "github.com/bytemare/crypto"

	"github.com/bytemare/owl/internal/encoding"
	"github.com/bytemare/owl/internal/ksf"
)

// Configuration is the internal representation of the instance runtime parameters.
type Configuration struct {
	Group         group.Group
	Hash          *Hash
	KDF           *KDF
	KSF           *ksf.KSF
	Order         *big.Int
	Random        io.Reader
	ScalarLength  int
	ElementLength int
}

// NewConfiguration returns the internal configuration for the given suite. It does not validate the identifiers, which
// is up to the caller.
func NewConfiguration(g group.Group, h *Hash, kdf *KDF, k *ksf.KSF) *Configuration {
	return &Configuration{
		Group:         g,
		Hash:          h,
		KDF:           kdf,
		KSF:           k,
		Order:         GroupOrder(g),
		Random:        cryptorand.Reader,
		ScalarLength:  encoding.ScalarLength[g],
		ElementLength: encoding.PointLength[g],
	}
}

// WithRandom returns a shallow copy of the configuration drawing randomness from r. A nil r keeps the current source.
func (c *Configuration) WithRandom(r io.Reader) *Configuration {
	if r == nil {
		return c
	}

	conf := *c
	conf.Random = r

	return &conf
}

// ProofLength returns the byte length of an encoded proof.
func (c *Configuration) ProofLength() int {
	return c.Hash.Size() + c.ScalarLength
}

// Generator returns a fresh copy of the group's base point.
func (c *Configuration) Generator() *group.Element {
	return c.Group.Base()
}
