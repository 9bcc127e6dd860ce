// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	"fmt"
	"io"
	"math/big"
	"slices"

	group "github.com/bytemare/crypto"

	"github.com/bytemare/owl/internal/encoding"
)

// randomPadding is the number of extra random bytes drawn before reduction, bounding the bias to 2^-128.
const randomPadding = 16

var (
	one = big.NewInt(1)

	orders = map[group.Group]string{
		group.Ristretto255Sha512: "1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed",
		group.P256Sha256:         "ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551",
		group.P384Sha384:         "ffffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf581a0db248b0a77aecec196accc52973",
		group.P521Sha512:         "1fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffa51868783bf2f966b7fcc0148f709a5d03bb5c9b8899c47aebb6fb71e91386409",
		group.Edwards25519Sha512: "1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed",
		group.Secp256k1:          "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
	}
)

// GroupOrder returns the prime order n of the group, or nil if the group is not supported.
func GroupOrder(g group.Group) *big.Int {
	h, ok := orders[g]
	if !ok {
		return nil
	}

	n, _ := new(big.Int).SetString(h, 16)

	return n
}

// ScalarFromInt reduces i modulo the group order and returns it as a scalar.
func (c *Configuration) ScalarFromInt(i *big.Int) *group.Scalar {
	r := new(big.Int).Mod(i, c.Order)
	enc := r.FillBytes(make([]byte, c.ScalarLength))

	if encoding.LittleEndianScalars[c.Group] {
		slices.Reverse(enc)
	}

	s := c.Group.NewScalar()
	if err := s.Decode(enc); err != nil {
		// A reduced integer always has a canonical encoding.
		panic(fmt.Errorf("unexpected error in decoding reduced scalar: %w", err))
	}

	return s
}

// ScalarFromDigest interprets digest as a big-endian non-negative integer and reduces it modulo the group order.
func (c *Configuration) ScalarFromDigest(digest []byte) *group.Scalar {
	return c.ScalarFromInt(new(big.Int).SetBytes(digest))
}

// RandomScalar returns a scalar uniformly distributed in [1, n-1], drawn from the configured random source.
func (c *Configuration) RandomScalar() *group.Scalar {
	buf := make([]byte, c.ScalarLength+randomPadding)
	if _, err := io.ReadFull(c.Random, buf); err != nil {
		panic(fmt.Errorf("unexpected error in generating random bytes : %w", err))
	}

	v := new(big.Int).SetBytes(buf)
	nMinusOne := new(big.Int).Sub(c.Order, one)
	v.Mod(v, nMinusOne).Add(v, one)

	return c.ScalarFromInt(v)
}

// DecodeScalar decodes a canonical scalar encoding. If secret is set, the zero scalar is rejected.
func (c *Configuration) DecodeScalar(input []byte, secret bool) (*group.Scalar, error) {
	if len(input) != c.ScalarLength {
		return nil, ErrInvalidEncodingLength
	}

	s := c.Group.NewScalar()
	if err := s.Decode(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScalar, err)
	}

	if secret && s.IsZero() {
		return nil, ErrZeroScalar
	}

	return s, nil
}

// DecodeElement decodes a group element and rejects the identity.
func (c *Configuration) DecodeElement(input []byte) (*group.Element, error) {
	if len(input) != c.ElementLength {
		return nil, ErrInvalidEncodingLength
	}

	e := c.Group.NewElement()
	if err := e.Decode(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidElement, err)
	}

	if e.IsIdentity() {
		return nil, ErrIdentityElement
	}

	return e, nil
}
