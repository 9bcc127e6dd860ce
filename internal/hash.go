// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	"crypto"

	"github.com/bytemare/hash"
)

// IsHashFunctionValid returns whether the hash function identified by id can be used.
func IsHashFunctionValid(id crypto.Hash) bool {
	switch id {
	case crypto.SHA256, crypto.SHA384, crypto.SHA512, crypto.SHA3_256, crypto.SHA3_384, crypto.SHA3_512:
		return id.Available()
	default:
		return false
	}
}

// NewHash returns a newly instantiated Hash.
func NewHash(id crypto.Hash) *Hash {
	return &Hash{id: hash.FromCrypto(id)}
}

// Hash wraps a hash function identifier. Every call to Hash runs on a fresh hashing state, so a single Hash can be
// shared by concurrent sessions.
type Hash struct {
	id hash.Hash
}

// Size returns the output size of the hashing function.
func (h *Hash) Size() int {
	return h.id.GetHashFunction().Size()
}

// Hash returns the digest over the concatenation of the input.
func (h *Hash) Hash(input ...[]byte) []byte {
	f := h.id.GetHashFunction()
	for _, in := range input {
		_, _ = f.Write(in)
	}

	return f.Sum(nil)
}

// NewKDF returns a newly instantiated KDF.
func NewKDF(id crypto.Hash) *KDF {
	return &KDF{id: hash.FromCrypto(id)}
}

// KDF wraps a hash function and exposes KDF methods.
type KDF struct {
	id hash.Hash
}

// Expand exposes an Expand only KDF method.
func (k *KDF) Expand(key, info []byte, length int) []byte {
	return k.id.GetHashFunction().HKDFExpand(key, info, length)
}
