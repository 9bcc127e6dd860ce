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
)

// CredentialHashes holds the password-derived secrets of a user.
type CredentialHashes struct {
	// T is the long-term secret t = H(identity || password) mod n.
	T *group.Scalar

	// Pi is the verifier exponent pi = H(H(identity || password)) mod n.
	Pi *group.Scalar
}

// Flush does a best-effort attempt to clear the hashes from memory.
func (h *CredentialHashes) Flush() {
	ClearScalar(&h.T)
	ClearScalar(&h.Pi)
}

// DeriveCredentialHashes derives t and pi from the user's identity and password. The password goes through the
// configured key stretching function first, which is the identity by default.
func (c *Configuration) DeriveCredentialHashes(identity, password []byte) *CredentialHashes {
	stretched := c.KSF.Stretch(identity, password, c.Hash.Size())
	digest := c.Hash.Hash(identity, stretched)

	return &CredentialHashes{
		T:  c.ScalarFromDigest(digest),
		Pi: c.ScalarFromDigest(c.Hash.Hash(digest)),
	}
}

// Verifier returns T = G·t, the value registered with the server against which the client's final response r is
// checked: G·r + T·h = G·(x1 - t·h) + G·t·h = X1.
func (c *Configuration) Verifier(t *group.Scalar) *group.Element {
	return c.Generator().Multiply(t)
}
