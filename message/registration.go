// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package message

import (
	group "github.com/bytemare/crypto"

	"github.com/bytemare/owl/internal/encoding"
)

// RegisterMessage is the registration payload, created by the client and sent once to the server.
type RegisterMessage struct {
	// Secret is t = H(identity || password) mod n.
	Secret *group.Scalar `json:"t"`

	// Pi is pi = H(t) mod n.
	Pi *group.Scalar `json:"pi"`

	// Verifier is T = G·t.
	Verifier *group.Element `json:"T"`
}

// Serialize returns the byte encoding of RegisterMessage.
func (r *RegisterMessage) Serialize() []byte {
	return encoding.Concatenate(r.Secret.Encode(), r.Pi.Encode(), r.Verifier.Encode())
}

// IsSet returns whether all fields of the message are set.
func (r *RegisterMessage) IsSet() bool {
	return r != nil && r.Secret != nil && r.Pi != nil && r.Verifier != nil
}

// CredentialRecord is the server's durable per-identity record, to be persisted by the application and keyed by the
// client identity.
type CredentialRecord struct {
	X3       *group.Element `json:"X3"`
	PI3      *Proof         `json:"PI3"`
	Pi       *group.Scalar  `json:"pi"`
	Verifier *group.Element `json:"T"`
}

// Serialize returns the byte encoding of CredentialRecord.
func (r *CredentialRecord) Serialize() []byte {
	return encoding.Concatenate(r.X3.Encode(), r.PI3.Serialize(), r.Pi.Encode(), r.Verifier.Encode())
}

// IsSet returns whether all fields of the record are set.
func (r *CredentialRecord) IsSet() bool {
	return r != nil && r.Pi != nil && elementsSet(r.X3, r.Verifier) && proofsSet(r.PI3)
}
