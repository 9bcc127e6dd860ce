// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package message

import (
	group "github.com/bytemare/crypto"

	"github.com/bytemare/owl/internal/encoding"
)

// ServerCarryState holds the server's intermediate values of one login attempt, produced by the initial login and
// consumed by the login finalization. It contains the secret x4: the application must store it out of reach of the
// client, keyed by identity and session, and delete it after finalization whatever the outcome.
type ServerCarryState struct {
	Verifier *group.Element `json:"T"`
	Pi       *group.Scalar  `json:"pi"`
	SecretX4 *group.Scalar  `json:"x4"`
	X1       *group.Element `json:"X1"`
	X2       *group.Element `json:"X2"`
	X3       *group.Element `json:"X3"`
	X4       *group.Element `json:"X4"`
	Beta     *group.Element `json:"beta"`
	PI1      *Proof         `json:"PI1"`
	PI2      *Proof         `json:"PI2"`
	PI3      *Proof         `json:"PI3"`
	PI4      *Proof         `json:"PI4"`
	PIBeta   *Proof         `json:"PIbeta"`
}

// Serialize returns the byte encoding of ServerCarryState.
func (s *ServerCarryState) Serialize() []byte {
	return encoding.Concatenate(
		s.Verifier.Encode(),
		s.Pi.Encode(),
		s.SecretX4.Encode(),
		s.X1.Encode(),
		s.X2.Encode(),
		s.X3.Encode(),
		s.X4.Encode(),
		s.Beta.Encode(),
		s.PI1.Serialize(),
		s.PI2.Serialize(),
		s.PI3.Serialize(),
		s.PI4.Serialize(),
		s.PIBeta.Serialize(),
	)
}

// IsSet returns whether all fields of the state are set. A flushed state is not set.
func (s *ServerCarryState) IsSet() bool {
	return s != nil && s.Pi != nil && s.SecretX4 != nil &&
		elementsSet(s.Verifier, s.X1, s.X2, s.X3, s.X4, s.Beta) &&
		proofsSet(s.PI1, s.PI2, s.PI3, s.PI4, s.PIBeta)
}

// Flush does a best-effort attempt to clear the secret values from memory, rendering the state unusable.
func (s *ServerCarryState) Flush() {
	if s == nil {
		return
	}

	clearScalar(&s.SecretX4)
	clearScalar(&s.Pi)
}
