// SPDX-License-Identifier: MIT
//
// Copyright (C) 2021-2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package message

import (
	group "github.com/bytemare/crypto"

	"github.com/bytemare/owl/internal/encoding"
)

// InitialLoginRequest is the first message of the login flow, created by the client and sent to the server.
type InitialLoginRequest struct {
	X1  *group.Element `json:"X1"`
	X2  *group.Element `json:"X2"`
	PI1 *Proof         `json:"PI1"`
	PI2 *Proof         `json:"PI2"`
}

// Serialize returns the byte encoding of InitialLoginRequest.
func (m *InitialLoginRequest) Serialize() []byte {
	return encoding.Concatenate(m.X1.Encode(), m.X2.Encode(), m.PI1.Serialize(), m.PI2.Serialize())
}

// IsSet returns whether all fields of the message are set.
func (m *InitialLoginRequest) IsSet() bool {
	return m != nil && elementsSet(m.X1, m.X2) && proofsSet(m.PI1, m.PI2)
}

// InitialLoginResponse is the second message of the login flow, created by the server and sent to the client.
type InitialLoginResponse struct {
	X3     *group.Element `json:"X3"`
	X4     *group.Element `json:"X4"`
	PI3    *Proof         `json:"PI3"`
	PI4    *Proof         `json:"PI4"`
	Beta   *group.Element `json:"beta"`
	PIBeta *Proof         `json:"PIbeta"`
}

// Serialize returns the byte encoding of InitialLoginResponse.
func (m *InitialLoginResponse) Serialize() []byte {
	return encoding.Concatenate(
		m.X3.Encode(),
		m.X4.Encode(),
		m.PI3.Serialize(),
		m.PI4.Serialize(),
		m.Beta.Encode(),
		m.PIBeta.Serialize(),
	)
}

// IsSet returns whether all fields of the message are set.
func (m *InitialLoginResponse) IsSet() bool {
	return m != nil && elementsSet(m.X3, m.X4, m.Beta) && proofsSet(m.PI3, m.PI4, m.PIBeta)
}

// FinalizeLoginRequest is the third and last message of the login flow, created by the client and sent to the server.
type FinalizeLoginRequest struct {
	Alpha   *group.Element `json:"alpha"`
	PIAlpha *Proof         `json:"PIalpha"`
	R       *group.Scalar  `json:"r"`
}

// Serialize returns the byte encoding of FinalizeLoginRequest.
func (m *FinalizeLoginRequest) Serialize() []byte {
	return encoding.Concatenate(m.Alpha.Encode(), m.PIAlpha.Serialize(), m.R.Encode())
}

// IsSet returns whether all fields of the message are set.
func (m *FinalizeLoginRequest) IsSet() bool {
	return m != nil && m.Alpha != nil && m.R != nil && proofsSet(m.PIAlpha)
}
