// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package ksf provides the optional Key Stretching Function applied to passwords before credential hashing.
package ksf

import (
	"github.com/bytemare/ksf"
)

// KSF wraps a key stretching function and exposes its functions.
type KSF struct {
	ksfInterface
}

// NewKSF returns a newly instantiated KSF. The zero identifier yields the identity function.
func NewKSF(id ksf.Identifier) *KSF {
	if id == 0 {
		return &KSF{&IdentityKSF{}}
	}

	return &KSF{id.Get()}
}

// Stretch hardens the password, salted with the user identity so that equal passwords of different users diverge.
// The identity KSF returns the password untouched.
func (k *KSF) Stretch(identity, password []byte, length int) []byte {
	return k.Harden(password, identity, length)
}

type ksfInterface interface {
	// Harden uses default parameters for the key derivation function over the input password and salt.
	Harden(password, salt []byte, length int) []byte

	// Parameterize replaces the functions parameters with the new ones.
	// Must match the amount of parameters for the KSF.
	Parameterize(parameters ...int)
}

// IdentityKSF represents a KSF with no operations.
type IdentityKSF struct{}

// Harden returns the password as is.
func (i IdentityKSF) Harden(password, _ []byte, _ int) []byte {
	return password
}

// Parameterize applies KSF parameters if defined.
func (i IdentityKSF) Parameterize(_ ...int) {
	// no-op
}
