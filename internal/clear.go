// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import group "github.com/bytemare/crypto"

// ClearScalar attempts to zero out the scalar and sets the reference to nil.
func ClearScalar(s **group.Scalar) {
	if *s == nil {
		return
	}

	(*s).Zero()
	*s = nil
}

// ClearSlice attempts to zero out the slice and sets it to nil.
func ClearSlice(b *[]byte) {
	clear(*b)
	*b = nil
}
