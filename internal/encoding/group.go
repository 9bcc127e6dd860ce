// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package encoding

import (
	group "github.com/bytemare/crypto"
)

const (
	ristrettoPointLength  = 32
	ristrettoScalarLength = 32
	p256PointLength       = 33
	p256ScalarLength      = 32
	p384PointLength       = 49
	p384ScalarLength      = 48
	p521PointLength       = 67
	p521ScalarLength      = 66
	edwardsPointLength    = 32
	edwardsScalarLength   = 32
	k256PointLength       = 33
	k256ScalarLength      = 32
)

// ScalarLength indexes the length of scalars.
var ScalarLength = map[group.Group]int{
	group.Ristretto255Sha512: ristrettoScalarLength,
	group.P256Sha256:         p256ScalarLength,
	group.P384Sha384:         p384ScalarLength,
	group.P521Sha512:         p521ScalarLength,
	group.Edwards25519Sha512: edwardsScalarLength,
	group.Secp256k1:          k256ScalarLength,
}

// PointLength indexes the length of elements.
var PointLength = map[group.Group]int{
	group.Ristretto255Sha512: ristrettoPointLength,
	group.P256Sha256:         p256PointLength,
	group.P384Sha384:         p384PointLength,
	group.P521Sha512:         p521PointLength,
	group.Edwards25519Sha512: edwardsPointLength,
	group.Secp256k1:          k256PointLength,
}

// LittleEndianScalars lists the groups whose canonical scalar encoding is little-endian.
var LittleEndianScalars = map[group.Group]bool{
	group.Ristretto255Sha512: true,
	group.Edwards25519Sha512: true,
}
