// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package encoding provides encoding utilities.
package encoding

import (
	"encoding/binary"
	"errors"
	"math"
)

// vectorHeader is the size of the big-endian length prefix of a vector.
const vectorHeader = 2

var (
	// ErrVectorLength happens when a vector does not fit a two-byte length prefix.
	ErrVectorLength = errors.New("vector is too long")

	errHeaderLength = errors.New("insufficient header length for decoding")
	errTotalLength  = errors.New("insufficient total length for decoding")
)

// EncodeVector returns the input prefixed with the two-byte big-endian encoding of its length.
func EncodeVector(in []byte) []byte {
	if len(in) > math.MaxUint16 {
		panic(ErrVectorLength)
	}

	out := make([]byte, 0, vectorHeader+len(in))
	out = binary.BigEndian.AppendUint16(out, uint16(len(in)))

	return append(out, in...)
}

// DecodeVector returns the byte-slice of length indexed in the first two bytes, and the total amount of bytes read.
func DecodeVector(in []byte) ([]byte, int, error) {
	if len(in) < vectorHeader {
		return nil, 0, errHeaderLength
	}

	total := vectorHeader + int(binary.BigEndian.Uint16(in))
	if len(in) < total {
		return nil, 0, errTotalLength
	}

	return in[vectorHeader:total], total, nil
}
