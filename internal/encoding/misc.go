// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package encoding

// Concatenate takes the variadic array of input and returns a concatenation of it.
func Concatenate(input ...[]byte) []byte {
	length := 0
	for _, b := range input {
		length += len(b)
	}

	buf := make([]byte, 0, length)

	for _, in := range input {
		buf = append(buf, in...)
	}

	return buf
}

// Splitter walks through a byte slice, handing out consecutive sub-slices of requested sizes.
type Splitter struct {
	data   []byte
	offset int
}

// NewSplitter returns a Splitter over data.
func NewSplitter(data []byte) *Splitter {
	return &Splitter{data: data}
}

// Next returns the next length bytes. The caller must have checked the total length beforehand.
func (s *Splitter) Next(length int) []byte {
	b := s.data[s.offset : s.offset+length]
	s.offset += length

	return b
}

// Remaining returns the number of bytes not yet handed out.
func (s *Splitter) Remaining() int {
	return len(s.data) - s.offset
}
