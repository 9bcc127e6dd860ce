// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package owl

import (
	"fmt"

	group "github.com/bytemare/crypto"

	"github.com/bytemare/owl/internal"
	"github.com/bytemare/owl/internal/encoding"
	"github.com/bytemare/owl/message"
)

// Deserializer exposes the message deserialization functions.
type Deserializer struct {
	conf *internal.Configuration
}

// decoder reads consecutive fields from an encoded message, and retains the first error encountered. Once an error is
// set, subsequent reads return nil.
type decoder struct {
	conf  *internal.Configuration
	split *encoding.Splitter
	err   error
}

func (d *Deserializer) decoder(input []byte, length int) (*decoder, error) {
	if len(input) != length {
		return nil, internal.ErrInvalidEncodingLength
	}

	return &decoder{conf: d.conf, split: encoding.NewSplitter(input)}, nil
}

func (r *decoder) element(name string) *group.Element {
	if r.err != nil {
		return nil
	}

	e, err := r.conf.DecodeElement(r.split.Next(r.conf.ElementLength))
	if err != nil {
		r.err = fmt.Errorf("%s: %w", name, err)
	}

	return e
}

func (r *decoder) scalar(name string, secret bool) *group.Scalar {
	if r.err != nil {
		return nil
	}

	s, err := r.conf.DecodeScalar(r.split.Next(r.conf.ScalarLength), secret)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", name, err)
	}

	return s
}

func (r *decoder) proof(name string) *message.Proof {
	if r.err != nil {
		return nil
	}

	challenge := append([]byte(nil), r.split.Next(r.conf.Hash.Size())...)

	response := r.scalar(name, false)
	if response == nil {
		return nil
	}

	return &message.Proof{Challenge: challenge, Response: response}
}

func (d *Deserializer) proofLength() int {
	return d.conf.ProofLength()
}

// RegisterMessage takes a serialized RegisterMessage and returns a deserialized RegisterMessage structure.
func (d *Deserializer) RegisterMessage(input []byte) (*message.RegisterMessage, error) {
	r, err := d.decoder(input, 2*d.conf.ScalarLength+d.conf.ElementLength)
	if err != nil {
		return nil, ErrRegisterMessage.Join(err)
	}

	m := &message.RegisterMessage{
		Secret:   r.scalar("t", true),
		Pi:       r.scalar("pi", true),
		Verifier: r.element("T"),
	}

	if r.err != nil {
		return nil, ErrRegisterMessage.Join(r.err)
	}

	return m, nil
}

// CredentialRecord takes a serialized CredentialRecord and returns a deserialized CredentialRecord structure.
func (d *Deserializer) CredentialRecord(input []byte) (*message.CredentialRecord, error) {
	r, err := d.decoder(input, 2*d.conf.ElementLength+d.proofLength()+d.conf.ScalarLength)
	if err != nil {
		return nil, ErrCredentialRecord.Join(err)
	}

	m := &message.CredentialRecord{
		X3:       r.element("X3"),
		PI3:      r.proof("PI3"),
		Pi:       r.scalar("pi", true),
		Verifier: r.element("T"),
	}

	if r.err != nil {
		return nil, ErrCredentialRecord.Join(r.err)
	}

	return m, nil
}

// InitialLoginRequest takes a serialized InitialLoginRequest and returns a deserialized InitialLoginRequest structure.
func (d *Deserializer) InitialLoginRequest(input []byte) (*message.InitialLoginRequest, error) {
	r, err := d.decoder(input, 2*d.conf.ElementLength+2*d.proofLength())
	if err != nil {
		return nil, ErrInitialLoginRequest.Join(err)
	}

	m := &message.InitialLoginRequest{
		X1:  r.element("X1"),
		X2:  r.element("X2"),
		PI1: r.proof("PI1"),
		PI2: r.proof("PI2"),
	}

	if r.err != nil {
		return nil, ErrInitialLoginRequest.Join(r.err)
	}

	return m, nil
}

// InitialLoginResponse takes a serialized InitialLoginResponse and returns a deserialized InitialLoginResponse
// structure.
func (d *Deserializer) InitialLoginResponse(input []byte) (*message.InitialLoginResponse, error) {
	r, err := d.decoder(input, 3*d.conf.ElementLength+3*d.proofLength())
	if err != nil {
		return nil, ErrInitialLoginResponse.Join(err)
	}

	m := &message.InitialLoginResponse{
		X3:     r.element("X3"),
		X4:     r.element("X4"),
		PI3:    r.proof("PI3"),
		PI4:    r.proof("PI4"),
		Beta:   r.element("beta"),
		PIBeta: r.proof("PIbeta"),
	}

	if r.err != nil {
		return nil, ErrInitialLoginResponse.Join(r.err)
	}

	return m, nil
}

// FinalizeLoginRequest takes a serialized FinalizeLoginRequest and returns a deserialized FinalizeLoginRequest
// structure.
func (d *Deserializer) FinalizeLoginRequest(input []byte) (*message.FinalizeLoginRequest, error) {
	r, err := d.decoder(input, d.conf.ElementLength+d.proofLength()+d.conf.ScalarLength)
	if err != nil {
		return nil, ErrFinalizeLoginRequest.Join(err)
	}

	m := &message.FinalizeLoginRequest{
		Alpha:   r.element("alpha"),
		PIAlpha: r.proof("PIalpha"),
		R:       r.scalar("r", false),
	}

	if r.err != nil {
		return nil, ErrFinalizeLoginRequest.Join(r.err)
	}

	return m, nil
}

// ServerCarryState takes a serialized ServerCarryState and returns a deserialized ServerCarryState structure.
func (d *Deserializer) ServerCarryState(input []byte) (*message.ServerCarryState, error) {
	r, err := d.decoder(input, 6*d.conf.ElementLength+2*d.conf.ScalarLength+5*d.proofLength())
	if err != nil {
		return nil, ErrCarryState.Join(err)
	}

	s := &message.ServerCarryState{
		Verifier: r.element("T"),
		Pi:       r.scalar("pi", true),
		SecretX4: r.scalar("x4", true),
		X1:       r.element("X1"),
		X2:       r.element("X2"),
		X3:       r.element("X3"),
		X4:       r.element("X4"),
		Beta:     r.element("beta"),
		PI1:      r.proof("PI1"),
		PI2:      r.proof("PI2"),
		PI3:      r.proof("PI3"),
		PI4:      r.proof("PI4"),
		PIBeta:   r.proof("PIbeta"),
	}

	if r.err != nil {
		return nil, ErrCarryState.Join(r.err)
	}

	return s, nil
}
