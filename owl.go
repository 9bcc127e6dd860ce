// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package owl

import (
	"crypto"
	"fmt"
	"io"

	group "github.com/bytemare/crypto"
	"github.com/bytemare/ksf"

	"github.com/bytemare/owl/internal"
	"github.com/bytemare/owl/internal/encoding"
	internalKSF "github.com/bytemare/owl/internal/ksf"
)

// Group identifies the prime-order group the protocol runs in.
type Group byte

const (
	// Ristretto255Sha512 identifies the Ristretto255 group.
	Ristretto255Sha512 = Group(group.Ristretto255Sha512)

	// P256Sha256 identifies the NIST P-256 group.
	P256Sha256 = Group(group.P256Sha256)

	// P384Sha384 identifies the NIST P-384 group.
	P384Sha384 = Group(group.P384Sha384)

	// P521Sha512 identifies the NIST P-521 group.
	P521Sha512 = Group(group.P521Sha512)

	// Edwards25519Sha512 identifies the prime-order subgroup of Edwards25519.
	Edwards25519Sha512 = Group(group.Edwards25519Sha512)

	// Secp256k1 identifies the SECG secp256k1 group.
	Secp256k1 = Group(group.Secp256k1)
)

// Available returns whether the Group is supported.
func (g Group) Available() bool {
	_, ok := encoding.ScalarLength[group.Group(g)]
	return ok && group.Group(g).Available()
}

// Group returns the underlying group implementation.
func (g Group) Group() group.Group {
	return group.Group(g)
}

// String returns the name of the group.
func (g Group) String() string {
	switch g {
	case Ristretto255Sha512:
		return "Ristretto255"
	case P256Sha256:
		return "P-256"
	case P384Sha384:
		return "P-384"
	case P521Sha512:
		return "P-521"
	case Edwards25519Sha512:
		return "Edwards25519"
	case Secp256k1:
		return "secp256k1"
	default:
		return fmt.Sprintf("Group(%d)", byte(g))
	}
}

const confLength = 3

// Configuration represents the Owl configuration. Both parties must use the same configuration.
type Configuration struct {
	// Group identifies the group the protocol runs in.
	Group Group `json:"group"`

	// Hash identifies the digest used for proofs, credential hashes, the transcript and the shared key.
	Hash crypto.Hash `json:"hash"`

	// KSF identifies the key stretching function applied to the password before credential hashing.
	// The zero value disables stretching.
	KSF ksf.Identifier `json:"ksf"`
}

// DefaultConfiguration returns a default configuration with strong parameters.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Group: P256Sha256,
		Hash:  crypto.SHA256,
		KSF:   0,
	}
}

func (c *Configuration) verify() error {
	if !c.Group.Available() {
		return ErrConfiguration.Join(internal.ErrInvalidGroup)
	}

	if !internal.IsHashFunctionValid(c.Hash) {
		return ErrConfiguration.Join(internal.ErrInvalidHash)
	}

	if c.KSF != 0 && !c.KSF.Available() {
		return ErrConfiguration.Join(internal.ErrInvalidKSF)
	}

	return nil
}

func (c *Configuration) toInternal() (*internal.Configuration, error) {
	if c == nil {
		c = DefaultConfiguration()
	}

	if err := c.verify(); err != nil {
		return nil, err
	}

	return internal.NewConfiguration(
		c.Group.Group(),
		internal.NewHash(c.Hash),
		internal.NewKDF(c.Hash),
		internalKSF.NewKSF(c.KSF),
	), nil
}

// Client returns a newly instantiated Client from the Configuration.
func (c *Configuration) Client(serverIdentity []byte, options ...*Options) (*Client, error) {
	return NewClient(c, serverIdentity, options...)
}

// Server returns a newly instantiated Server from the Configuration.
func (c *Configuration) Server(serverIdentity []byte, options ...*Options) (*Server, error) {
	return NewServer(c, serverIdentity, options...)
}

// Deserializer returns a pointer to a Deserializer structure allowing deserialization of messages in the given
// configuration.
func (c *Configuration) Deserializer() (*Deserializer, error) {
	conf, err := c.toInternal()
	if err != nil {
		return nil, err
	}

	return &Deserializer{conf: conf}, nil
}

// DeriveKey expands the shared key of a successful login into length bytes of key material bound to info, so that
// applications can draw independent keys from a single login.
func (c *Configuration) DeriveKey(sharedKey, info []byte, length int) ([]byte, error) {
	conf, err := c.toInternal()
	if err != nil {
		return nil, err
	}

	if len(sharedKey) != conf.Hash.Size() {
		return nil, ErrConfiguration.Join(internal.ErrInvalidEncodingLength)
	}

	return conf.KDF.Expand(sharedKey, info, length), nil
}

// Serialize returns the byte encoding of the Configuration structure.
func (c *Configuration) Serialize() []byte {
	return []byte{
		byte(c.Group),
		byte(c.Hash),
		byte(c.KSF),
	}
}

// String returns a human-readable representation of the configuration.
func (c *Configuration) String() string {
	return fmt.Sprintf("%s-%s-KSF(%d)", c.Group, c.Hash, c.KSF)
}

// DeserializeConfiguration decodes the input and returns a Configuration structure.
func DeserializeConfiguration(encoded []byte) (*Configuration, error) {
	if len(encoded) != confLength {
		return nil, ErrConfiguration.Join(internal.ErrConfigurationInvalidLength)
	}

	c := &Configuration{
		Group: Group(encoded[0]),
		Hash:  crypto.Hash(encoded[1]),
		KSF:   ksf.Identifier(encoded[2]),
	}

	if err := c.verify(); err != nil {
		return nil, err
	}

	return c, nil
}

// Options holds optional collaborators for a Client or a Server.
type Options struct {
	// Random is the source of randomness for ephemeral scalars. It must be cryptographically secure and safe for
	// concurrent use if shared. Defaults to crypto/rand.Reader. A read error is unrecoverable: the Client or Server
	// method drawing the randomness panics, as it would with a failing crypto/rand.
	Random io.Reader
}

func setup(c *Configuration, serverIdentity []byte, options []*Options) (*internal.Configuration, error) {
	conf, err := c.toInternal()
	if err != nil {
		return nil, err
	}

	if len(serverIdentity) == 0 {
		return nil, ErrConfiguration.Join(internal.ErrEmptyServerIdentity)
	}

	if len(options) != 0 && options[0] != nil {
		conf = conf.WithRandom(options[0].Random)
	}

	return conf, nil
}
