// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	"bytes"
	"crypto"
	"crypto/elliptic"
	"errors"
	"math/big"
	"testing"

	group "github.com/bytemare/crypto"
	bksf "github.com/bytemare/ksf"

	"github.com/bytemare/owl/internal/ksf"
	"github.com/bytemare/owl/message"
)

var testGroups = []struct {
	name string
	id   group.Group
}{
	{"Ristretto255", group.Ristretto255Sha512},
	{"P256", group.P256Sha256},
	{"P384", group.P384Sha384},
	{"P521", group.P521Sha512},
	{"Edwards25519", group.Edwards25519Sha512},
	{"Secp256k1", group.Secp256k1},
}

func testConfiguration(g group.Group, h crypto.Hash) *Configuration {
	return NewConfiguration(g, NewHash(h), NewKDF(h), ksf.NewKSF(0))
}

func testAllGroups(t *testing.T, f func(*testing.T, *Configuration)) {
	for _, g := range testGroups {
		t.Run(g.name, func(t *testing.T) {
			f(t, testConfiguration(g.id, crypto.SHA512))
		})
	}
}

func equalElements(a, b *group.Element) bool {
	return bytes.Equal(a.Encode(), b.Encode())
}

func equalScalars(a, b *group.Scalar) bool {
	return bytes.Equal(a.Encode(), b.Encode())
}

type constantReader byte

func (c constantReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(c)
	}

	return len(p), nil
}

func TestGroupOrder(t *testing.T) {
	ed25519Order, _ := new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
	secp256k1Order, _ := new(big.Int).SetString(
		"115792089237316195423570985008687907852837564279074904382605163141518161494337", 10)

	for g, expected := range map[group.Group]*big.Int{
		group.Ristretto255Sha512: ed25519Order,
		group.Edwards25519Sha512: ed25519Order,
		group.P256Sha256:         elliptic.P256().Params().N,
		group.P384Sha384:         elliptic.P384().Params().N,
		group.P521Sha512:         elliptic.P521().Params().N,
		group.Secp256k1:          secp256k1Order,
	} {
		if GroupOrder(g).Cmp(expected) != 0 {
			t.Errorf("wrong order for %v", g)
		}
	}

	if GroupOrder(group.Group(0)) != nil {
		t.Fatal("expected no order for an unsupported group")
	}
}

func TestScalarFromInt(t *testing.T) {
	testAllGroups(t, func(t *testing.T, c *Configuration) {
		if !equalElements(c.Generator().Multiply(c.ScalarFromInt(big.NewInt(1))), c.Generator()) {
			t.Fatal("expected G·1 = G")
		}

		two := c.Generator().Add(c.Generator())
		if !equalElements(c.Generator().Multiply(c.ScalarFromInt(big.NewInt(2))), two) {
			t.Fatal("expected G·2 = G + G")
		}

		if !c.ScalarFromInt(c.Order).IsZero() {
			t.Fatal("expected n mod n = 0")
		}

		// n-1 + 1 = 0
		minusOne := c.ScalarFromInt(new(big.Int).Sub(c.Order, big.NewInt(1)))
		if !minusOne.Add(c.ScalarFromInt(big.NewInt(1))).IsZero() {
			t.Fatal("expected (n-1) + 1 = 0")
		}

		// n+5 reduces to 5
		digest := new(big.Int).Add(c.Order, big.NewInt(5)).Bytes()
		if !equalScalars(c.ScalarFromDigest(digest), c.ScalarFromInt(big.NewInt(5))) {
			t.Fatal("expected the digest to be reduced modulo the order")
		}
	})
}

func TestRandomScalar(t *testing.T) {
	testAllGroups(t, func(t *testing.T, c *Configuration) {
		// All zero randomness maps to 1, the lower bound.
		s := c.WithRandom(constantReader(0)).RandomScalar()
		if !equalElements(c.Generator().Multiply(s), c.Generator()) {
			t.Fatal("expected the zero input to map to 1")
		}

		// The upper end of the input range must not map to zero.
		if c.WithRandom(constantReader(0xff)).RandomScalar().IsZero() {
			t.Fatal("unexpected zero scalar")
		}

		seen := make(map[string]bool)

		for range 32 {
			s = c.RandomScalar()
			if s.IsZero() {
				t.Fatal("unexpected zero scalar")
			}

			if seen[string(s.Encode())] {
				t.Fatal("random scalar repeated")
			}

			seen[string(s.Encode())] = true
		}
	})
}

func TestRandomScalarReaderFailure(t *testing.T) {
	c := testConfiguration(group.P256Sha256, crypto.SHA256).WithRandom(bytes.NewReader([]byte{1, 2, 3}))

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on a short random source")
		}
	}()

	c.RandomScalar()
}

func TestWithRandomNil(t *testing.T) {
	c := testConfiguration(group.P256Sha256, crypto.SHA256)
	if c.WithRandom(nil) != c {
		t.Fatal("expected a nil reader to keep the configuration")
	}

	if c.WithRandom(constantReader(1)) == c {
		t.Fatal("expected a copy of the configuration")
	}
}

func TestDecodeScalar(t *testing.T) {
	testAllGroups(t, func(t *testing.T, c *Configuration) {
		s := c.RandomScalar()

		decoded, err := c.DecodeScalar(s.Encode(), true)
		if err != nil {
			t.Fatal(err)
		}

		if !equalScalars(decoded, s) {
			t.Fatal("scalar does not survive encoding")
		}

		if _, err = c.DecodeScalar(s.Encode()[1:], false); !errors.Is(err, ErrInvalidEncodingLength) {
			t.Fatalf("expected %q, got %v", ErrInvalidEncodingLength, err)
		}

		zero := c.Group.NewScalar().Encode()
		if _, err = c.DecodeScalar(zero, true); err == nil {
			t.Fatal("expected a zero secret scalar to be rejected")
		}
	})
}

func TestDecodeElement(t *testing.T) {
	testAllGroups(t, func(t *testing.T, c *Configuration) {
		e := c.Generator().Multiply(c.RandomScalar())

		decoded, err := c.DecodeElement(e.Encode())
		if err != nil {
			t.Fatal(err)
		}

		if !equalElements(decoded, e) {
			t.Fatal("element does not survive encoding")
		}

		if _, err = c.DecodeElement(e.Encode()[1:]); !errors.Is(err, ErrInvalidEncodingLength) {
			t.Fatalf("expected %q, got %v", ErrInvalidEncodingLength, err)
		}

		if identity := c.Group.NewElement().Encode(); len(identity) == c.ElementLength {
			if _, err = c.DecodeElement(identity); err == nil {
				t.Fatal("expected the identity element to be rejected")
			}
		}
	})
}

func TestProofCompleteness(t *testing.T) {
	testAllGroups(t, func(t *testing.T, c *Configuration) {
		id := []byte("prover")
		x := c.RandomScalar()
		public := c.Generator().Multiply(x)

		proof := c.CreateProof(x, public, c.Generator(), id)
		if !c.VerifyProof(proof, public, c.Generator(), id) {
			t.Fatal("valid proof rejected")
		}

		if len(proof.Challenge) != c.Hash.Size() {
			t.Fatalf("expected an unreduced challenge of %d bytes, got %d", c.Hash.Size(), len(proof.Challenge))
		}

		// Proofs over another generator.
		generator := c.Generator().Multiply(c.RandomScalar())
		public = generator.Copy().Multiply(x)

		proof = c.CreateProof(x, public, generator, id)
		if !c.VerifyProof(proof, public, generator, id) {
			t.Fatal("valid proof over a custom generator rejected")
		}

		if c.VerifyProof(proof, public, c.Generator(), id) {
			t.Fatal("proof accepted under another generator")
		}
	})
}

func TestProofSoundness(t *testing.T) {
	testAllGroups(t, func(t *testing.T, c *Configuration) {
		id := []byte("prover")
		x := c.RandomScalar()
		public := c.Generator().Multiply(x)
		proof := c.CreateProof(x, public, c.Generator(), id)

		if c.VerifyProof(proof, public, c.Generator(), []byte("another prover")) {
			t.Fatal("proof accepted for another identity")
		}

		if c.VerifyProof(proof, c.Generator().Multiply(c.RandomScalar()), c.Generator(), id) {
			t.Fatal("proof accepted for another public value")
		}

		// A proof made with the wrong secret.
		wrong := c.CreateProof(c.RandomScalar(), public, c.Generator(), id)
		if c.VerifyProof(wrong, public, c.Generator(), id) {
			t.Fatal("proof with a wrong secret accepted")
		}

		// The identity element is never accepted as public value, even with a consistent proof.
		zero := c.Group.NewScalar()
		identity := c.Group.NewElement()

		if c.VerifyProof(c.CreateProof(zero, identity, c.Generator(), id), identity, c.Generator(), id) {
			t.Fatal("proof for the identity element accepted")
		}

		if c.VerifyProof(nil, public, c.Generator(), id) {
			t.Fatal("nil proof accepted")
		}

		truncated := *proof
		truncated.Challenge = proof.Challenge[1:]

		if c.VerifyProof(&truncated, public, c.Generator(), id) {
			t.Fatal("truncated challenge accepted")
		}

		tampered := *proof
		tampered.Response = proof.Response.Copy().Add(c.ScalarFromInt(big.NewInt(1)))

		if c.VerifyProof(&tampered, public, c.Generator(), id) {
			t.Fatal("tampered response accepted")
		}
	})
}

func TestCredentialHashes(t *testing.T) {
	testAllGroups(t, func(t *testing.T, c *Configuration) {
		h1 := c.DeriveCredentialHashes([]byte("username"), []byte("password"))
		h2 := c.DeriveCredentialHashes([]byte("username"), []byte("password"))
		h3 := c.DeriveCredentialHashes([]byte("username"), []byte("incorrect"))

		if !equalScalars(h1.T, h2.T) || !equalScalars(h1.Pi, h2.Pi) {
			t.Fatal("credential hashes are not deterministic")
		}

		if equalScalars(h1.T, h3.T) || equalScalars(h1.Pi, h3.Pi) {
			t.Fatal("different passwords yield the same credential hashes")
		}

		if equalScalars(h1.T, h1.Pi) {
			t.Fatal("t and pi must differ")
		}

		digest := c.Hash.Hash([]byte("username"), []byte("password"))
		if !equalScalars(h1.T, c.ScalarFromDigest(digest)) {
			t.Fatal("unexpected t")
		}

		if !equalScalars(h1.Pi, c.ScalarFromDigest(c.Hash.Hash(digest))) {
			t.Fatal("unexpected pi")
		}

		if !equalElements(c.Verifier(h1.T), c.Generator().Multiply(h1.T)) {
			t.Fatal("unexpected verifier")
		}

		h1.Flush()

		if h1.T != nil || h1.Pi != nil {
			t.Fatal("expected flushed credential hashes")
		}
	})
}

func TestCredentialHashesStretched(t *testing.T) {
	plain := testConfiguration(group.P256Sha256, crypto.SHA256)
	stretched := NewConfiguration(group.P256Sha256, NewHash(crypto.SHA256), NewKDF(crypto.SHA256), ksf.NewKSF(bksf.Argon2id))

	h1 := plain.DeriveCredentialHashes([]byte("username"), []byte("password"))
	h2 := stretched.DeriveCredentialHashes([]byte("username"), []byte("password"))
	h3 := stretched.DeriveCredentialHashes([]byte("username"), []byte("password"))

	if equalScalars(h1.T, h2.T) {
		t.Fatal("expected key stretching to change the credential hashes")
	}

	if !equalScalars(h2.T, h3.T) {
		t.Fatal("expected key stretching to be deterministic")
	}
}

func testTranscript(c *Configuration) *Transcript {
	element := func() *group.Element { return c.Generator().Multiply(c.RandomScalar()) }
	proof := func() *message.Proof {
		x := c.RandomScalar()
		return c.CreateProof(x, c.Generator().Multiply(x), c.Generator(), []byte("id"))
	}

	return &Transcript{
		K:              element(),
		UserIdentity:   []byte("username"),
		X1:             element(),
		X2:             element(),
		PI1:            proof(),
		PI2:            proof(),
		ServerIdentity: []byte("localhost"),
		X3:             element(),
		X4:             element(),
		PI3:            proof(),
		PI4:            proof(),
		Beta:           element(),
		PIBeta:         proof(),
		Alpha:          element(),
		PIAlpha:        proof(),
	}
}

func TestTranscriptHash(t *testing.T) {
	testAllGroups(t, func(t *testing.T, c *Configuration) {
		tr := testTranscript(c)
		h := c.TranscriptHash(tr)

		if len(h) != c.Hash.Size() {
			t.Fatalf("expected %d bytes, got %d", c.Hash.Size(), len(h))
		}

		if !bytes.Equal(h, c.TranscriptHash(tr)) {
			t.Fatal("transcript hash is not deterministic")
		}

		changes := map[string]func(*Transcript){
			"K":        func(tr *Transcript) { tr.K.Add(c.Generator()) },
			"user":     func(tr *Transcript) { tr.UserIdentity = []byte("other") },
			"server":   func(tr *Transcript) { tr.ServerIdentity = []byte("other") },
			"X2":       func(tr *Transcript) { tr.X2.Add(c.Generator()) },
			"PI3.h":    func(tr *Transcript) { tr.PI3.Challenge[0] ^= 1 },
			"beta":     func(tr *Transcript) { tr.Beta.Add(c.Generator()) },
			"alpha":    func(tr *Transcript) { tr.Alpha.Add(c.Generator()) },
			"PIalpha":  func(tr *Transcript) { tr.PIAlpha.Response.Add(c.ScalarFromInt(big.NewInt(1))) },
			"swap X34": func(tr *Transcript) { tr.X3, tr.X4 = tr.X4, tr.X3 },
		}

		for name, change := range changes {
			tr := testTranscript(c)
			before := c.TranscriptHash(tr)
			change(tr)

			if bytes.Equal(before, c.TranscriptHash(tr)) {
				t.Errorf("transcript hash insensitive to %s", name)
			}
		}
	})
}

func TestSharedKey(t *testing.T) {
	testAllGroups(t, func(t *testing.T, c *Configuration) {
		k := c.Generator().Multiply(c.RandomScalar())
		key := c.SharedKey(k)

		if !bytes.Equal(key, c.Hash.Hash(k.Encode())) {
			t.Fatal("unexpected shared key")
		}

		if len(key) != c.Hash.Size() {
			t.Fatalf("expected %d bytes, got %d", c.Hash.Size(), len(key))
		}
	})
}

func TestHashFunctions(t *testing.T) {
	for _, h := range []crypto.Hash{crypto.SHA256, crypto.SHA384, crypto.SHA512, crypto.SHA3_256, crypto.SHA3_384, crypto.SHA3_512} {
		if !IsHashFunctionValid(h) {
			t.Errorf("expected %v to be valid", h)
		}

		if NewHash(h).Size() != h.Size() {
			t.Errorf("unexpected size for %v", h)
		}

		if out := NewKDF(h).Expand(make([]byte, h.Size()), []byte("info"), 48); len(out) != 48 {
			t.Errorf("unexpected expansion length for %v", h)
		}
	}

	for _, h := range []crypto.Hash{0, crypto.MD5, crypto.SHA1, crypto.SHA224, crypto.BLAKE2b_256} {
		if IsHashFunctionValid(h) {
			t.Errorf("expected %v to be invalid", h)
		}
	}
}

func TestClear(t *testing.T) {
	c := testConfiguration(group.P256Sha256, crypto.SHA256)
	s := c.RandomScalar()
	ClearScalar(&s)

	if s != nil {
		t.Fatal("expected a nil scalar")
	}

	ClearScalar(&s)

	b := []byte{1, 2, 3}
	alias := b
	ClearSlice(&b)

	if b != nil || !bytes.Equal(alias, []byte{0, 0, 0}) {
		t.Fatal("expected a zeroed and nil slice")
	}
}
