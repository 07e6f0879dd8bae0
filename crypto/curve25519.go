// Copyright (C) 2019-2025 Algorand, Inc.
// This file is part of go-algorand
//
// go-algorand is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-algorand is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-algorand.  If not, see <https://www.gnu.org/licenses/>.

package crypto

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
)

type ed25519Signature [64]byte
type ed25519PublicKey [32]byte
type ed25519PrivateKey [64]byte
type ed25519Seed [32]byte

// A Seed holds the entropy needed to generate cryptographic keys.
type Seed ed25519Seed

// Signature is a cryptographic signature. It commits to exactly one message.
type Signature ed25519Signature

// BlankSignature is an empty signature structure, containing nothing but zeroes
var BlankSignature = Signature{}

// Blank tests to see if the given signature contains only zeros
func (s *Signature) Blank() bool {
	return (*s) == BlankSignature
}

// String renders the signature as standard base64.
func (s Signature) String() string {
	return base64.StdEncoding.EncodeToString(s[:])
}

// SignatureFromBytes copies a raw signature, failing if it has the wrong length.
func SignatureFromBytes(raw []byte) (sig Signature, err error) {
	if len(raw) != len(sig) {
		return sig, fmt.Errorf("signature must be %d bytes, got %d", len(sig), len(raw))
	}
	copy(sig[:], raw)
	return sig, nil
}

// A PublicKey is the public half of a signing keypair.
type PublicKey ed25519PublicKey

// SignatureVerifier is a public key that can check signatures.
type SignatureVerifier = PublicKey

// SignatureSecrets are used by an entity to produce unforgeable signatures over
// a message.
type SignatureSecrets struct {
	_struct struct{} `codec:""`

	SignatureVerifier
	SK ed25519PrivateKey
}

func ed25519GenerateKeySeed(seed ed25519Seed) (public ed25519PublicKey, secret ed25519PrivateKey) {
	sk := ed25519.NewKeyFromSeed(seed[:])
	copy(secret[:], sk)
	copy(public[:], sk.Public().(ed25519.PublicKey))
	return
}

func ed25519Sign(secret ed25519PrivateKey, data []byte) (sig ed25519Signature) {
	copy(sig[:], ed25519.Sign(ed25519.PrivateKey(secret[:]), data))
	return
}

// GenerateSignatureSecrets creates SignatureSecrets from a source of entropy.
func GenerateSignatureSecrets(seed Seed) *SignatureSecrets {
	pk0, sk := ed25519GenerateKeySeed(ed25519Seed(seed))
	pk := SignatureVerifier(pk0)
	return &SignatureSecrets{SignatureVerifier: pk, SK: sk}
}

// NewSignatureSecrets draws a fresh seed from SystemRNG and returns it with its keys.
func NewSignatureSecrets() (Seed, *SignatureSecrets) {
	var seed Seed
	SystemRNG.RandBytes(seed[:])
	return seed, GenerateSignatureSecrets(seed)
}

// Sign produces a cryptographic Signature of a Hashable message, given
// cryptographic secrets.
func (s *SignatureSecrets) Sign(message Hashable) Signature {
	return s.SignBytes(HashRep(message))
}

// SignBytes signs a message directly, without first hashing.
// Caller is responsible for making sure the message cannot collide
// with any domain-separated Hashable encoding.
func (s *SignatureSecrets) SignBytes(message []byte) Signature {
	return Signature(ed25519Sign(s.SK, message))
}

// Verify verifies that some Hashable signature was signed under some
// SignatureVerifier.
func (v SignatureVerifier) Verify(message Hashable, sig Signature) bool {
	return v.VerifyBytes(HashRep(message), sig)
}

// VerifyBytes verifies a signature, where the message is not hashed first.
func (v SignatureVerifier) VerifyBytes(message []byte, sig Signature) bool {
	return ed25519ConsensusVerifySingle(v, message, sig)
}
