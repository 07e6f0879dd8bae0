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

package transactions

import (
	"errors"

	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/protocol"
)

// ErrBadEnvelopeSignature is returned when a SignedTxn's signature does not
// verify against its sender.
var ErrBadEnvelopeSignature = errors.New("transaction signature does not verify against sender")

// SignedTxn wraps a transaction and a signature by its sender. The signature
// is what authenticates the caller identity of every ledger operation.
type SignedTxn struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Sig crypto.Signature `codec:"sig"`
	Txn Transaction      `codec:"txn"`
}

// ID returns the Txid (i.e., hash) of the underlying transaction.
func (s SignedTxn) ID() Txid {
	return s.Txn.ID()
}

// Verify checks the envelope signature against the sender's key.
func (s SignedTxn) Verify() error {
	if s.Sig.Blank() || !s.Txn.Sender.Verifier().Verify(s.Txn, s.Sig) {
		return ErrBadEnvelopeSignature
	}
	return nil
}

// Encode returns the canonical msgpack encoding of the signed transaction.
func (s SignedTxn) Encode() []byte {
	return protocol.Encode(&s)
}
