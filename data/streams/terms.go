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

package streams

import (
	"encoding/binary"

	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/protocol"
)

// termsEncodedLen is the fixed width of the canonical terms encoding:
// four big-endian uint64 fields.
const termsEncodedLen = 4 * 8

// Terms are the parameters of a stream that both parties may renegotiate.
type Terms struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	StreamID        StreamID     `codec:"id"`
	PaymentPerBlock basics.Units `codec:"payment-per-block"`
	Timeframe       Timeframe    `codec:"timeframe"`
}

// ToBeHashed implements the crypto.Hashable interface. The encoding is fixed
// width in the order id, payment per block, start block, stop block, so two
// different term sets never share an encoding.
func (t Terms) ToBeHashed() (protocol.HashID, []byte) {
	buf := make([]byte, termsEncodedLen)
	binary.BigEndian.PutUint64(buf[0:8], uint64(t.StreamID))
	binary.BigEndian.PutUint64(buf[8:16], t.PaymentPerBlock.Raw)
	binary.BigEndian.PutUint64(buf[16:24], uint64(t.Timeframe.StartBlock))
	binary.BigEndian.PutUint64(buf[24:32], uint64(t.Timeframe.StopBlock))
	return protocol.StreamTerms, buf
}

// Hash returns the digest both parties sign when agreeing on new terms.
func (t Terms) Hash() crypto.Digest {
	return crypto.HashObj(t)
}

// HashTerms computes the canonical digest of proposed terms for a stream.
func HashTerms(id StreamID, paymentPerBlock basics.Units, tf Timeframe) crypto.Digest {
	return Terms{StreamID: id, PaymentPerBlock: paymentPerBlock, Timeframe: tf}.Hash()
}

// WellFormed checks the rate and window of the terms, including that the
// total vesting of the window is representable.
func (t Terms) WellFormed() error {
	return CheckRate(t.PaymentPerBlock, t.Timeframe)
}

// CheckRate validates a payment rate over a window.
func CheckRate(paymentPerBlock basics.Units, tf Timeframe) error {
	if paymentPerBlock.IsZero() {
		return ErrZeroPayment
	}
	if err := tf.WellFormed(); err != nil {
		return err
	}
	if _, overflowed := totalVesting(paymentPerBlock, tf); overflowed {
		return ErrVestingOverflow
	}
	return nil
}

// Sign produces the counterparty signature over the terms digest.
func (t Terms) Sign(secrets *crypto.SignatureSecrets) crypto.Signature {
	d := t.Hash()
	return secrets.SignBytes(d[:])
}
