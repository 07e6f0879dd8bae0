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

// Package streams defines the stream record and the vesting arithmetic
// evaluated over it. Everything here is a pure function of the record and
// the round it is evaluated at.
package streams

import (
	"errors"
	"fmt"

	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/protocol"
)

// StreamID identifies a stream. IDs are assigned sequentially starting at zero.
type StreamID uint64

var (
	// ErrInvertedTimeframe is returned for a timeframe whose start is not before its stop.
	ErrInvertedTimeframe = errors.New("start block must be before stop block")
	// ErrZeroPayment is returned for a zero payment per block.
	ErrZeroPayment = errors.New("payment per block must be positive")
	// ErrZeroAmount is returned for a zero deposit or refuel amount.
	ErrZeroAmount = errors.New("amount must be positive")
	// ErrVestingOverflow is returned when the total vesting of a stream does not fit in 64 bits.
	ErrVestingOverflow = errors.New("payment per block times timeframe length overflows")
	// ErrEscrowParticipant is returned when the escrow account is named as sender or recipient.
	ErrEscrowParticipant = errors.New("the escrow account cannot take part in a stream")
)

// Timeframe is the half-open vesting window [StartBlock, StopBlock).
type Timeframe struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	StartBlock basics.Round `codec:"start-block"`
	StopBlock  basics.Round `codec:"stop-block"`
}

// MakeTimeframe is a convenience constructor.
func MakeTimeframe(start, stop basics.Round) Timeframe {
	return Timeframe{StartBlock: start, StopBlock: stop}
}

// WellFormed checks that start < stop.
func (tf Timeframe) WellFormed() error {
	if tf.StartBlock >= tf.StopBlock {
		return fmt.Errorf("timeframe [%d, %d): %w", tf.StartBlock, tf.StopBlock, ErrInvertedTimeframe)
	}
	return nil
}

// Length is the number of rounds in the window.
func (tf Timeframe) Length() uint64 {
	return uint64(tf.StopBlock.SubSaturate(tf.StartBlock))
}

// BlockDelta is the number of rounds of the window that have elapsed at now:
// clamp(now, start, stop) - start.
func (tf Timeframe) BlockDelta(now basics.Round) uint64 {
	switch {
	case now <= tf.StartBlock:
		return 0
	case now >= tf.StopBlock:
		return tf.Length()
	default:
		return uint64(now - tf.StartBlock)
	}
}

// Stream is the ledger record of a continuous payment.
type Stream struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	ID               StreamID       `codec:"id"`
	Sender           basics.Address `codec:"sender"`
	Recipient        basics.Address `codec:"recipient"`
	Balance          basics.Units   `codec:"balance"`
	WithdrawnBalance basics.Units   `codec:"withdrawn-balance"`
	PaymentPerBlock  basics.Units   `codec:"payment-per-block"`
	Timeframe        Timeframe      `codec:"timeframe"`
}

// IsSender reports whether who funded the stream.
func (s Stream) IsSender(who basics.Address) bool {
	return who == s.Sender
}

// IsRecipient reports whether who receives the stream.
func (s Stream) IsRecipient(who basics.Address) bool {
	return who == s.Recipient
}

// Counterparty returns the participant on the other side of who. ok is
// false when who does not participate in the stream.
func (s Stream) Counterparty(who basics.Address) (other basics.Address, ok bool) {
	switch who {
	case s.Sender:
		return s.Recipient, true
	case s.Recipient:
		return s.Sender, true
	}
	return basics.Address{}, false
}

// Terms returns the renegotiable part of the stream.
func (s Stream) Terms() Terms {
	return Terms{StreamID: s.ID, PaymentPerBlock: s.PaymentPerBlock, Timeframe: s.Timeframe}
}

// String renders the stream for logs.
func (s Stream) String() string {
	return fmt.Sprintf("stream %d %s->%s balance=%d withdrawn=%d rate=%d window=[%d,%d)",
		s.ID, s.Sender.Short(), s.Recipient.Short(), s.Balance.Raw, s.WithdrawnBalance.Raw,
		s.PaymentPerBlock.Raw, s.Timeframe.StartBlock, s.Timeframe.StopBlock)
}

type escrowSeed struct{}

func (escrowSeed) ToBeHashed() (protocol.HashID, []byte) {
	return protocol.EscrowAccount, []byte("streams")
}

// EscrowAddress holds the locked balance of every stream. It is derived from a
// hash rather than a key, so no one can sign on its behalf.
var EscrowAddress = basics.Address(crypto.HashObj(escrowSeed{}))
