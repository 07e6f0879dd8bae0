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

package apply

import (
	"errors"

	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
	"github.com/algorand/go-streampay/ledger/ledgercore"
	"github.com/algorand/go-streampay/protocol"
)

// Balances allow to move Units from one address to another and to read and
// write stream records. After a call to PutStream (or Move), future calls to
// GetStream or Move will reflect the updated state.
type Balances interface {
	// GetStream looks up a stream. ok is false for an unknown id; a non-nil
	// error means the lookup itself failed.
	GetStream(id streams.StreamID) (s streams.Stream, ok bool, err error)

	PutStream(s streams.Stream) error

	// AllocateStreamID returns the next sequential stream id and advances the counter.
	AllocateStreamID() streams.StreamID

	// Move transfers Units from src to dst. It fails with
	// *ledgercore.InsufficientFundsError when src cannot cover amount.
	Move(src, dst basics.Address, amount basics.Units) error

	// Round is the time step the operation is evaluated at.
	Round() basics.Round
}

// TermsVerifier checks that signer signed the digest of proposed terms.
type TermsVerifier interface {
	VerifyTerms(digest crypto.Digest, sig crypto.Signature, signer basics.Address) bool
}

// Ed25519Verifier verifies terms signatures with the signer's ed25519 key.
type Ed25519Verifier struct{}

// VerifyTerms implements TermsVerifier.
func (Ed25519Verifier) VerifyTerms(digest crypto.Digest, sig crypto.Signature, signer basics.Address) bool {
	return signer.Verifier().VerifyBytes(digest[:], sig)
}

// ApplyData reports the outcome of an applied transaction.
type ApplyData struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// StreamID is the stream the transaction operated on (or created).
	StreamID streams.StreamID `codec:"sid"`

	// Amount is what the transaction paid out of escrow: the withdrawal of a
	// withdraw or the excess of a refund.
	Amount basics.Units `codec:"amt"`
}

var errUnknownType = errors.New("unknown transaction type")

// Txn dispatches a transaction to the operation it encodes. The sender of
// the transaction is the caller of the operation.
func Txn(tx transactions.Transaction, balances Balances, verifier TermsVerifier) (ad ApplyData, err error) {
	ad.StreamID = tx.StreamID
	switch tx.Type {
	case protocol.OpenStreamTx:
		ad.StreamID, err = Open(balances, tx.Sender, tx.Recipient, tx.Deposit, tx.Timeframe, tx.PaymentPerBlock)

	case protocol.RefuelStreamTx:
		err = Refuel(balances, tx.StreamID, tx.Sender, tx.Amount)

	case protocol.WithdrawStreamTx:
		ad.Amount, err = Withdraw(balances, tx.StreamID, tx.Sender)

	case protocol.RefundStreamTx:
		ad.Amount, err = Refund(balances, tx.StreamID, tx.Sender)

	case protocol.UpdateStreamTx:
		err = UpdateDetails(balances, verifier, tx.StreamID, tx.Sender, tx.PaymentPerBlock, tx.Timeframe, tx.Signer, tx.SignerSig)

	default:
		err = ledgercore.MakeInvalidArgumentError("type", errUnknownType)
	}
	return
}

// lookup fetches a stream, turning an unknown id into a StreamNotFoundError.
func lookup(balances Balances, id streams.StreamID) (streams.Stream, error) {
	s, ok, err := balances.GetStream(id)
	if err != nil {
		return streams.Stream{}, err
	}
	if !ok {
		return streams.Stream{}, &ledgercore.StreamNotFoundError{StreamID: id}
	}
	return s, nil
}

// rateError maps a rate validation failure to the argument at fault.
func rateError(err error) error {
	field := "timeframe"
	if errors.Is(err, streams.ErrZeroPayment) || errors.Is(err, streams.ErrVestingOverflow) {
		field = "payment-per-block"
	}
	return ledgercore.MakeInvalidArgumentError(field, err)
}
