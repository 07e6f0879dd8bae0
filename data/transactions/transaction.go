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
	"fmt"

	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/protocol"
)

// MaxTxnNoteBytes bounds the free-form note of a transaction.
const MaxTxnNoteBytes = 1024

// Txid is a hash used to uniquely identify individual transactions
type Txid crypto.Digest

// String converts txid to a pretty-printable string
func (txid Txid) String() string {
	return fmt.Sprintf("%v", crypto.Digest(txid))
}

// FromString initializes the Txid from a string
func (txid *Txid) FromString(text string) error {
	d, err := crypto.DigestFromString(text)
	*txid = Txid(d)
	return err
}

// Header captures the fields common to every transaction type.
type Header struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Sender     basics.Address `codec:"snd"`
	FirstValid basics.Round   `codec:"fv"`
	LastValid  basics.Round   `codec:"lv"`
	Note       []byte         `codec:"note"`
	GenesisID  string         `codec:"gen"`
}

// StreamOpenTxnFields captures the fields only used when opening a stream.
type StreamOpenTxnFields struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Recipient basics.Address `codec:"rcv"`
	Deposit   basics.Units   `codec:"dep"`
}

// StreamTermsTxnFields carry the rate and window of a stream, set at open and
// renegotiated by update.
type StreamTermsTxnFields struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	PaymentPerBlock basics.Units      `codec:"ppb"`
	Timeframe       streams.Timeframe `codec:"tf"`
}

// StreamCallTxnFields identify the stream an operation targets. Amount is
// only used by refuel.
type StreamCallTxnFields struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	StreamID streams.StreamID `codec:"sid"`
	Amount   basics.Units     `codec:"amt"`
}

// StreamUpdateTxnFields carry the counterparty's consent to new terms.
type StreamUpdateTxnFields struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Signer    basics.Address   `codec:"sgnr"`
	SignerSig crypto.Signature `codec:"ssig"`
}

// Transaction describes one operation against the stream ledger.
type Transaction struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Type protocol.TxType `codec:"type"`

	Header

	StreamOpenTxnFields
	StreamTermsTxnFields
	StreamCallTxnFields
	StreamUpdateTxnFields
}

// ToBeHashed implements the crypto.Hashable interface.
func (tx Transaction) ToBeHashed() (protocol.HashID, []byte) {
	return protocol.Transaction, protocol.Encode(&tx)
}

// ID returns the Txid (i.e., hash) of the transaction.
func (tx Transaction) ID() Txid {
	return Txid(crypto.HashObj(tx))
}

// Terms returns the stream terms proposed by an update transaction.
func (tx Transaction) Terms() streams.Terms {
	return streams.Terms{
		StreamID:        tx.StreamID,
		PaymentPerBlock: tx.PaymentPerBlock,
		Timeframe:       tx.Timeframe,
	}
}

// Sign signs a transaction using a given key.
func (tx Transaction) Sign(secrets *crypto.SignatureSecrets) SignedTxn {
	return SignedTxn{
		Txn: tx,
		Sig: secrets.Sign(tx),
	}
}

// Alive checks to see if the transaction is still alive (can be applied) at the specified round.
func (tx Transaction) Alive(round basics.Round) error {
	if round < tx.FirstValid || round > tx.LastValid {
		return &TxnDeadError{
			Round:      round,
			FirstValid: tx.FirstValid,
			LastValid:  tx.LastValid,
		}
	}
	return nil
}

var (
	errNoSender       = errors.New("transaction has no sender")
	errValidityWindow = errors.New("transaction first valid round after last valid round")
)

// WellFormed checks that the transaction looks reasonable on its own (but
// not necessarily valid against the actual ledger). It does not check the
// envelope signature.
func (tx Transaction) WellFormed() error {
	if tx.Sender.IsZero() {
		return &MalformedTxnError{Field: "snd", Err: errNoSender}
	}
	if tx.LastValid < tx.FirstValid {
		return &MalformedTxnError{Field: "lv", Err: errValidityWindow}
	}
	if len(tx.Note) > MaxTxnNoteBytes {
		return &MalformedTxnError{Field: "note", Err: fmt.Errorf("note too long: %d > %d", len(tx.Note), MaxTxnNoteBytes)}
	}

	switch tx.Type {
	case protocol.OpenStreamTx:
		if tx.Deposit.IsZero() {
			return &MalformedTxnError{Field: "dep", Err: streams.ErrZeroAmount}
		}
		if err := streams.CheckRate(tx.PaymentPerBlock, tx.Timeframe); err != nil {
			return &MalformedTxnError{Field: "tf", Err: err}
		}

	case protocol.RefuelStreamTx:
		if tx.Amount.IsZero() {
			return &MalformedTxnError{Field: "amt", Err: streams.ErrZeroAmount}
		}

	case protocol.WithdrawStreamTx, protocol.RefundStreamTx, protocol.UpdateStreamTx:
		// Update terms are checked by the ledger after the counterparty
		// signature, so a bad signature is reported ahead of bad terms.

	default:
		return &MalformedTxnError{Field: "type", Err: fmt.Errorf("unknown transaction type %q", tx.Type)}
	}
	return nil
}
