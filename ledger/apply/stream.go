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

	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/ledger/ledgercore"
)

var errBalanceOverflow = errors.New("stream balance overflows")

// Open locks deposit from sender into a new stream to recipient and returns
// the id assigned to it. Arguments are validated before any transfer.
func Open(balances Balances, sender, recipient basics.Address, deposit basics.Units, tf streams.Timeframe, paymentPerBlock basics.Units) (streams.StreamID, error) {
	if sender == streams.EscrowAddress || recipient == streams.EscrowAddress {
		return 0, ledgercore.MakeInvalidArgumentError("address", streams.ErrEscrowParticipant)
	}
	if deposit.IsZero() {
		return 0, ledgercore.MakeInvalidArgumentError("amount", streams.ErrZeroAmount)
	}
	if err := streams.CheckRate(paymentPerBlock, tf); err != nil {
		return 0, rateError(err)
	}

	if err := balances.Move(sender, streams.EscrowAddress, deposit); err != nil {
		return 0, err
	}

	s := streams.Stream{
		ID:              balances.AllocateStreamID(),
		Sender:          sender,
		Recipient:       recipient,
		Balance:         deposit,
		PaymentPerBlock: paymentPerBlock,
		Timeframe:       tf,
	}
	if err := balances.PutStream(s); err != nil {
		return 0, err
	}
	return s.ID, nil
}

// Refuel adds amount from the sender to the balance of a stream.
func Refuel(balances Balances, id streams.StreamID, caller basics.Address, amount basics.Units) error {
	s, err := lookup(balances, id)
	if err != nil {
		return err
	}
	if !s.IsSender(caller) {
		return &ledgercore.UnauthorizedError{StreamID: id, Caller: caller, Role: "sender"}
	}
	if amount.IsZero() {
		return ledgercore.MakeInvalidArgumentError("amount", streams.ErrZeroAmount)
	}

	newBalance, overflowed := basics.OAddU(s.Balance, amount)
	if overflowed {
		return ledgercore.MakeInvalidArgumentError("amount", errBalanceOverflow)
	}
	if err := balances.Move(caller, streams.EscrowAddress, amount); err != nil {
		return err
	}

	s.Balance = newBalance
	return balances.PutStream(s)
}

// Withdraw pays the recipient everything vested and not yet withdrawn. When
// nothing is owed it succeeds without effect.
func Withdraw(balances Balances, id streams.StreamID, caller basics.Address) (basics.Units, error) {
	s, err := lookup(balances, id)
	if err != nil {
		return basics.Units{}, err
	}
	if !s.IsRecipient(caller) {
		return basics.Units{}, &ledgercore.UnauthorizedError{StreamID: id, Caller: caller, Role: "recipient"}
	}

	owed := s.Owed(balances.Round())
	if owed.IsZero() {
		return owed, nil
	}
	if err := balances.Move(streams.EscrowAddress, s.Recipient, owed); err != nil {
		return basics.Units{}, err
	}

	// Owed never exceeds balance - withdrawn, so this cannot overflow.
	s.WithdrawnBalance.Raw += owed.Raw
	return owed, balances.PutStream(s)
}

// Refund returns to the sender the part of the balance that will never vest.
// It may be called at any time; nothing already vested is ever returned.
func Refund(balances Balances, id streams.StreamID, caller basics.Address) (basics.Units, error) {
	s, err := lookup(balances, id)
	if err != nil {
		return basics.Units{}, err
	}
	if !s.IsSender(caller) {
		return basics.Units{}, &ledgercore.UnauthorizedError{StreamID: id, Caller: caller, Role: "sender"}
	}

	excess := s.Excess()
	if excess.IsZero() {
		return excess, nil
	}
	if err := balances.Move(streams.EscrowAddress, s.Sender, excess); err != nil {
		return basics.Units{}, err
	}

	s.Balance.Raw -= excess.Raw
	return excess, balances.PutStream(s)
}
