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
	"github.com/algorand/go-streampay/ledger/ledgercore"
)

var errWithdrawnExceedsVested = errors.New("withdrawn balance would exceed the amount vested under the new terms")

// UpdateDetails replaces the rate and window of a stream with terms the
// counterparty of caller has signed. Balance and withdrawn balance are left
// untouched.
//
// The signature is checked before the roles of caller and signer, so a
// forged signature is rejected the same way whoever submits it.
func UpdateDetails(balances Balances, verifier TermsVerifier, id streams.StreamID, caller basics.Address,
	paymentPerBlock basics.Units, tf streams.Timeframe, signer basics.Address, sig crypto.Signature) error {
	s, err := lookup(balances, id)
	if err != nil {
		return err
	}

	digest := streams.HashTerms(id, paymentPerBlock, tf)
	if !verifier.VerifyTerms(digest, sig, signer) {
		return &ledgercore.InvalidSignatureError{StreamID: id, Signer: signer}
	}

	counterparty, ok := s.Counterparty(caller)
	if !ok {
		return &ledgercore.UnauthorizedError{StreamID: id, Caller: caller, Role: "sender or recipient"}
	}
	if signer != counterparty {
		return &ledgercore.UnauthorizedError{StreamID: id, Caller: signer, Role: "counterparty"}
	}

	if err := streams.CheckRate(paymentPerBlock, tf); err != nil {
		return rateError(err)
	}

	s.PaymentPerBlock = paymentPerBlock
	s.Timeframe = tf
	if s.WithdrawnBalance.GreaterThan(s.Vested(balances.Round())) {
		return ledgercore.MakeInvalidArgumentError("timeframe", errWithdrawnExceedsVested)
	}
	return balances.PutStream(s)
}
