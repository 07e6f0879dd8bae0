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
	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/ledger/ledgercore"
)

type mockBalances struct {
	round     basics.Round
	accounts  map[basics.Address]basics.Units
	streams   map[streams.StreamID]streams.Stream
	nextID    streams.StreamID
	transfers []ledgercore.Transfer
}

func makeMockBalances(accounts map[basics.Address]basics.Units) *mockBalances {
	if accounts == nil {
		accounts = make(map[basics.Address]basics.Units)
	}
	return &mockBalances{
		accounts: accounts,
		streams:  make(map[streams.StreamID]streams.Stream),
	}
}

func (mb *mockBalances) GetStream(id streams.StreamID) (streams.Stream, bool, error) {
	s, ok := mb.streams[id]
	return s, ok, nil
}

func (mb *mockBalances) PutStream(s streams.Stream) error {
	mb.streams[s.ID] = s
	return nil
}

func (mb *mockBalances) AllocateStreamID() streams.StreamID {
	id := mb.nextID
	mb.nextID++
	return id
}

func (mb *mockBalances) Move(src, dst basics.Address, amount basics.Units) error {
	have := mb.accounts[src]
	if have.LessThan(amount) {
		return &ledgercore.InsufficientFundsError{Address: src, Balance: have, Needed: amount}
	}
	mb.accounts[src] = basics.Units{Raw: have.Raw - amount.Raw}
	mb.accounts[dst] = basics.Units{Raw: mb.accounts[dst].Raw + amount.Raw}
	mb.transfers = append(mb.transfers, ledgercore.Transfer{From: src, To: dst, Amount: amount})
	return nil
}

func (mb *mockBalances) Round() basics.Round {
	return mb.round
}

// mockVerifier accepts or rejects every signature and records what it was asked.
type mockVerifier struct {
	accept bool
	calls  int
	digest crypto.Digest
	signer basics.Address
}

func (mv *mockVerifier) VerifyTerms(digest crypto.Digest, sig crypto.Signature, signer basics.Address) bool {
	mv.calls++
	mv.digest = digest
	mv.signer = signer
	return mv.accept
}
