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

package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
	"github.com/algorand/go-streampay/ledger/ledgercore"
	"github.com/algorand/go-streampay/ledger/store/trackerdb"
)

var (
	errAccountOverflow = errors.New("destination balance overflows")
	errSelfTransfer    = errors.New("source and destination are the same account")
)

//   ___________________
// < cow = Copy On Write >
//   -------------------
//          \   ^__^
//           \  (oo)\_______
//              (__)\       )\/\
//                  ||----w |
//                  ||     ||

// roundCowState buffers the writes of one operation over the committed store.
// Nothing reaches the store until the ledger commits mods; dropping the
// state discards every change.
type roundCowState struct {
	ctx          context.Context
	lookupParent trackerdb.Reader
	mods         ledgercore.StateDelta
}

func makeRoundCowState(ctx context.Context, parent trackerdb.Reader, rnd basics.Round, nextID streams.StreamID) *roundCowState {
	return &roundCowState{
		ctx:          ctx,
		lookupParent: parent,
		mods:         ledgercore.MakeStateDelta(rnd, nextID),
	}
}

func (cb *roundCowState) deltas() ledgercore.StateDelta {
	return cb.mods
}

func (cb *roundCowState) Round() basics.Round {
	return cb.mods.Round
}

func (cb *roundCowState) GetStream(id streams.StreamID) (streams.Stream, bool, error) {
	if s, ok := cb.mods.Streams[id]; ok {
		return s, true, nil
	}
	s, err := cb.lookupParent.LookupStream(cb.ctx, id)
	if errors.Is(err, trackerdb.ErrNotFound) {
		return streams.Stream{}, false, nil
	}
	if err != nil {
		return streams.Stream{}, false, fmt.Errorf("stream %d lookup failed: %w", id, err)
	}
	return s, true, nil
}

func (cb *roundCowState) PutStream(s streams.Stream) error {
	cb.mods.Streams[s.ID] = s
	return nil
}

func (cb *roundCowState) AllocateStreamID() streams.StreamID {
	id := cb.mods.NextStreamID
	cb.mods.NextStreamID++
	return id
}

// addTx records txid as executed in this operation. An envelope the store
// still remembers is a replay.
func (cb *roundCowState) addTx(txid transactions.Txid, lastValid basics.Round) error {
	if _, ok := cb.mods.Txids[txid]; ok {
		return ledgercore.TransactionInLedgerError{Txid: txid}
	}
	_, err := cb.lookupParent.LookupTxid(cb.ctx, txid)
	if err == nil {
		return ledgercore.TransactionInLedgerError{Txid: txid}
	}
	if !errors.Is(err, trackerdb.ErrNotFound) {
		return fmt.Errorf("txid %v lookup failed: %w", txid, err)
	}
	cb.mods.Txids[txid] = lastValid
	return nil
}

func (cb *roundCowState) lookupAccount(addr basics.Address) (basics.Units, error) {
	if bal, ok := cb.mods.Accounts[addr]; ok {
		return bal, nil
	}
	bal, err := cb.lookupParent.LookupAccount(cb.ctx, addr)
	if err != nil {
		return basics.Units{}, fmt.Errorf("account %v lookup failed: %w", addr, err)
	}
	return bal, nil
}

// Move implements the transfer primitive. A zero amount moves nothing and is
// not recorded.
func (cb *roundCowState) Move(src, dst basics.Address, amount basics.Units) error {
	if src == dst {
		return ledgercore.MakeInvalidArgumentError("address", errSelfTransfer)
	}
	if amount.IsZero() {
		return nil
	}

	srcBal, err := cb.lookupAccount(src)
	if err != nil {
		return err
	}
	newSrc, underflowed := basics.OSubU(srcBal, amount)
	if underflowed {
		return &ledgercore.InsufficientFundsError{Address: src, Balance: srcBal, Needed: amount}
	}

	dstBal, err := cb.lookupAccount(dst)
	if err != nil {
		return err
	}
	newDst, overflowed := basics.OAddU(dstBal, amount)
	if overflowed {
		return ledgercore.MakeInvalidArgumentError("amount", errAccountOverflow)
	}
	cb.mods.Accounts[src] = newSrc
	cb.mods.Accounts[dst] = newDst

	cb.mods.Transfers = append(cb.mods.Transfers, ledgercore.Transfer{From: src, To: dst, Amount: amount})
	return nil
}
