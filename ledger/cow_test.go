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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
	"github.com/algorand/go-streampay/ledger/ledgercore"
	"github.com/algorand/go-streampay/ledger/store/trackerdb/memdriver"
)

func makeTestCow(t *testing.T) *roundCowState {
	ctx := context.Background()
	store := memdriver.Open()
	require.NoError(t, store.Initialize(ctx, "test-v1", 0, map[basics.Address]basics.Units{
		sender: units(10),
	}))
	return makeRoundCowState(ctx, store, 7, 3)
}

func TestCowMove(t *testing.T) {
	t.Parallel()
	cb := makeTestCow(t)

	require.NoError(t, cb.Move(sender, recipient, units(4)))
	require.NoError(t, cb.Move(sender, recipient, units(0)))
	err := cb.Move(sender, sender, units(6))
	kind, ok := ledgercore.KindOf(err)
	require.True(t, ok)
	require.Equal(t, ledgercore.InvalidArgument, kind)

	d := cb.deltas()
	require.Equal(t, units(6), d.Accounts[sender])
	require.Equal(t, units(4), d.Accounts[recipient])
	require.Equal(t, []ledgercore.Transfer{
		{From: sender, To: recipient, Amount: units(4)},
	}, d.Transfers)

	err = cb.Move(sender, recipient, units(7))
	var insufficient *ledgercore.InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, units(6), insufficient.Balance)
	require.Len(t, cb.deltas().Transfers, 1)
}

func TestCowMoveOverflow(t *testing.T) {
	t.Parallel()
	cb := makeTestCow(t)
	cb.mods.Accounts[recipient] = units(^uint64(0))

	err := cb.Move(sender, recipient, units(1))
	kind, ok := ledgercore.KindOf(err)
	require.True(t, ok)
	require.Equal(t, ledgercore.InvalidArgument, kind)
	_, touched := cb.deltas().Accounts[sender]
	require.False(t, touched)
	require.Empty(t, cb.deltas().Transfers)
}

func TestCowStreams(t *testing.T) {
	t.Parallel()
	cb := makeTestCow(t)

	_, ok, err := cb.GetStream(3)
	require.NoError(t, err)
	require.False(t, ok)

	id := cb.AllocateStreamID()
	require.Equal(t, streams.StreamID(3), id)
	require.Equal(t, streams.StreamID(4), cb.deltas().NextStreamID)

	s := streams.Stream{ID: id, Sender: sender, Recipient: recipient, Balance: units(5)}
	require.NoError(t, cb.PutStream(s))
	got, ok, err := cb.GetStream(id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, s, got)
	require.Equal(t, basics.Round(7), cb.Round())
}

func TestCowAddTx(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memdriver.Open()
	require.NoError(t, store.Initialize(ctx, "test-v1", 0, nil))
	committed := ledgercore.MakeStateDelta(5, 0)
	committed.Txids[transactions.Txid{1}] = 9
	require.NoError(t, store.Commit(ctx, committed))
	cb := makeRoundCowState(ctx, store, 7, 0)

	var dup ledgercore.TransactionInLedgerError
	require.ErrorAs(t, cb.addTx(transactions.Txid{1}, 9), &dup)
	require.NoError(t, cb.addTx(transactions.Txid{2}, 12))
	require.ErrorAs(t, cb.addTx(transactions.Txid{2}, 12), &dup)
	require.Equal(t, transactions.Txid{2}, dup.Txid)

	d := cb.deltas()
	require.Equal(t, map[transactions.Txid]basics.Round{{2}: 12}, d.Txids)
	require.False(t, d.IsEmpty())
}
