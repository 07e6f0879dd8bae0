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

package testsuite

import (
	"context"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
	"github.com/algorand/go-streampay/ledger/ledgercore"
	"github.com/algorand/go-streampay/ledger/store/trackerdb"
)

func init() {
	registerTest("fresh-store", CustomTestFreshStore)
	registerTest("initialize", CustomTestInitialize)
	registerTest("commit-roundtrip", CustomTestCommitRoundtrip)
	registerTest("commit-overwrites", CustomTestCommitOverwrites)
	registerTest("commit-requires-init", CustomTestCommitRequiresInit)
	registerTest("commit-rejects-mismatched-id", CustomTestCommitRejectsMismatchedID)
	registerTest("txid-tail", CustomTestTxidTail)
}

const testGenesisID = "streamnet-v1"

var (
	alice = basics.Address{0xa1}
	bob   = basics.Address{0xb0}

	sampleTxid = transactions.Txid{0x5a}
)

func ctx() context.Context {
	return context.Background()
}

func seedDB(t *customT) {
	err := t.db.Initialize(ctx(), testGenesisID, 10, map[basics.Address]basics.Units{
		alice: {Raw: 1000},
		bob:   {Raw: 5},
	})
	require.NoError(t, err)
}

func sampleDelta() ledgercore.StateDelta {
	delta := ledgercore.MakeStateDelta(12, 1)
	delta.Streams[0] = streams.Stream{
		ID:               0,
		Sender:           alice,
		Recipient:        bob,
		Balance:          basics.Units{Raw: 50},
		WithdrawnBalance: basics.Units{Raw: 7},
		PaymentPerBlock:  basics.Units{Raw: 5},
		Timeframe:        streams.MakeTimeframe(10, 20),
	}
	delta.Accounts[alice] = basics.Units{Raw: 950}
	delta.Accounts[bob] = basics.Units{Raw: 12}
	delta.Accounts[streams.EscrowAddress] = basics.Units{Raw: 43}
	delta.Txids[sampleTxid] = 20
	return delta
}

func requireDeltaApplied(t *customT, delta ledgercore.StateDelta) {
	for id, want := range delta.Streams {
		got, err := t.db.LookupStream(ctx(), id)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(want, got, cmp.AllowUnexported(streams.Stream{}, streams.Timeframe{})))
	}
	for addr, want := range delta.Accounts {
		got, err := t.db.LookupAccount(ctx(), addr)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	for txid, want := range delta.Txids {
		got, err := t.db.LookupTxid(ctx(), txid)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	meta, err := t.db.Meta(ctx())
	require.NoError(t, err)
	require.Equal(t, trackerdb.Meta{GenesisID: testGenesisID, NextStreamID: delta.NextStreamID, Round: delta.Round}, meta)
}

func CustomTestFreshStore(t *customT) {
	meta, err := t.db.Meta(ctx())
	require.NoError(t, err)
	require.Equal(t, trackerdb.Meta{}, meta)

	_, err = t.db.LookupStream(ctx(), 0)
	require.ErrorIs(t, err, trackerdb.ErrNotFound)

	bal, err := t.db.LookupAccount(ctx(), alice)
	require.NoError(t, err)
	require.True(t, bal.IsZero())
}

func CustomTestInitialize(t *customT) {
	seedDB(t)

	bal, err := t.db.LookupAccount(ctx(), alice)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), bal.Raw)

	meta, err := t.db.Meta(ctx())
	require.NoError(t, err)
	require.Equal(t, trackerdb.Meta{GenesisID: testGenesisID, Round: 10}, meta)

	// same genesis again is a no-op and does not reset balances
	require.NoError(t, t.db.Commit(ctx(), ledgercore.StateDelta{Accounts: map[basics.Address]basics.Units{alice: {Raw: 1}}, Round: 11}))
	require.NoError(t, t.db.Initialize(ctx(), testGenesisID, 10, map[basics.Address]basics.Units{alice: {Raw: 1000}}))
	bal, err = t.db.LookupAccount(ctx(), alice)
	require.NoError(t, err)
	require.Equal(t, uint64(1), bal.Raw)

	err = t.db.Initialize(ctx(), "othernet", 0, nil)
	var mismatch *trackerdb.GenesisMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, testGenesisID, mismatch.Stored)
}

func CustomTestCommitRoundtrip(t *customT) {
	seedDB(t)
	delta := sampleDelta()
	require.NoError(t, t.db.Commit(ctx(), delta))
	requireDeltaApplied(t, delta)

	_, err := t.db.LookupStream(ctx(), 1)
	require.ErrorIs(t, err, trackerdb.ErrNotFound)
}

func CustomTestCommitOverwrites(t *customT) {
	seedDB(t)
	require.NoError(t, t.db.Commit(ctx(), sampleDelta()))

	next := ledgercore.MakeStateDelta(15, 1)
	st, err := t.db.LookupStream(ctx(), 0)
	require.NoError(t, err)
	st.WithdrawnBalance = basics.Units{Raw: 25}
	next.Streams[0] = st
	next.Accounts[bob] = basics.Units{Raw: 30}
	require.NoError(t, t.db.Commit(ctx(), next))

	got, err := t.db.LookupStream(ctx(), 0)
	require.NoError(t, err)
	require.Equal(t, uint64(25), got.WithdrawnBalance.Raw)

	bal, err := t.db.LookupAccount(ctx(), bob)
	require.NoError(t, err)
	require.Equal(t, uint64(30), bal.Raw)

	// untouched accounts keep their value
	bal, err = t.db.LookupAccount(ctx(), alice)
	require.NoError(t, err)
	require.Equal(t, uint64(950), bal.Raw)
}

func CustomTestCommitRequiresInit(t *customT) {
	err := t.db.Commit(ctx(), sampleDelta())
	require.ErrorIs(t, err, trackerdb.ErrNotInitialized)

	_, err = t.db.LookupStream(ctx(), 0)
	require.ErrorIs(t, err, trackerdb.ErrNotFound)
}

func CustomTestCommitRejectsMismatchedID(t *customT) {
	seedDB(t)
	delta := sampleDelta()
	st := delta.Streams[0]
	st.ID = 9
	delta.Streams[0] = st
	require.Error(t, t.db.Commit(ctx(), delta))

	// nothing from the rejected delta is visible
	_, err := t.db.LookupStream(ctx(), 0)
	require.ErrorIs(t, err, trackerdb.ErrNotFound)
	bal, err := t.db.LookupAccount(ctx(), alice)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), bal.Raw)
	_, err = t.db.LookupTxid(ctx(), sampleTxid)
	require.ErrorIs(t, err, trackerdb.ErrNotFound)
}

func CustomTestTxidTail(t *customT) {
	seedDB(t)
	_, err := t.db.LookupTxid(ctx(), sampleTxid)
	require.ErrorIs(t, err, trackerdb.ErrNotFound)

	require.NoError(t, t.db.Commit(ctx(), sampleDelta()))
	lv, err := t.db.LookupTxid(ctx(), sampleTxid)
	require.NoError(t, err)
	require.Equal(t, basics.Round(20), lv)

	// a commit at the last valid round keeps the txid
	other := transactions.Txid{0x6b}
	next := ledgercore.MakeStateDelta(20, 1)
	next.Txids[other] = 25
	require.NoError(t, t.db.Commit(ctx(), next))
	_, err = t.db.LookupTxid(ctx(), sampleTxid)
	require.NoError(t, err)

	// past it, the txid is forgotten
	next = ledgercore.MakeStateDelta(21, 1)
	next.Accounts[bob] = basics.Units{Raw: 6}
	require.NoError(t, t.db.Commit(ctx(), next))
	_, err = t.db.LookupTxid(ctx(), sampleTxid)
	require.ErrorIs(t, err, trackerdb.ErrNotFound)
	lv, err = t.db.LookupTxid(ctx(), other)
	require.NoError(t, err)
	require.Equal(t, basics.Round(25), lv)
}
