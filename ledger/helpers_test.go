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

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/bookkeeping"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/ledger/ledgercore"
	"github.com/algorand/go-streampay/ledger/store/trackerdb"
	"github.com/algorand/go-streampay/ledger/store/trackerdb/memdriver"
	"github.com/algorand/go-streampay/logging"
	"github.com/algorand/go-streampay/util/metrics"
)

var (
	senderKey    = crypto.GenerateSignatureSecrets(crypto.Seed{1})
	recipientKey = crypto.GenerateSignatureSecrets(crypto.Seed{2})
	strangerKey  = crypto.GenerateSignatureSecrets(crypto.Seed{3})

	sender    = basics.Address(senderKey.SignatureVerifier)
	recipient = basics.Address(recipientKey.SignatureVerifier)
	stranger  = basics.Address(strangerKey.SignatureVerifier)
)

const initialBalance = 100

// streamCmp lets cmp look inside the codec-tagged stream records.
var streamCmp = cmp.AllowUnexported(streams.Stream{}, streams.Timeframe{})

func testSecrets(addr basics.Address) *crypto.SignatureSecrets {
	switch addr {
	case sender:
		return senderKey
	case recipient:
		return recipientKey
	}
	return strangerKey
}

func units(raw uint64) basics.Units {
	return basics.Units{Raw: raw}
}

func testGenesis() bookkeeping.Genesis {
	return bookkeeping.Genesis{
		SchemaID: "v1",
		Network:  "testnet",
		Allocation: []bookkeeping.GenesisAllocation{
			{Address: sender, Balance: units(initialBalance)},
			{Address: recipient},
			{Address: stranger, Balance: units(initialBalance)},
		},
	}
}

type testLedger struct {
	*Ledger
	clock *SteppedClock
	reg   *metrics.Registry
}

func openTestLedgerWithStore(t testing.TB, store trackerdb.Store) testLedger {
	clock := MakeSteppedClock(0)
	reg := metrics.MakeRegistry()
	l, err := OpenLedger(context.Background(), logging.TestingLog(t), store, testGenesis(), clock, nil, reg)
	require.NoError(t, err)
	t.Cleanup(l.Close)
	return testLedger{Ledger: l, clock: clock, reg: reg}
}

func openTestLedger(t testing.TB) testLedger {
	return openTestLedgerWithStore(t, memdriver.Open())
}

func requireKind(t testing.TB, err error, kind ledgercore.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	got, ok := ledgercore.KindOf(err)
	require.True(t, ok, "error %v carries no kind", err)
	require.Equal(t, kind, got, "error %v", err)
}

func (tl testLedger) account(t testing.TB, addr basics.Address) uint64 {
	bal, err := tl.AccountBalance(context.Background(), addr)
	require.NoError(t, err)
	return bal.Raw
}

func (tl testLedger) stream(t testing.TB, id streams.StreamID) streams.Stream {
	s, err := tl.GetStream(context.Background(), id)
	require.NoError(t, err)
	return s
}

// openScenarioA opens the five unit stream at round 0.
func (tl testLedger) openScenarioA(t testing.TB) streams.StreamID {
	id, err := tl.Open(context.Background(), sender, recipient, units(5), streams.MakeTimeframe(0, 5), units(1))
	require.NoError(t, err)
	return id
}
