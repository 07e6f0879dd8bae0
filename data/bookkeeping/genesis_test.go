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

package bookkeeping

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
)

func testGenesis() Genesis {
	return Genesis{
		SchemaID: "v1",
		Network:  "devnet",
		Round:    3,
		Allocation: []GenesisAllocation{
			{Address: basics.Address{1}, Comment: "faucet", Balance: basics.Units{Raw: 1000}},
			{Address: basics.Address{2}, Balance: basics.Units{Raw: 5}},
		},
	}
}

func TestGenesisID(t *testing.T) {
	t.Parallel()
	require.Equal(t, "devnet-v1", testGenesis().ID())
}

func TestGenesisSaveLoad(t *testing.T) {
	t.Parallel()

	g := testGenesis()
	path := filepath.Join(t.TempDir(), GenesisFilename)
	require.NoError(t, g.SaveToFile(path))

	loaded, err := LoadGenesisFromFile(path)
	require.NoError(t, err)
	require.Equal(t, g, loaded)
	require.Equal(t, g.Hash(), loaded.Hash())
}

func TestGenesisValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, testGenesis().Validate())

	g := testGenesis()
	g.Network = "dev-net"
	require.Error(t, g.Validate())

	g = testGenesis()
	g.SchemaID = ""
	require.Error(t, g.Validate())

	g = testGenesis()
	g.Allocation = append(g.Allocation, GenesisAllocation{Address: basics.Address{1}})
	require.Error(t, g.Validate())

	g = testGenesis()
	g.Allocation = append(g.Allocation, GenesisAllocation{Address: streams.EscrowAddress})
	require.Error(t, g.Validate())
}

func TestGenesisBalances(t *testing.T) {
	t.Parallel()

	balances, err := testGenesis().Balances()
	require.NoError(t, err)
	require.Equal(t, map[basics.Address]basics.Units{
		{1}: {Raw: 1000},
		{2}: {Raw: 5},
	}, balances)
}
