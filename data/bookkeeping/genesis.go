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

// Package bookkeeping holds the genesis description a ledger is bootstrapped from.
package bookkeeping

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/protocol"
)

// GenesisFilename is the name of the genesis file inside a data directory.
const GenesisFilename = "genesis.json"

// A Genesis object defines a stream ledger "universe": the initial external
// balances of the network and the round its clock starts at.
type Genesis struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// The SchemaID allows nodes to store data specific to a particular
	// universe (in case of upgrades at development or testing time).
	SchemaID string `codec:"id"`

	// Network identifies the network for which the ledger is valid.
	// Note the Network name should not include a '-', as we generate the
	// GenesisID from "<Network>-<SchemaID>".
	Network string `codec:"network"`

	// Round is the time step the ledger clock starts at.
	Round basics.Round `codec:"round"`

	// Allocation determines the initial external balances.
	Allocation []GenesisAllocation `codec:"alloc"`

	// Arbitrary genesis comment string - will be excluded from file if empty
	Comment string `codec:"comment"`
}

// A GenesisAllocation object represents an allocation of units to an
// address. Comment is purely informational.
type GenesisAllocation struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Address basics.Address `codec:"addr"`
	Comment string         `codec:"comment"`
	Balance basics.Units   `codec:"bal"`
}

// LoadGenesisFromFile attempts to load a Genesis structure from a (presumably) genesis.json file.
func LoadGenesisFromFile(genesisFile string) (genesis Genesis, err error) {
	genesisText, err := os.ReadFile(genesisFile)
	if err != nil {
		return
	}

	err = protocol.DecodeJSON(genesisText, &genesis)
	return
}

// SaveToFile writes the genesis as JSON.
func (genesis Genesis) SaveToFile(genesisFile string) error {
	return os.WriteFile(genesisFile, protocol.EncodeJSON(&genesis), 0644)
}

// ID is the effective Genesis identifier - the combination
// of the network and the ledger schema version
func (genesis Genesis) ID() string {
	return genesis.Network + "-" + genesis.SchemaID
}

// ToBeHashed impements the crypto.Hashable interface.
func (genesis Genesis) ToBeHashed() (protocol.HashID, []byte) {
	return protocol.Genesis, protocol.Encode(&genesis)
}

// Hash is the digest of the genesis, reported by nodes to identify their network.
func (genesis Genesis) Hash() crypto.Digest {
	return crypto.HashObj(genesis)
}

// Validate checks the naming rules of the genesis.
func (genesis Genesis) Validate() error {
	if genesis.Network == "" || genesis.SchemaID == "" {
		return errors.New("genesis must name its network and schema")
	}
	if strings.Contains(genesis.Network, "-") {
		return fmt.Errorf("genesis network %q must not contain '-'", genesis.Network)
	}
	_, err := genesis.Balances()
	return err
}

// Balances returns the initial external balance of every allocated address.
func (genesis Genesis) Balances() (map[basics.Address]basics.Units, error) {
	balances := make(map[basics.Address]basics.Units, len(genesis.Allocation))
	for _, alloc := range genesis.Allocation {
		if alloc.Address == streams.EscrowAddress {
			return nil, errors.New("genesis cannot allocate to the stream escrow address")
		}
		if _, dup := balances[alloc.Address]; dup {
			return nil, fmt.Errorf("genesis allocates to %v twice", alloc.Address)
		}
		balances[alloc.Address] = alloc.Balance
	}
	return balances, nil
}
