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

// Package trackerdb defines the persistence interface of the stream ledger.
// Drivers live in subpackages; every driver must pass the shared testsuite.
package trackerdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
	"github.com/algorand/go-streampay/ledger/ledgercore"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("trackerdb: not found")

// ErrNotInitialized is returned by Commit before Initialize.
var ErrNotInitialized = errors.New("trackerdb: store not initialized")

// ErrIoErr is returned when a Disk/IO error is encountered
type ErrIoErr struct {
	InnerError error
}

func (e *ErrIoErr) Error() string {
	return fmt.Sprintf("trackerdb: io error: %v", e.InnerError)
}

func (e *ErrIoErr) Unwrap() error {
	return e.InnerError
}

// GenesisMismatchError is returned when a store initialized for one network
// is opened for another.
type GenesisMismatchError struct {
	Stored    string
	Requested string
}

func (e *GenesisMismatchError) Error() string {
	return fmt.Sprintf("trackerdb: store belongs to network %q, not %q", e.Stored, e.Requested)
}

// Meta holds the ledger-wide values persisted next to the records.
type Meta struct {
	// GenesisID names the network the store was initialized for. It is
	// empty for a fresh store.
	GenesisID string

	// NextStreamID is the id the next opened stream will receive.
	NextStreamID streams.StreamID

	// Round is the round of the last committed delta.
	Round basics.Round
}

// Reader is the read interface of a store.
type Reader interface {
	// LookupStream returns ErrNotFound for an unknown id.
	LookupStream(ctx context.Context, id streams.StreamID) (streams.Stream, error)

	// LookupAccount returns the external balance of addr, zero if it never held funds.
	LookupAccount(ctx context.Context, addr basics.Address) (basics.Units, error)

	// LookupTxid returns the LastValid round of a committed envelope, or
	// ErrNotFound when the envelope was never executed or has been pruned.
	LookupTxid(ctx context.Context, txid transactions.Txid) (basics.Round, error)

	Meta(ctx context.Context) (Meta, error)
}

// Writer is the write interface of a store.
type Writer interface {
	// Initialize seeds a fresh store with genesis balances. Initializing an
	// already-initialized store with the same genesis id is a no-op.
	Initialize(ctx context.Context, genesisID string, round basics.Round, accounts map[basics.Address]basics.Units) error

	// Commit applies a delta atomically. It also forgets every txid whose
	// LastValid is below delta.Round.
	Commit(ctx context.Context, delta ledgercore.StateDelta) error
}

// Store is a persistent ledger store.
type Store interface {
	Reader
	Writer
	Close()
}
