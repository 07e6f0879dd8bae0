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

// Package memdriver implements trackerdb.Store in process memory. Nothing
// survives Close; it backs tests and throwaway nodes.
package memdriver

import (
	"context"
	"fmt"

	"github.com/algorand/go-deadlock"

	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
	"github.com/algorand/go-streampay/ledger/ledgercore"
	"github.com/algorand/go-streampay/ledger/store/trackerdb"
)

type trackerMemStore struct {
	mu       deadlock.RWMutex
	meta     trackerdb.Meta
	accounts map[basics.Address]basics.Units
	streams  map[streams.StreamID]streams.Stream
	txids    map[transactions.Txid]basics.Round
}

// Open returns an empty in-memory store.
func Open() trackerdb.Store {
	return &trackerMemStore{
		accounts: make(map[basics.Address]basics.Units),
		streams:  make(map[streams.StreamID]streams.Stream),
		txids:    make(map[transactions.Txid]basics.Round),
	}
}

func (s *trackerMemStore) LookupStream(ctx context.Context, id streams.StreamID) (streams.Stream, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.streams[id]
	if !ok {
		return streams.Stream{}, trackerdb.ErrNotFound
	}
	return st, nil
}

func (s *trackerMemStore) LookupAccount(ctx context.Context, addr basics.Address) (basics.Units, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts[addr], nil
}

func (s *trackerMemStore) LookupTxid(ctx context.Context, txid transactions.Txid) (basics.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lv, ok := s.txids[txid]
	if !ok {
		return 0, trackerdb.ErrNotFound
	}
	return lv, nil
}

func (s *trackerMemStore) Meta(ctx context.Context) (trackerdb.Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta, nil
}

func (s *trackerMemStore) Initialize(ctx context.Context, genesisID string, round basics.Round, accounts map[basics.Address]basics.Units) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meta.GenesisID != "" {
		if s.meta.GenesisID != genesisID {
			return &trackerdb.GenesisMismatchError{Stored: s.meta.GenesisID, Requested: genesisID}
		}
		return nil
	}
	for addr, bal := range accounts {
		s.accounts[addr] = bal
	}
	s.meta = trackerdb.Meta{GenesisID: genesisID, Round: round}
	return nil
}

func (s *trackerMemStore) Commit(ctx context.Context, delta ledgercore.StateDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meta.GenesisID == "" {
		return trackerdb.ErrNotInitialized
	}
	for id, st := range delta.Streams {
		if id != st.ID {
			return fmt.Errorf("memdriver: stream keyed %d carries id %d", id, st.ID)
		}
	}
	for id, st := range delta.Streams {
		s.streams[id] = st
	}
	for addr, bal := range delta.Accounts {
		s.accounts[addr] = bal
	}
	for txid, lv := range s.txids {
		if lv < delta.Round {
			delete(s.txids, txid)
		}
	}
	for txid, lv := range delta.Txids {
		s.txids[txid] = lv
	}
	s.meta.NextStreamID = delta.NextStreamID
	s.meta.Round = delta.Round
	return nil
}

func (s *trackerMemStore) Close() {}
