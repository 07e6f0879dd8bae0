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

// Package leveldbdriver implements trackerdb.Store on goleveldb.
package leveldbdriver

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/algorand/go-deadlock"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
	"github.com/algorand/go-streampay/ledger/ledgercore"
	"github.com/algorand/go-streampay/ledger/store/trackerdb"
	"github.com/algorand/go-streampay/logging"
	"github.com/algorand/go-streampay/protocol"
)

type trackerLevelStore struct {
	db  *leveldb.DB
	log logging.Logger

	// writeMu serializes Initialize and Commit, which read before they write.
	writeMu deadlock.Mutex
}

// Open opens a leveldb ledger store in dbdir, or in memory when inMem is set.
func Open(dbdir string, inMem bool, log logging.Logger) (trackerdb.Store, error) {
	var (
		db  *leveldb.DB
		err error
	)
	opts := &opt.Options{ErrorIfMissing: false}
	if inMem {
		db, err = leveldb.Open(storage.NewMemStorage(), opts)
	} else {
		db, err = leveldb.OpenFile(dbdir, opts)
	}
	if err != nil {
		return nil, &trackerdb.ErrIoErr{InnerError: err}
	}

	s := &trackerLevelStore{db: db, log: log}
	if err := s.checkSchema(); err != nil {
		db.Close()
		return nil, err
	}
	log.With("path", dbdir).Debug("leveldbdriver: opened ledger store")
	return s, nil
}

func (s *trackerLevelStore) checkSchema() error {
	raw, err := s.db.Get([]byte(kvSchemaVersionKey), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return s.db.Put([]byte(kvSchemaVersionKey), bigEndianUint64(schemaVersion), &opt.WriteOptions{Sync: true})
	}
	if err != nil {
		return &trackerdb.ErrIoErr{InnerError: err}
	}
	switch v := binary.BigEndian.Uint64(raw); v {
	case schemaVersion:
		return nil
	case 1:
		return s.db.Put([]byte(kvSchemaVersionKey), bigEndianUint64(schemaVersion), &opt.WriteOptions{Sync: true})
	default:
		return fmt.Errorf("leveldbdriver: unsupported schema version %d", v)
	}
}

// getter is the read side shared by *leveldb.DB and *leveldb.Snapshot.
type getter interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
}

func get(g getter, key []byte) ([]byte, error) {
	v, err := g.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, trackerdb.ErrNotFound
	}
	if err != nil {
		return nil, &trackerdb.ErrIoErr{InnerError: err}
	}
	return v, nil
}

func (s *trackerLevelStore) LookupStream(ctx context.Context, id streams.StreamID) (st streams.Stream, err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	raw, err := get(s.db, streamKey(id))
	if err != nil {
		return
	}
	err = protocol.Decode(raw, &st)
	return
}

func (s *trackerLevelStore) LookupAccount(ctx context.Context, addr basics.Address) (bal basics.Units, err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	raw, err := get(s.db, accountKey(addr))
	if errors.Is(err, trackerdb.ErrNotFound) {
		return basics.Units{}, nil
	}
	if err != nil {
		return
	}
	err = protocol.Decode(raw, &bal)
	return
}

func (s *trackerLevelStore) LookupTxid(ctx context.Context, txid transactions.Txid) (basics.Round, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	raw, err := get(s.db, txidKey(txid))
	if err != nil {
		return 0, err
	}
	return basics.Round(binary.BigEndian.Uint64(raw)), nil
}

// pruneTxids adds to batch the deletion of every txid whose LastValid is
// below rnd.
func (s *trackerLevelStore) pruneTxids(batch *leveldb.Batch, rnd basics.Round) error {
	prefixLen := len(txExpiryPrefix(0))
	iter := s.db.NewIterator(&util.Range{Start: []byte(kvPrefixTxExpiry + "-"), Limit: txExpiryPrefix(rnd)}, nil)
	defer iter.Release()
	for iter.Next() {
		key := iter.Key()
		var txid transactions.Txid
		copy(txid[:], key[prefixLen:])
		batch.Delete(append([]byte(nil), key...))
		batch.Delete(txidKey(txid))
	}
	if err := iter.Error(); err != nil {
		return &trackerdb.ErrIoErr{InnerError: err}
	}
	return nil
}

func readMeta(g getter) (meta trackerdb.Meta, err error) {
	genesis, err := get(g, []byte(kvGenesisKey))
	if errors.Is(err, trackerdb.ErrNotFound) {
		return trackerdb.Meta{}, nil
	}
	if err != nil {
		return
	}
	meta.GenesisID = string(genesis)

	next, err := get(g, []byte(kvNextStreamKey))
	if err != nil {
		return
	}
	meta.NextStreamID = streams.StreamID(binary.BigEndian.Uint64(next))

	rnd, err := get(g, []byte(kvRoundKey))
	if err != nil {
		return
	}
	meta.Round = basics.Round(binary.BigEndian.Uint64(rnd))
	return
}

func (s *trackerLevelStore) Meta(ctx context.Context) (trackerdb.Meta, error) {
	if err := ctx.Err(); err != nil {
		return trackerdb.Meta{}, err
	}
	snap, err := s.db.GetSnapshot()
	if err != nil {
		return trackerdb.Meta{}, &trackerdb.ErrIoErr{InnerError: err}
	}
	defer snap.Release()
	return readMeta(snap)
}

func (s *trackerLevelStore) Initialize(ctx context.Context, genesisID string, round basics.Round, accounts map[basics.Address]basics.Units) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	meta, err := readMeta(s.db)
	if err != nil {
		return err
	}
	if meta.GenesisID != "" {
		if meta.GenesisID != genesisID {
			return &trackerdb.GenesisMismatchError{Stored: meta.GenesisID, Requested: genesisID}
		}
		return nil
	}

	batch := new(leveldb.Batch)
	for addr, bal := range accounts {
		batch.Put(accountKey(addr), protocol.Encode(&bal))
	}
	batch.Put([]byte(kvNextStreamKey), bigEndianUint64(0))
	batch.Put([]byte(kvRoundKey), bigEndianUint64(uint64(round)))
	batch.Put([]byte(kvGenesisKey), []byte(genesisID))
	return s.write(batch)
}

func (s *trackerLevelStore) Commit(ctx context.Context, delta ledgercore.StateDelta) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := get(s.db, []byte(kvGenesisKey)); err != nil {
		if errors.Is(err, trackerdb.ErrNotFound) {
			return trackerdb.ErrNotInitialized
		}
		return err
	}

	batch := new(leveldb.Batch)
	for addr, bal := range delta.Accounts {
		batch.Put(accountKey(addr), protocol.Encode(&bal))
	}
	for id, st := range delta.Streams {
		if id != st.ID {
			return fmt.Errorf("leveldbdriver: stream keyed %d carries id %d", id, st.ID)
		}
		batch.Put(streamKey(id), protocol.Encode(&st))
	}
	if err := s.pruneTxids(batch, delta.Round); err != nil {
		return err
	}
	for txid, lv := range delta.Txids {
		batch.Put(txidKey(txid), bigEndianUint64(uint64(lv)))
		batch.Put(txExpiryKey(lv, txid), nil)
	}
	batch.Put([]byte(kvNextStreamKey), bigEndianUint64(uint64(delta.NextStreamID)))
	batch.Put([]byte(kvRoundKey), bigEndianUint64(uint64(delta.Round)))
	s.log.Debugf("leveldbdriver: committing round %d: %d streams, %d accounts, %d txids", delta.Round, len(delta.Streams), len(delta.Accounts), len(delta.Txids))
	return s.write(batch)
}

func (s *trackerLevelStore) write(batch *leveldb.Batch) error {
	if err := s.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return &trackerdb.ErrIoErr{InnerError: err}
	}
	return nil
}

func (s *trackerLevelStore) Close() {
	s.db.Close()
}
