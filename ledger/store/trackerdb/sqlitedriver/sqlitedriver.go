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

// Package sqlitedriver implements trackerdb.Store on sqlite.
package sqlitedriver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"

	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
	"github.com/algorand/go-streampay/ledger/ledgercore"
	"github.com/algorand/go-streampay/ledger/store/trackerdb"
	"github.com/algorand/go-streampay/logging"
	"github.com/algorand/go-streampay/protocol"
	"github.com/algorand/go-streampay/util/db"
)

type trackerSQLStore struct {
	acc db.Accessor
	log logging.Logger
}

type metaRow struct {
	Genesis    string `db:"genesis"`
	NextStream int64  `db:"nextstream"`
	Round      int64  `db:"rnd"`
}

type streamRow struct {
	ID        int64  `db:"id"`
	Sender    []byte `db:"sender"`
	Recipient []byte `db:"recipient"`
	Data      []byte `db:"data"`
}

type accountRow struct {
	Address []byte `db:"address"`
	Data    []byte `db:"data"`
}

// Open opens (creating if needed) a sqlite ledger store at dbPath.
func Open(dbPath string, inMem bool, log logging.Logger) (trackerdb.Store, error) {
	acc, err := db.MakeAccessor(dbPath, false, inMem)
	if err != nil {
		return nil, &trackerdb.ErrIoErr{InnerError: err}
	}
	err = acc.Atomic("ensureSchema", ensureSchema)
	if err != nil {
		acc.Close()
		return nil, err
	}
	log.With("path", dbPath).Debug("sqlitedriver: opened ledger store")
	return &trackerSQLStore{acc: acc, log: log}, nil
}

func (s *trackerSQLStore) LookupStream(ctx context.Context, id streams.StreamID) (st streams.Stream, err error) {
	err = s.acc.AtomicContext(ctx, "LookupStream", func(ctx context.Context, tx *sqlx.Tx) error {
		var data []byte
		err := tx.GetContext(ctx, &data, "SELECT data FROM streams WHERE id = ?", int64(id))
		if errors.Is(err, sql.ErrNoRows) {
			return trackerdb.ErrNotFound
		}
		if err != nil {
			return err
		}
		return protocol.Decode(data, &st)
	})
	return
}

func (s *trackerSQLStore) LookupAccount(ctx context.Context, addr basics.Address) (bal basics.Units, err error) {
	err = s.acc.AtomicContext(ctx, "LookupAccount", func(ctx context.Context, tx *sqlx.Tx) error {
		var data []byte
		err := tx.GetContext(ctx, &data, "SELECT data FROM accountbase WHERE address = ?", addr[:])
		if errors.Is(err, sql.ErrNoRows) {
			bal = basics.Units{}
			return nil
		}
		if err != nil {
			return err
		}
		return protocol.Decode(data, &bal)
	})
	return
}

// sqlRound stores a round in an integer column. Rounds past MaxInt64 are
// clamped; they sort after every reachable round either way.
func sqlRound(rnd basics.Round) int64 {
	if uint64(rnd) > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(rnd)
}

func (s *trackerSQLStore) LookupTxid(ctx context.Context, txid transactions.Txid) (lv basics.Round, err error) {
	err = s.acc.AtomicContext(ctx, "LookupTxid", func(ctx context.Context, tx *sqlx.Tx) error {
		var lastValid int64
		err := tx.GetContext(ctx, &lastValid, "SELECT lastvalid FROM txtail WHERE txid = ?", txid[:])
		if errors.Is(err, sql.ErrNoRows) {
			return trackerdb.ErrNotFound
		}
		if err != nil {
			return err
		}
		lv = basics.Round(uint64(lastValid))
		return nil
	})
	return
}

func readMeta(ctx context.Context, tx *sqlx.Tx) (trackerdb.Meta, bool, error) {
	var row metaRow
	err := tx.GetContext(ctx, &row, "SELECT genesis, nextstream, rnd FROM meta WHERE id = ?", metaRowID)
	if errors.Is(err, sql.ErrNoRows) {
		return trackerdb.Meta{}, false, nil
	}
	if err != nil {
		return trackerdb.Meta{}, false, err
	}
	return trackerdb.Meta{
		GenesisID:    row.Genesis,
		NextStreamID: streams.StreamID(row.NextStream),
		Round:        basics.Round(uint64(row.Round)),
	}, true, nil
}

func (s *trackerSQLStore) Meta(ctx context.Context) (meta trackerdb.Meta, err error) {
	err = s.acc.AtomicContext(ctx, "Meta", func(ctx context.Context, tx *sqlx.Tx) (err error) {
		meta, _, err = readMeta(ctx, tx)
		return
	})
	return
}

func putAccount(ctx context.Context, tx *sqlx.Tx, addr basics.Address, bal basics.Units) error {
	_, err := tx.NamedExecContext(ctx,
		"INSERT OR REPLACE INTO accountbase (address, data) VALUES (:address, :data)",
		accountRow{Address: addr[:], Data: protocol.Encode(&bal)})
	return err
}

func (s *trackerSQLStore) Initialize(ctx context.Context, genesisID string, round basics.Round, accounts map[basics.Address]basics.Units) error {
	return s.acc.AtomicContext(ctx, "Initialize", func(ctx context.Context, tx *sqlx.Tx) error {
		meta, ok, err := readMeta(ctx, tx)
		if err != nil {
			return err
		}
		if ok {
			if meta.GenesisID != genesisID {
				return &trackerdb.GenesisMismatchError{Stored: meta.GenesisID, Requested: genesisID}
			}
			return nil
		}

		for addr, bal := range accounts {
			if err := putAccount(ctx, tx, addr, bal); err != nil {
				return err
			}
		}
		_, err = tx.NamedExecContext(ctx,
			"INSERT INTO meta (id, genesis, nextstream, rnd) VALUES (:id, :genesis, :nextstream, :rnd)",
			map[string]interface{}{"id": metaRowID, "genesis": genesisID, "nextstream": 0, "rnd": int64(round)})
		return err
	})
}

func (s *trackerSQLStore) Commit(ctx context.Context, delta ledgercore.StateDelta) error {
	return s.acc.AtomicContext(ctx, "Commit", func(ctx context.Context, tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, "UPDATE meta SET nextstream = ?, rnd = ? WHERE id = ?",
			int64(delta.NextStreamID), int64(delta.Round), metaRowID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n != 1 {
			return trackerdb.ErrNotInitialized
		}

		for addr, bal := range delta.Accounts {
			if err := putAccount(ctx, tx, addr, bal); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM txtail WHERE lastvalid < ?", sqlRound(delta.Round)); err != nil {
			return err
		}
		for txid, lv := range delta.Txids {
			_, err := tx.ExecContext(ctx, "INSERT INTO txtail (txid, lastvalid) VALUES (?, ?)", txid[:], sqlRound(lv))
			if err != nil {
				return err
			}
		}
		s.log.Debugf("sqlitedriver: committing round %d: %d streams, %d accounts, %d txids", delta.Round, len(delta.Streams), len(delta.Accounts), len(delta.Txids))
		for id, st := range delta.Streams {
			if id != st.ID {
				return fmt.Errorf("sqlitedriver: stream keyed %d carries id %d", id, st.ID)
			}
			_, err := tx.NamedExecContext(ctx,
				"INSERT OR REPLACE INTO streams (id, sender, recipient, data) VALUES (:id, :sender, :recipient, :data)",
				streamRow{ID: int64(id), Sender: st.Sender[:], Recipient: st.Recipient[:], Data: protocol.Encode(&st)})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *trackerSQLStore) Close() {
	s.acc.Close()
}
