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

package sqlitedriver

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/algorand/go-streampay/util/db"
)

// schemaVersion is stored in the sqlite user_version pragma.
const schemaVersion = 2

var ledgerSchema = []string{
	`CREATE TABLE IF NOT EXISTS meta (
		id string primary key,
		genesis text NOT NULL,
		nextstream integer NOT NULL,
		rnd integer NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS accountbase (
		address blob primary key,
		data blob)`,
	`CREATE TABLE IF NOT EXISTS streams (
		id integer primary key,
		sender blob NOT NULL,
		recipient blob NOT NULL,
		data blob)`,
	`CREATE INDEX IF NOT EXISTS streams_sender_idx ON streams (sender)`,
	`CREATE INDEX IF NOT EXISTS streams_recipient_idx ON streams (recipient)`,
}

// txtailSchema was added in version 2.
var txtailSchema = []string{
	`CREATE TABLE IF NOT EXISTS txtail (
		txid blob primary key,
		lastvalid integer NOT NULL)`,
	`CREATE INDEX IF NOT EXISTS txtail_lastvalid_idx ON txtail (lastvalid)`,
}

const metaRowID = "ledger"

// ensureSchema creates the tables of a fresh database, upgrades older ones
// and rejects databases written by a newer schema.
func ensureSchema(ctx context.Context, tx *sqlx.Tx) error {
	version, err := db.GetUserVersion(ctx, tx)
	if err != nil {
		return err
	}
	switch {
	case version == schemaVersion:
		return nil
	case version > schemaVersion:
		return fmt.Errorf("sqlitedriver: database schema version %d is newer than supported version %d", version, schemaVersion)
	}

	var stmts []string
	if version == 0 {
		stmts = append(stmts, ledgerSchema...)
	}
	if version < 2 {
		stmts = append(stmts, txtailSchema...)
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	_, err = db.SetUserVersion(ctx, tx, schemaVersion)
	return err
}
