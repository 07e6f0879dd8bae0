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

package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDisposal(t *testing.T) {
	acc, err := MakeAccessor("disposal.db", false, true)
	require.NoError(t, err)
	err = acc.Atomic("create", func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, "create table Service (data blob)")
		return err
	})
	require.NoError(t, err)

	err = acc.Atomic("insert", func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, "insert or replace into Service (rowid, data) values (1, ?)", []byte{0, 1, 2})
		return err
	})
	require.NoError(t, err)
	acc.Close()

	acc, err = MakeAccessor("disposal.db", false, true)
	require.NoError(t, err)
	defer acc.Close()
	err = acc.Atomic("count", func(ctx context.Context, tx *sqlx.Tx) error {
		var nrows int
		if tx.GetContext(ctx, &nrows, "select count(*) from Service") == nil {
			return errors.New("table `Service` presents while it should not")
		}
		return nil
	})
	require.NoError(t, err)
}

func TestAtomicRollback(t *testing.T) {
	acc, err := MakeAccessor(filepath.Join(t.TempDir(), "rollback.db"), false, false)
	require.NoError(t, err)
	defer acc.Close()

	require.NoError(t, acc.Atomic("create", func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, "create table kv (k integer primary key, v integer)")
		return err
	}))

	boom := errors.New("boom")
	err = acc.Atomic("partial", func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "insert into kv (k, v) values (1, 1)"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = acc.Atomic("panics", func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "insert into kv (k, v) values (2, 2)"); err != nil {
			return err
		}
		panic(boom)
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, acc.Atomic("count", func(ctx context.Context, tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &n, "select count(*) from kv")
	}))
	require.Zero(t, n)
}

func TestRetryStopsOnSuccess(t *testing.T) {
	calls := 0
	err := Retry(func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	boom := errors.New("not retried")
	calls = 0
	require.ErrorIs(t, Retry(func() error {
		calls++
		return boom
	}), boom)
	require.Equal(t, 1, calls)
}

func TestURI(t *testing.T) {
	require.Equal(t, "file:x.db?_busy_timeout=1000&_synchronous=full&_txlock=immediate", URI("x.db", false, false))
	require.Equal(t, "file:x.db?_busy_timeout=1000&_synchronous=full&mode=memory&cache=shared", URI("x.db", true, true))
}
