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

// Package store selects and opens the configured ledger store backend.
package store

import (
	"fmt"
	"path/filepath"

	"github.com/algorand/go-streampay/ledger/store/trackerdb"
	"github.com/algorand/go-streampay/ledger/store/trackerdb/leveldbdriver"
	"github.com/algorand/go-streampay/ledger/store/trackerdb/memdriver"
	"github.com/algorand/go-streampay/ledger/store/trackerdb/sqlitedriver"
	"github.com/algorand/go-streampay/logging"
)

// Backend names accepted by Open.
const (
	BackendSQLite  = "sqlite"
	BackendLevelDB = "leveldb"
	BackendMemory  = "memory"
)

const (
	sqliteFilename = "ledger.sqlite"
	leveldbDirname = "ledger.leveldb"
)

// Backends lists the supported backend names.
var Backends = []string{BackendSQLite, BackendLevelDB, BackendMemory}

// Open opens the store of the given backend inside dataDir.
func Open(backend string, dataDir string, log logging.Logger) (trackerdb.Store, error) {
	switch backend {
	case BackendSQLite:
		return sqlitedriver.Open(filepath.Join(dataDir, sqliteFilename), false, log)
	case BackendLevelDB:
		return leveldbdriver.Open(filepath.Join(dataDir, leveldbDirname), false, log)
	case BackendMemory:
		return memdriver.Open(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", backend)
}
