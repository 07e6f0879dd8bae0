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

// A collection of utility functions and types to write the tests in this module.
package testsuite

import (
	"testing"

	"github.com/algorand/go-streampay/ledger/store/trackerdb"
)

type customT struct {
	db trackerdb.Store
	*testing.T
}

type genericTestEntry struct {
	name string
	f    func(*customT)
}

// list of tests to be run on each store implementation
var genericTests []genericTestEntry

// registerTest registers the given test with the suite
func registerTest(name string, f func(*customT)) {
	genericTests = append(genericTests, genericTestEntry{name, f})
}

// runGenericTestsWithDB runs a generic set of tests on the given database
func runGenericTestsWithDB(t *testing.T, dbFactory func(t *testing.T) trackerdb.Store) {
	for _, entry := range genericTests {
		entry := entry
		// run each test defined in the suite using the Golang subtest
		t.Run(entry.name, func(t *testing.T) {
			// instantiate a new db for each test
			db := dbFactory(t)
			defer db.Close()
			entry.f(&customT{db, t})
		})
	}
}
