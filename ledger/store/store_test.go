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

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-streampay/logging"
)

func TestOpenBackends(t *testing.T) {
	for _, backend := range Backends {
		backend := backend
		t.Run(backend, func(t *testing.T) {
			s, err := Open(backend, t.TempDir(), logging.TestingLog(t))
			require.NoError(t, err)
			defer s.Close()

			meta, err := s.Meta(context.Background())
			require.NoError(t, err)
			require.Empty(t, meta.GenesisID)
		})
	}

	_, err := Open("cassandra", t.TempDir(), logging.TestingLog(t))
	require.Error(t, err)
}
