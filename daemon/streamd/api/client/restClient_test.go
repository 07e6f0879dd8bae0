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

package client

import (
	"testing"

	"github.com/stretchr/testify/require"

	spec "github.com/algorand/go-streampay/daemon/streamd/api/spec/v1"
	"github.com/algorand/go-streampay/ledger/ledgercore"
)

func TestResponseKind(t *testing.T) {
	zero := 0
	five := 5
	cases := []struct {
		resp spec.ErrorResponse
		kind ledgercore.ErrorKind
		ok   bool
	}{
		{spec.ErrorResponse{Kind: "UNAUTHORIZED", Code: &zero}, ledgercore.Unauthorized, true},
		{spec.ErrorResponse{Kind: "UNAUTHORIZED"}, ledgercore.Unauthorized, true},
		{spec.ErrorResponse{Code: &five}, ledgercore.InsufficientFunds, true},
		{spec.ErrorResponse{Kind: "NOT_FOUND"}, ledgercore.NotFound, true},
		{spec.ErrorResponse{Message: "no kind"}, 0, false},
		{spec.ErrorResponse{Kind: "SOMETHING_ELSE"}, 0, false},
	}
	for _, c := range cases {
		kind, ok := responseKind(c.resp)
		require.Equal(t, c.ok, ok, c.resp)
		if c.ok {
			require.Equal(t, c.kind, kind)
		}
	}
}
