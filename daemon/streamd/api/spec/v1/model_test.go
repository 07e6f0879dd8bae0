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

package v1

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-streampay/ledger/ledgercore"
	"github.com/algorand/go-streampay/protocol"
)

func TestErrorResponseKeepsZeroCode(t *testing.T) {
	code := int(ledgercore.Unauthorized)
	enc := string(protocol.EncodeJSON(ErrorResponse{Message: "m", Kind: ledgercore.Unauthorized.String(), Code: &code}))
	require.Contains(t, enc, `"code": 0`)
	require.Contains(t, enc, `"kind": "UNAUTHORIZED"`)

	var decoded ErrorResponse
	require.NoError(t, protocol.DecodeJSON([]byte(enc), &decoded))
	require.NotNil(t, decoded.Code)
	require.Equal(t, 0, *decoded.Code)
}

func TestErrorResponseWithoutKind(t *testing.T) {
	enc := protocol.EncodeJSON(ErrorResponse{Message: "bad request"})
	require.NotContains(t, string(enc), `"kind"`)

	var decoded ErrorResponse
	require.NoError(t, protocol.DecodeJSON(enc, &decoded))
	require.Nil(t, decoded.Code)
	require.Equal(t, "bad request", decoded.Message)
}
