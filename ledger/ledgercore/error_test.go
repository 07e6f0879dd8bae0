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

package ledgercore

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-streampay/data/streams"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		kind ErrorKind
		name string
	}{
		{&UnauthorizedError{StreamID: 1, Role: "sender"}, Unauthorized, "UNAUTHORIZED"},
		{&StreamNotFoundError{StreamID: 1}, NotFound, "NOT_FOUND"},
		{MakeInvalidArgumentError("tf", streams.ErrInvertedTimeframe), InvalidArgument, "INVALID_ARGUMENT"},
		{&InsufficientFundsError{}, InsufficientFunds, "INSUFFICIENT_FUNDS"},
		{&InvalidSignatureError{StreamID: 2}, InvalidSignature, "ERR_INVALID_SIGNATURE"},
	}
	for _, c := range cases {
		kind, ok := KindOf(c.err)
		require.True(t, ok)
		require.Equal(t, c.kind, kind)
		require.Equal(t, c.name, kind.String())

		wrapped := fmt.Errorf("while executing: %w", c.err)
		kind, ok = KindOf(wrapped)
		require.True(t, ok)
		require.Equal(t, c.kind, kind)
	}

	_, ok := KindOf(io.EOF)
	require.False(t, ok)
	_, ok = KindOf(TransactionInLedgerError{})
	require.False(t, ok)
}

func TestErrorCodesStable(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, int(Unauthorized))
	require.Equal(t, 1, int(InvalidSignature))
	require.Equal(t, 3, int(NotFound))
	require.Equal(t, 4, int(InvalidArgument))
	require.Equal(t, 5, int(InsufficientFunds))
	require.Equal(t, "ErrorKind(9)", ErrorKind(9).String())
}

func TestInvalidArgumentReason(t *testing.T) {
	t.Parallel()

	err := MakeInvalidArgumentError("amt", errors.New("amount must be positive"))
	require.Equal(t, "invalid amt: amount must be positive", err.Error())
}

func TestParseErrorKind(t *testing.T) {
	t.Parallel()

	for _, k := range ErrorKinds {
		parsed, ok := ParseErrorKind(k.String())
		require.True(t, ok)
		require.Equal(t, k, parsed)
	}
	_, ok := ParseErrorKind("ErrorKind(9)")
	require.False(t, ok)
	_, ok = ParseErrorKind("")
	require.False(t, ok)
}
