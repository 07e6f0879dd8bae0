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

package transactions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/protocol"
)

func TestSignedTxnVerify(t *testing.T) {
	t.Parallel()

	_, secrets := crypto.NewSignatureSecrets()
	_, other := crypto.NewSignatureSecrets()

	stxn := openTxn(addrOf(secrets)).Sign(secrets)
	require.NoError(t, stxn.Verify())
	require.Equal(t, stxn.Txn.ID(), stxn.ID())

	forged := openTxn(addrOf(secrets)).Sign(other)
	require.ErrorIs(t, forged.Verify(), ErrBadEnvelopeSignature)

	tampered := stxn
	tampered.Txn.Deposit.Raw++
	require.ErrorIs(t, tampered.Verify(), ErrBadEnvelopeSignature)

	unsigned := SignedTxn{Txn: stxn.Txn}
	require.ErrorIs(t, unsigned.Verify(), ErrBadEnvelopeSignature)
}

func TestSignedTxnWireFormats(t *testing.T) {
	t.Parallel()

	_, secrets := crypto.NewSignatureSecrets()
	stxn := openTxn(addrOf(secrets)).Sign(secrets)

	var fromMsgp SignedTxn
	require.NoError(t, protocol.Decode(stxn.Encode(), &fromMsgp))
	require.NoError(t, fromMsgp.Verify())

	var fromJSON SignedTxn
	require.NoError(t, protocol.DecodeJSON(protocol.EncodeJSON(&stxn), &fromJSON))
	require.NoError(t, fromJSON.Verify())
	require.Equal(t, stxn.ID(), fromJSON.ID())
}
