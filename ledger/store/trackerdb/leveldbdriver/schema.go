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

package leveldbdriver

import (
	"encoding/binary"

	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
)

const (
	kvPrefixStream     = "stream"
	kvPrefixAccount    = "account"
	kvPrefixTxid       = "txid"
	kvPrefixTxExpiry   = "txexp"
	kvGenesisKey       = "global_genesis"
	kvNextStreamKey    = "global_next_stream"
	kvRoundKey         = "global_round"
	kvSchemaVersionKey = "global_schema_version"
)

// Version 2 added the txid keys. Version 1 stores upgrade in place.
const schemaVersion = 2

// return the big-endian binary encoding of a uint64
func bigEndianUint64(v uint64) []byte {
	ret := make([]byte, 8)
	binary.BigEndian.PutUint64(ret, v)
	return ret
}

// streamKey: prefix + 8-byte big-endian id, so streams iterate in id order
func streamKey(id streams.StreamID) []byte {
	ret := []byte(kvPrefixStream)
	ret = append(ret, "-"...)
	ret = append(ret, bigEndianUint64(uint64(id))...)
	return ret
}

// accountKey: prefix + 32-byte address
func accountKey(address basics.Address) []byte {
	ret := []byte(kvPrefixAccount)
	ret = append(ret, "-"...)
	ret = append(ret, address[:]...)
	return ret
}

// txidKey: prefix + 32-byte txid, value is the 8-byte big-endian LastValid
func txidKey(txid transactions.Txid) []byte {
	ret := []byte(kvPrefixTxid)
	ret = append(ret, "-"...)
	ret = append(ret, txid[:]...)
	return ret
}

// txExpiryPrefix: prefix + 8-byte big-endian round. Every expiry key of a
// txid whose LastValid is below rnd sorts before txExpiryPrefix(rnd).
func txExpiryPrefix(rnd basics.Round) []byte {
	ret := []byte(kvPrefixTxExpiry)
	ret = append(ret, "-"...)
	ret = append(ret, bigEndianUint64(uint64(rnd))...)
	return ret
}

// txExpiryKey: txExpiryPrefix(lastValid) + 32-byte txid, so pruning walks
// txids in LastValid order
func txExpiryKey(lastValid basics.Round, txid transactions.Txid) []byte {
	return append(txExpiryPrefix(lastValid), txid[:]...)
}
