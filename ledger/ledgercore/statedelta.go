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
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
)

// Transfer records one movement of funds performed by an operation.
type Transfer struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	From   basics.Address `codec:"from"`
	To     basics.Address `codec:"to"`
	Amount basics.Units   `codec:"amt"`
}

// StateDelta describes the changes made by one operation. Stores apply a
// delta atomically: either every change is persisted or none is.
type StateDelta struct {
	// Streams holds the new version of every stream written.
	Streams map[streams.StreamID]streams.Stream

	// Accounts holds the new external balance of every account touched.
	Accounts map[basics.Address]basics.Units

	// NextStreamID is the id counter after the operation.
	NextStreamID streams.StreamID

	// Transfers lists the fund movements, in the order performed.
	Transfers []Transfer

	// Txids maps every envelope executed by the operation to its LastValid
	// round. Stores keep them until the ledger passes that round.
	Txids map[transactions.Txid]basics.Round

	// Round the operation was evaluated at.
	Round basics.Round
}

// MakeStateDelta creates a new, empty delta.
func MakeStateDelta(round basics.Round, nextID streams.StreamID) StateDelta {
	return StateDelta{
		Streams:      make(map[streams.StreamID]streams.Stream),
		Accounts:     make(map[basics.Address]basics.Units),
		Txids:        make(map[transactions.Txid]basics.Round),
		NextStreamID: nextID,
		Round:        round,
	}
}

// IsEmpty reports whether the delta changes nothing.
func (sd StateDelta) IsEmpty() bool {
	return len(sd.Streams) == 0 && len(sd.Accounts) == 0 && len(sd.Transfers) == 0 && len(sd.Txids) == 0
}
