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

package protocol

// TxType is the type of the operation carried by a transaction envelope.
type TxType string

// These are the possible operations a transaction can request from the ledger.
const (
	// OpenStreamTx creates a new stream and locks the initial deposit
	OpenStreamTx TxType = "open"

	// RefuelStreamTx adds funds to an existing stream
	RefuelStreamTx TxType = "refuel"

	// WithdrawStreamTx pays the vested, not yet withdrawn amount to the recipient
	WithdrawStreamTx TxType = "withdraw"

	// RefundStreamTx returns the never-vesting excess to the sender
	RefundStreamTx TxType = "refund"

	// UpdateStreamTx replaces the rate and timeframe with counterparty consent
	UpdateStreamTx TxType = "update"

	// UnknownTx signals an error
	UnknownTx TxType = "unknown"
)

// TxnTypes lists every operation type the ledger accepts.
var TxnTypes = []TxType{OpenStreamTx, RefuelStreamTx, WithdrawStreamTx, RefundStreamTx, UpdateStreamTx}

// Known returns true for every type listed in TxnTypes.
func (t TxType) Known() bool {
	for _, known := range TxnTypes {
		if t == known {
			return true
		}
	}
	return false
}
