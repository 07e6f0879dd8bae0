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

// Package v1 defines models exposed by the streamd rest api
package v1

import (
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/ledger"
)

// StreamResponse is a stream record together with the amounts derived from
// it at Round.
// swagger:model StreamResponse
type StreamResponse struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Stream streams.Stream `codec:"stream"`
	Round  basics.Round   `codec:"round"`
	Vested basics.Units   `codec:"vested"`
	Owed   basics.Units   `codec:"owed"`
	Excess basics.Units   `codec:"excess"`
}

// BalanceResponse is the claim of one party on a stream.
// swagger:model BalanceResponse
type BalanceResponse struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	StreamID streams.StreamID `codec:"sid"`
	Address  basics.Address   `codec:"address"`
	Round    basics.Round     `codec:"round"`
	Balance  basics.Units     `codec:"balance"`
}

// LatestStreamResponse carries the id the next opened stream will get.
// swagger:model LatestStreamResponse
type LatestStreamResponse struct {
	StreamID streams.StreamID `codec:"latest-stream-id"`
}

// TermsHashResponse is the digest a counterparty signs to consent to new
// terms, and how much of the proposed window has already elapsed.
// swagger:model TermsHashResponse
type TermsHashResponse struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Hash       string       `codec:"hash"`
	Round      basics.Round `codec:"round"`
	BlockDelta uint64       `codec:"block-delta"`
}

// AccountResponse is the external balance of an address.
// swagger:model AccountResponse
type AccountResponse struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Address basics.Address `codec:"address"`
	Round   basics.Round   `codec:"round"`
	Amount  basics.Units   `codec:"amount"`
}

// TransactionResponse reports an executed transaction.
// swagger:model TransactionResponse
type TransactionResponse struct {
	TxID    string         `codec:"txid"`
	Receipt ledger.Receipt `codec:"receipt"`
}

// ErrorResponse is returned for every failed request. Kind and Code are set
// when the ledger rejected the operation. Code is always written because
// UNAUTHORIZED is code 0.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Message string `codec:"message"`
	Kind    string `codec:"kind,omitempty"`
	Code    *int   `codec:"code"`
}
