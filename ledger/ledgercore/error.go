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

	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
)

// ErrorKind classifies the outcome of a rejected ledger operation.
// The numeric codes are stable and are reported by the REST API.
type ErrorKind int

const (
	// Unauthorized means the caller lacks the role the operation requires.
	Unauthorized ErrorKind = 0
	// InvalidSignature means the counterparty signature over new terms did not verify.
	InvalidSignature ErrorKind = 1
	// NotFound means the stream id is unknown.
	NotFound ErrorKind = 3
	// InvalidArgument means a malformed timeframe, amount or rate.
	InvalidArgument ErrorKind = 4
	// InsufficientFunds means the underlying transfer could not be made.
	InsufficientFunds ErrorKind = 5
)

// String returns the canonical name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case Unauthorized:
		return "UNAUTHORIZED"
	case InvalidSignature:
		return "ERR_INVALID_SIGNATURE"
	case NotFound:
		return "NOT_FOUND"
	case InvalidArgument:
		return "INVALID_ARGUMENT"
	case InsufficientFunds:
		return "INSUFFICIENT_FUNDS"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ErrorKinds lists every kind a rejection can have.
var ErrorKinds = []ErrorKind{Unauthorized, InvalidSignature, NotFound, InvalidArgument, InsufficientFunds}

// ParseErrorKind returns the kind whose String() is name.
func ParseErrorKind(name string) (ErrorKind, bool) {
	for _, k := range ErrorKinds {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// KindedError is implemented by every error the ledger returns for a
// rejected operation.
type KindedError interface {
	error
	Kind() ErrorKind
}

// KindOf reports the kind of a rejection. ok is false for errors that are
// not rejections, such as storage failures.
func KindOf(err error) (kind ErrorKind, ok bool) {
	var ke KindedError
	if errors.As(err, &ke) {
		return ke.Kind(), true
	}
	return 0, false
}

// UnauthorizedError is returned when the caller does not hold Role on the stream.
type UnauthorizedError struct {
	StreamID streams.StreamID
	Caller   basics.Address
	Role     string
}

// Error satisfies builtin interface `error`
func (err *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s is not the %s of stream %d", err.Caller, err.Role, err.StreamID)
}

// Kind implements KindedError.
func (err *UnauthorizedError) Kind() ErrorKind { return Unauthorized }

// StreamNotFoundError is returned for an unknown stream id.
type StreamNotFoundError struct {
	StreamID streams.StreamID
}

// Error satisfies builtin interface `error`
func (err *StreamNotFoundError) Error() string {
	return fmt.Sprintf("stream %d not found", err.StreamID)
}

// Kind implements KindedError.
func (err *StreamNotFoundError) Kind() ErrorKind { return NotFound }

// InvalidArgumentError is returned for arguments that can never describe a
// valid operation.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

// MakeInvalidArgumentError wraps a validation failure of field.
func MakeInvalidArgumentError(field string, cause error) *InvalidArgumentError {
	return &InvalidArgumentError{Field: field, Reason: cause.Error()}
}

// Error satisfies builtin interface `error`
func (err *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", err.Field, err.Reason)
}

// Kind implements KindedError.
func (err *InvalidArgumentError) Kind() ErrorKind { return InvalidArgument }

// InsufficientFundsError is returned when Address cannot cover a transfer.
type InsufficientFundsError struct {
	Address basics.Address
	Balance basics.Units
	Needed  basics.Units
}

// Error satisfies builtin interface `error`
func (err *InsufficientFundsError) Error() string {
	return fmt.Sprintf("account %s balance %d below transfer amount %d", err.Address, err.Balance.Raw, err.Needed.Raw)
}

// Kind implements KindedError.
func (err *InsufficientFundsError) Kind() ErrorKind { return InsufficientFunds }

// InvalidSignatureError is returned when Signer's signature over the proposed
// terms of a stream does not verify.
type InvalidSignatureError struct {
	StreamID streams.StreamID
	Signer   basics.Address
}

// Error satisfies builtin interface `error`
func (err *InvalidSignatureError) Error() string {
	return fmt.Sprintf("signature by %s over new terms of stream %d does not verify", err.Signer, err.StreamID)
}

// Kind implements KindedError.
func (err *InvalidSignatureError) Kind() ErrorKind { return InvalidSignature }

// TransactionInLedgerError is returned when a transaction cannot be added because it has already been done
type TransactionInLedgerError struct {
	Txid transactions.Txid
}

// Error satisfies builtin interface `error`
func (tile TransactionInLedgerError) Error() string {
	return fmt.Sprintf("transaction already in ledger: %v", tile.Txid)
}
