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
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	spec "github.com/algorand/go-streampay/daemon/streamd/api/spec/v1"
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/ledger/ledgercore"
	"github.com/algorand/go-streampay/logging"
)

func returnError(ctx echo.Context, code int, internal error, external string, logger logging.Logger) error {
	logger.Info(internal)
	return ctx.JSON(code, spec.ErrorResponse{Message: external})
}

func badRequest(ctx echo.Context, internal error, external string, log logging.Logger) error {
	return returnError(ctx, http.StatusBadRequest, internal, external, log)
}

func serviceUnavailable(ctx echo.Context, internal error, external string, log logging.Logger) error {
	return returnError(ctx, http.StatusServiceUnavailable, internal, external, log)
}

func internalError(ctx echo.Context, internal error, external string, log logging.Logger) error {
	return returnError(ctx, http.StatusInternalServerError, internal, external, log)
}

// StatusForKind maps a ledger rejection to the HTTP status reporting it.
func StatusForKind(kind ledgercore.ErrorKind) int {
	switch kind {
	case ledgercore.Unauthorized:
		return http.StatusForbidden
	case ledgercore.NotFound:
		return http.StatusNotFound
	case ledgercore.InvalidArgument:
		return http.StatusBadRequest
	case ledgercore.InsufficientFunds:
		return http.StatusPaymentRequired
	case ledgercore.InvalidSignature:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// ledgerError reports err as the ledger rejection it is, or as an internal
// failure when the ledger itself failed.
func ledgerError(ctx echo.Context, err error, log logging.Logger) error {
	var dup ledgercore.TransactionInLedgerError
	if errors.As(err, &dup) {
		return ctx.JSON(http.StatusConflict, spec.ErrorResponse{Message: dup.Error()})
	}
	kind, ok := ledgercore.KindOf(err)
	if !ok {
		return internalError(ctx, err, errFailedLookingUpLedger, log)
	}
	code := int(kind)
	return ctx.JSON(StatusForKind(kind), spec.ErrorResponse{
		Message: err.Error(),
		Kind:    kind.String(),
		Code:    &code,
	})
}

func parseStreamID(ctx echo.Context) (streams.StreamID, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	return streams.StreamID(id), err
}

func parseAddress(ctx echo.Context) (basics.Address, error) {
	return basics.UnmarshalChecksumAddress(ctx.Param("address"))
}
