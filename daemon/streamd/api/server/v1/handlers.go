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
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	spec "github.com/algorand/go-streampay/daemon/streamd/api/spec/v1"
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
	"github.com/algorand/go-streampay/ledger"
	"github.com/algorand/go-streampay/logging"
	"github.com/algorand/go-streampay/node"
	"github.com/algorand/go-streampay/protocol"
)

// MaxTxnBytes bounds the body of a submitted transaction.
const MaxTxnBytes = 64 * 1024

// MsgpackContentType selects the msgpack decoder for submitted transactions.
const MsgpackContentType = "application/msgpack"

// NodeInterface is the node functionality the handlers rely on.
type NodeInterface interface {
	Status() node.StatusReport
	Ledger() *ledger.Ledger
	SubmitTxn(ctx context.Context, stxn transactions.SignedTxn) (ledger.Receipt, error)
}

// Handlers is an implementation of the v1 API routes.
type Handlers struct {
	Node     NodeInterface
	Log      logging.Logger
	Shutdown <-chan struct{}
}

// HealthCheck returns OK while the server is up.
// (GET /health)
func (v1 *Handlers) HealthCheck(ctx echo.Context) error {
	return ctx.NoContent(http.StatusOK)
}

// GetStatus gets the current node status.
// (GET /v1/status)
func (v1 *Handlers) GetStatus(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, v1.Node.Status())
}

// GetLatestStreamID returns the id the next opened stream will get.
// (GET /v1/streams/latest)
func (v1 *Handlers) GetLatestStreamID(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, spec.LatestStreamResponse{StreamID: v1.Node.Ledger().LatestStreamID()})
}

// GetStream returns a stream record.
// (GET /v1/streams/{id})
func (v1 *Handlers) GetStream(ctx echo.Context) error {
	id, err := parseStreamID(ctx)
	if err != nil {
		return badRequest(ctx, err, errFailedToParseStreamID, v1.Log)
	}
	l := v1.Node.Ledger()
	rnd := l.Round()
	s, err := l.GetStream(ctx.Request().Context(), id)
	if err != nil {
		return ledgerError(ctx, err, v1.Log)
	}
	return ctx.JSON(http.StatusOK, spec.StreamResponse{
		Stream: s,
		Round:  rnd,
		Vested: s.Vested(rnd),
		Owed:   s.Owed(rnd),
		Excess: s.Excess(),
	})
}

// GetStreamBalance returns the claim of an address on a stream.
// (GET /v1/streams/{id}/balance/{address})
func (v1 *Handlers) GetStreamBalance(ctx echo.Context) error {
	id, err := parseStreamID(ctx)
	if err != nil {
		return badRequest(ctx, err, errFailedToParseStreamID, v1.Log)
	}
	addr, err := parseAddress(ctx)
	if err != nil {
		return badRequest(ctx, err, errFailedToParseAddress, v1.Log)
	}
	l := v1.Node.Ledger()
	rnd := l.Round()
	balance, err := l.BalanceOf(ctx.Request().Context(), id, addr)
	if err != nil {
		return ledgerError(ctx, err, v1.Log)
	}
	return ctx.JSON(http.StatusOK, spec.BalanceResponse{
		StreamID: id,
		Address:  addr,
		Round:    rnd,
		Balance:  balance,
	})
}

// GetTermsHash returns the digest a counterparty signs to consent to the
// proposed terms.
// (GET /v1/streams/{id}/terms-hash?payment-per-block&start-block&stop-block)
func (v1 *Handlers) GetTermsHash(ctx echo.Context) error {
	id, err := parseStreamID(ctx)
	if err != nil {
		return badRequest(ctx, err, errFailedToParseStreamID, v1.Log)
	}
	var ppb, start, stop uint64
	err = echo.QueryParamsBinder(ctx).
		MustUint64("payment-per-block", &ppb).
		MustUint64("start-block", &start).
		MustUint64("stop-block", &stop).
		BindError()
	if err != nil {
		return badRequest(ctx, err, errFailedToParseTerms, v1.Log)
	}
	l := v1.Node.Ledger()
	tf := streams.MakeTimeframe(basics.Round(start), basics.Round(stop))
	return ctx.JSON(http.StatusOK, spec.TermsHashResponse{
		Hash:       l.HashTerms(id, basics.Units{Raw: ppb}, tf).String(),
		Round:      l.Round(),
		BlockDelta: l.BlockDelta(tf),
	})
}

// GetAccount returns the external balance of an address.
// (GET /v1/accounts/{address})
func (v1 *Handlers) GetAccount(ctx echo.Context) error {
	addr, err := parseAddress(ctx)
	if err != nil {
		return badRequest(ctx, err, errFailedToParseAddress, v1.Log)
	}
	l := v1.Node.Ledger()
	rnd := l.Round()
	amount, err := l.AccountBalance(ctx.Request().Context(), addr)
	if err != nil {
		return internalError(ctx, err, errFailedLookingUpLedger, v1.Log)
	}
	return ctx.JSON(http.StatusOK, spec.AccountResponse{Address: addr, Round: rnd, Amount: amount})
}

// SubmitTransaction decodes a signed transaction, msgpack or JSON by
// content type, and executes it.
// (POST /v1/transactions)
func (v1 *Handlers) SubmitTransaction(ctx echo.Context) error {
	select {
	case <-v1.Shutdown:
		return serviceUnavailable(ctx, errors.New(errServiceShuttingDown), errServiceShuttingDown, v1.Log)
	default:
	}

	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, MaxTxnBytes+1))
	if err != nil {
		return badRequest(ctx, err, errFailedToDecodeTransaction, v1.Log)
	}
	if len(body) == 0 {
		return badRequest(ctx, io.ErrUnexpectedEOF, errRESTPayloadZeroLength, v1.Log)
	}
	if len(body) > MaxTxnBytes {
		return badRequest(ctx, io.ErrShortBuffer, errRESTPayloadTooLarge, v1.Log)
	}

	var stxn transactions.SignedTxn
	if strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), MsgpackContentType) {
		err = protocol.Decode(body, &stxn)
	} else {
		err = protocol.DecodeJSON(body, &stxn)
	}
	if err != nil {
		return badRequest(ctx, err, errFailedToDecodeTransaction, v1.Log)
	}

	receipt, err := v1.Node.SubmitTxn(ctx.Request().Context(), stxn)
	if err != nil {
		return ledgerError(ctx, err, v1.Log)
	}
	return ctx.JSON(http.StatusOK, spec.TransactionResponse{
		TxID:    receipt.Txid.String(),
		Receipt: receipt,
	})
}
