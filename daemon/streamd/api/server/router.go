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

// Package server is the streamd REST API.
//
// Every route but /health and /metrics requires the API token in the
// X-Stream-API-Token header or as a bearer token.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/algorand/go-codec/codec"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/algorand/go-streampay/daemon/streamd/api/server/lib/middlewares"
	v1 "github.com/algorand/go-streampay/daemon/streamd/api/server/v1"
	spec "github.com/algorand/go-streampay/daemon/streamd/api/spec/v1"
	"github.com/algorand/go-streampay/logging"
	"github.com/algorand/go-streampay/protocol"
	"github.com/algorand/go-streampay/util/metrics"
)

const apiV1Tag = "/v1"

// codecSerializer renders responses with the same JSON codec the ledger
// types are tagged for.
type codecSerializer struct{}

func (codecSerializer) Serialize(ctx echo.Context, i interface{}, indent string) error {
	return codec.NewEncoder(ctx.Response(), protocol.JSONHandle).Encode(i)
}

func (codecSerializer) Deserialize(ctx echo.Context, i interface{}) error {
	return protocol.NewJSONDecoder(ctx.Request().Body).Decode(i)
}

// errorHandler writes every unhandled error as an ErrorResponse.
func errorHandler(log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		message := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
		} else {
			log.Warnf("unhandled error serving %s: %v", ctx.Request().RequestURI, err)
		}
		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(code)
		} else {
			err = ctx.JSON(code, spec.ErrorResponse{Message: message})
		}
		if err != nil {
			log.Warnf("failed writing error response: %v", err)
		}
	}
}

// registerHandlers registers the v1 routes to [e].
func registerHandlers(e *echo.Echo, handlers *v1.Handlers) {
	e.GET("/health", handlers.HealthCheck)

	g := e.Group(apiV1Tag)
	g.GET("/status", handlers.GetStatus)
	g.GET("/streams/latest", handlers.GetLatestStreamID)
	g.GET("/streams/:id", handlers.GetStream)
	g.GET("/streams/:id/balance/:address", handlers.GetStreamBalance)
	g.GET("/streams/:id/terms-hash", handlers.GetTermsHash)
	g.GET("/accounts/:address", handlers.GetAccount)
	g.POST("/transactions", handlers.SubmitTransaction)
}

// NewRouter builds and returns a new router with our REST handlers
// registered. An empty apiToken disables authentication. reg is served on
// /metrics and counts requests; nil disables both.
func NewRouter(logger logging.Logger, node v1.NodeInterface, shutdown <-chan struct{}, apiToken string, reg *metrics.Registry) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = codecSerializer{}
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middlewares.MakeRequestID())
	if reg != nil {
		e.Use(middlewares.MakeMetrics(reg))
	}
	e.Use(middlewares.MakeLogger(logger))
	e.Use(middlewares.MakeCORS(middlewares.TokenHeader))
	if apiToken != "" {
		e.Use(middlewares.MakeAuth(middlewares.TokenHeader, []string{apiToken}))
	}

	if reg != nil {
		e.GET("/metrics", echo.WrapHandler(reg.Handler()))
	}
	registerHandlers(e, &v1.Handlers{Node: node, Log: logger, Shutdown: shutdown})
	return e
}
