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

package middlewares

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/algorand/go-streampay/util/metrics"
)

// MakeMetrics counts served requests by route and status code. It must be
// installed outside the logger middleware, which writes errors.
func MakeMetrics(reg *metrics.Registry) echo.MiddlewareFunc {
	requests := metrics.MakeCounter(metrics.RestRequestsTotal, "route", "code")
	requests.Register(reg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			err := next(ctx)
			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			requests.Inc(map[string]string{
				"route": route,
				"code":  strconv.Itoa(ctx.Response().Status),
			})
			return err
		}
	}
}
