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
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDKey = "request-id"

// MakeRequestID tags every request with the caller's X-Request-ID, or a
// fresh uuid when the caller did not send one, and echoes it back.
func MakeRequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			rid := ctx.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" || len(rid) > 128 {
				rid = uuid.NewString()
			}
			ctx.Set(requestIDKey, rid)
			ctx.Response().Header().Set(echo.HeaderXRequestID, rid)
			return next(ctx)
		}
	}
}

// RequestID returns the id MakeRequestID assigned to the request.
func RequestID(ctx echo.Context) string {
	rid, _ := ctx.Get(requestIDKey).(string)
	return rid
}
