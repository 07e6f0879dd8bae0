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
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenHeader defines the http header that includes the auth token
const TokenHeader = "X-Stream-API-Token"

// InvalidTokenMessage is the message set when an invalid / missing token is found.
const InvalidTokenMessage = "Invalid API Token"

// Routes that are served without a token.
var noneAuthRoutes = []string{"/health", "/metrics"}

// MakeAuth constructs the auth middleware function. Any of apiTokens is
// accepted in tokenHeader or as a bearer token.
func MakeAuth(tokenHeader string, apiTokens []string) echo.MiddlewareFunc {
	tokenBytes := make([][]byte, len(apiTokens))
	for i, token := range apiTokens {
		tokenBytes[i] = []byte(token)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			// OPTIONS responses never require auth
			if req.Method == http.MethodOptions {
				return next(ctx)
			}

			path := ctx.Path()
			for _, route := range noneAuthRoutes {
				if path == route {
					return next(ctx)
				}
			}

			providedToken := []byte(req.Header.Get(tokenHeader))
			if len(providedToken) == 0 {
				// Accept tokens provided in a bearer token format.
				authentication := strings.SplitN(req.Header.Get("Authorization"), " ", 2)
				if len(authentication) == 2 && strings.EqualFold("Bearer", authentication[0]) {
					providedToken = []byte(authentication[1])
				}
			}

			// Check the token in constant time
			for _, token := range tokenBytes {
				if subtle.ConstantTimeCompare(providedToken, token) == 1 {
					return next(ctx)
				}
			}

			return echo.NewHTTPError(http.StatusUnauthorized, InvalidTokenMessage)
		}
	}
}
