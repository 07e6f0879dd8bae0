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
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var errSuccess = errors.New("unexpected success")
var invalidTokenError = echo.NewHTTPError(http.StatusUnauthorized, InvalidTokenMessage)
var e = echo.New()
var testAPIHeader = "API-Header-Whatever"

// success is the "next" handler, it is only called when auth allows the request to continue
func success(ctx echo.Context) error {
	return errSuccess
}

func TestAuth(t *testing.T) {
	tokens := []string{"token1", "token2"}

	tests := []struct {
		name           string
		path           string
		header         string
		token          string
		method         string
		expectResponse error
	}{
		{"Valid token (1)", "/v1/status", testAPIHeader, tokens[0], "GET", errSuccess},
		{"Valid token (2)", "/v1/status", testAPIHeader, tokens[1], "GET", errSuccess},
		{"Valid token Bearer Format (1)", "/v1/status", "Authorization", "Bearer " + tokens[0], "GET", errSuccess},
		{"Valid token Bearer Format (2)", "/v1/status", "Authorization", "bearer " + tokens[1], "POST", errSuccess},
		{"Invalid token", "/v1/status", testAPIHeader, "invalid_token", "GET", invalidTokenError},
		{"Invalid token Bearer Format", "/v1/status", "Authorization", "Bearer invalid_token", "GET", invalidTokenError},
		{"Missing token", "/v1/transactions", "", "", "POST", invalidTokenError},
		{"Invalid token + OPTIONS", "/v1/status", testAPIHeader, "invalid_token", "OPTIONS", errSuccess},
		{"Missing token on health", "/health", "", "", "GET", errSuccess},
		{"Missing token on metrics", "/metrics", "", "", "GET", errSuccess},
	}

	authFn := MakeAuth(testAPIHeader, tokens)
	handler := authFn(success)

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			if test.header != "" {
				req.Header.Set(test.header, test.token)
			}
			ctx := e.NewContext(req, nil)

			// There is no router to update the context based on the url, so do it manually.
			ctx.SetPath(test.path)

			err := handler(ctx)
			require.Equal(t, test.expectResponse, err, test.name)
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := MakeRequestID()(func(ctx echo.Context) error {
		seen = RequestID(ctx)
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/status", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Len(t, seen, 36)
	require.Equal(t, seen, rec.Header().Get(echo.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/v1/status", nil)
	req.Header.Set(echo.HeaderXRequestID, "caller-chosen")
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Equal(t, "caller-chosen", seen)
	require.Equal(t, "caller-chosen", rec.Header().Get(echo.HeaderXRequestID))
}
