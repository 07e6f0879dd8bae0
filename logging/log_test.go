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

package logging

import (
	"bytes"
	"encoding/json"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

/*
Since most of the functions are pure wrappers, we don't test them and trust the logrus testing coverage.

Things to test -

TestFileOutputNewLogger -- Tests the input change to Buffer works for a new Logger
TestSetLevelNewLogger -- Tests that a new logger starts at Info
TestErrorCarriesCallerAndStack -- Tests that Error tags the caller, not the wrapper
TestWithFieldsNewLogger - Test functionality on a new Logger
TestSetJSONFormatter - Tests that the output results in JSON Format
*/

func isJSON(s string) bool {
	var js map[string]interface{}
	return json.Unmarshal([]byte(s), &js) == nil
}

func TestFileOutputNewLogger(t *testing.T) {
	a := require.New(t)

	var bufNewLogger bytes.Buffer
	nl := NewLogger()
	nl.SetOutput(&bufNewLogger)

	nl.Info("Should show up in New logger but not in BaseLogger")
	a.Contains(bufNewLogger.String(), "Should show up in New logger but not in BaseLogger")
}

func TestSetLevel(t *testing.T) {
	nl := NewLogger()
	require.True(t, nl.IsLevelEnabled(Info))
	require.False(t, nl.IsLevelEnabled(Debug))
	nl.SetLevel(Error)
	require.True(t, nl.IsLevelEnabled(Fatal))
	require.False(t, nl.IsLevelEnabled(Warn))
}

func TestSetLevelNewLogger(t *testing.T) {
	a := require.New(t)

	var bufNewLogger bytes.Buffer
	nl := NewLogger()
	nl.SetOutput(&bufNewLogger)

	nl.Debug("ABC Should not show up")
	nl.Info("CDF Should show up")
	nl.Warn("GHI Should show up")

	a.NotContains(bufNewLogger.String(), "ABC Should not show up")
	a.Contains(bufNewLogger.String(), "CDF Should show up")
	a.Contains(bufNewLogger.String(), "GHI Should show up")
}

func TestWithFieldsNewLogger(t *testing.T) {
	a := require.New(t)

	var bufNewLogger bytes.Buffer
	nl := NewLogger()
	nl.SetOutput(&bufNewLogger)

	nl.WithFields(Fields{"1": 4, "2": "testNew"}).Info("ABCDEFG")
	a.Regexp("time=\".*\" level=info msg=ABCDEFG 1=4 2=testNew file=log_test.go function=github.com/algorand/go-streampay/logging.TestWithFieldsNewLogger line=\\d+", bufNewLogger.String())
}

func TestSetJSONFormatter(t *testing.T) {
	a := require.New(t)

	var bufNewLogger bytes.Buffer
	nl := NewLogger()
	nl.SetOutput(&bufNewLogger)
	nl.SetJSONFormatter()
	nl.With("stream", 3).Info("opened")
	a.True(isJSON(bufNewLogger.String()))
	a.Contains(bufNewLogger.String(), `"stream":3`)
}

func TestErrorCarriesCallerAndStack(t *testing.T) {
	var buf bytes.Buffer
	nl := NewLogger()
	nl.SetOutput(&buf)

	nl.With("stream", 7).Errorf("refund of %d failed", 7)
	out := buf.String()
	require.Contains(t, out, stackPrefix)
	require.Regexp(t, `msg="refund of 7 failed" file=log_test.go function=github.com/algorand/go-streampay/logging.TestErrorCarriesCallerAndStack line=\d+ stream=7`, out)
}

// Handlers registered for Fatal logging must run when Fatal is emitted; the
// daemon attaches its shutdown to them.
func TestFatalExitHandler(t *testing.T) {
	nl := TestingLogWithoutFatalExit(t)

	var flag atomic.Bool
	RegisterExitHandler(func() {
		flag.Store(true)
	})
	nl.Fatal("OH NO")

	require.True(t, flag.Load())
}
