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

package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

var testCounterName = MetricName{Name: "streampay_test_counter_total", Description: "counter used by tests"}
var testGaugeName = MetricName{Name: "streampay_test_gauge", Description: "gauge used by tests"}

func TestCounterLabels(t *testing.T) {
	t.Parallel()

	reg := MakeRegistry()
	c := MakeCounter(testCounterName, "op")
	c.Register(reg)

	c.Inc(map[string]string{"op": "open"})
	c.AddUint64(4, map[string]string{"op": "open"})
	c.Inc(map[string]string{"op": "refund"})

	require.Equal(t, 5.0, testutil.ToFloat64(c.vec.WithLabelValues("open")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.vec.WithLabelValues("refund")))
}

func TestRegisterTwiceSharesCollector(t *testing.T) {
	t.Parallel()

	reg := MakeRegistry()
	a := MakeCounter(testCounterName)
	a.Register(reg)
	b := MakeCounter(testCounterName)
	b.Register(reg)

	a.Inc(nil)
	b.Inc(nil)
	require.Equal(t, 2.0, testutil.ToFloat64(a.vec.WithLabelValues()))
}

func TestGaugeAndHandler(t *testing.T) {
	t.Parallel()

	reg := MakeRegistry()
	g := MakeGauge(testGaugeName)
	g.Register(reg)
	g.Set(42)

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "streampay_test_gauge 42"), string(body))

	g.Deregister(reg)
	families, err := reg.Gatherer().Gather()
	require.NoError(t, err)
	require.Empty(t, families)
}
