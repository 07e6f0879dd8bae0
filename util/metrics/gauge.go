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
	"github.com/prometheus/client_golang/prometheus"
)

// Gauge represent a single gauge variable.
type Gauge struct {
	g prometheus.Gauge
}

// MakeGauge create a new gauge with the provided name and description.
func MakeGauge(metric MetricName) *Gauge {
	return &Gauge{
		g: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metric.Name,
			Help: metric.Description,
		}),
	}
}

// Register registers the gauge with the given registry, or the default
// registry when reg is nil.
func (gauge *Gauge) Register(reg *Registry) {
	if existing, ok := reg.register(gauge.g).(prometheus.Gauge); ok {
		gauge.g = existing
	}
}

// Deregister deregisters the gauge.
func (gauge *Gauge) Deregister(reg *Registry) {
	reg.unregister(gauge.g)
}

// Set sets gauge to x
func (gauge *Gauge) Set(x uint64) {
	gauge.g.Set(float64(x))
}
