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

// Counter represent a single counter variable.
type Counter struct {
	vec *prometheus.CounterVec
}

// MakeCounter create a new counter with the provided name and description.
// labelNames lists the labels every increment must carry.
func MakeCounter(metric MetricName, labelNames ...string) *Counter {
	return &Counter{
		vec: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metric.Name,
			Help: metric.Description,
		}, labelNames),
	}
}

// Register registers the counter with the given registry, or the default
// registry when reg is nil.
func (counter *Counter) Register(reg *Registry) {
	if existing, ok := reg.register(counter.vec).(*prometheus.CounterVec); ok {
		counter.vec = existing
	}
}

// Deregister deregisters the counter.
func (counter *Counter) Deregister(reg *Registry) {
	reg.unregister(counter.vec)
}

// Inc increases counter by 1
func (counter *Counter) Inc(labels map[string]string) {
	counter.vec.With(labels).Inc()
}

// AddUint64 increases counter by x
func (counter *Counter) AddUint64(x uint64, labels map[string]string) {
	counter.vec.With(labels).Add(float64(x))
}
