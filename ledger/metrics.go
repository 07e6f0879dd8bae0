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

package ledger

import (
	"errors"

	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/ledger/ledgercore"
	"github.com/algorand/go-streampay/util/metrics"
)

const (
	resultCommitted = "committed"
	resultNoop      = "noop"
)

type metricsTracker struct {
	reg                   *metrics.Registry
	ledgerOperationsTotal *metrics.Counter
	ledgerTransfersTotal  *metrics.Counter
	ledgerRound           *metrics.Gauge
	ledgerStreams         *metrics.Gauge
	ledgerEscrowedUnits   *metrics.Gauge
}

func makeMetricsTracker(reg *metrics.Registry) *metricsTracker {
	mt := &metricsTracker{
		reg:                   reg,
		ledgerOperationsTotal: metrics.MakeCounter(metrics.LedgerOperationsTotal, "op", "result"),
		ledgerTransfersTotal:  metrics.MakeCounter(metrics.LedgerTransfersTotal),
		ledgerRound:           metrics.MakeGauge(metrics.LedgerRound),
		ledgerStreams:         metrics.MakeGauge(metrics.LedgerStreams),
		ledgerEscrowedUnits:   metrics.MakeGauge(metrics.LedgerEscrowedUnits),
	}
	mt.ledgerOperationsTotal.Register(reg)
	mt.ledgerTransfersTotal.Register(reg)
	mt.ledgerRound.Register(reg)
	mt.ledgerStreams.Register(reg)
	mt.ledgerEscrowedUnits.Register(reg)
	return mt
}

func (mt *metricsTracker) loaded(rnd basics.Round, nextID streams.StreamID, escrowed basics.Units) {
	mt.ledgerRound.Set(uint64(rnd))
	mt.ledgerStreams.Set(uint64(nextID))
	mt.ledgerEscrowedUnits.Set(escrowed.Raw)
}

func (mt *metricsTracker) committed(op string, delta ledgercore.StateDelta) {
	if delta.IsEmpty() {
		mt.ledgerOperationsTotal.Inc(map[string]string{"op": op, "result": resultNoop})
		return
	}
	mt.ledgerOperationsTotal.Inc(map[string]string{"op": op, "result": resultCommitted})
	mt.ledgerTransfersTotal.AddUint64(uint64(len(delta.Transfers)), nil)
	mt.ledgerRound.Set(uint64(delta.Round))
	mt.ledgerStreams.Set(uint64(delta.NextStreamID))
	if escrowed, ok := delta.Accounts[streams.EscrowAddress]; ok {
		mt.ledgerEscrowedUnits.Set(escrowed.Raw)
	}
}

// rejected counts a refused operation under its error kind, "duplicate" for
// replays, or "error" for failures that are not rejections.
func (mt *metricsTracker) rejected(op string, err error) {
	result := "error"
	var dup ledgercore.TransactionInLedgerError
	if kind, ok := ledgercore.KindOf(err); ok {
		result = kind.String()
	} else if errors.As(err, &dup) {
		result = "duplicate"
	}
	mt.ledgerOperationsTotal.Inc(map[string]string{"op": op, "result": result})
}

func (mt *metricsTracker) close() {
	mt.ledgerOperationsTotal.Deregister(mt.reg)
	mt.ledgerTransfersTotal.Deregister(mt.reg)
	mt.ledgerRound.Deregister(mt.reg)
	mt.ledgerStreams.Deregister(mt.reg)
	mt.ledgerEscrowedUnits.Deregister(mt.reg)
}
