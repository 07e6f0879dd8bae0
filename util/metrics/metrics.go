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

// Package metrics wraps the prometheus client behind the named counters and
// gauges the node reports.
package metrics

// MetricName describes the name and description of a single metric
type MetricName struct {
	Name        string
	Description string
}

var (
	// LedgerOperationsTotal Total number of ledger operations, by operation and result
	LedgerOperationsTotal = MetricName{Name: "streampay_ledger_operations_total", Description: "Total number of ledger operations, by operation and result"}
	// LedgerTransfersTotal Total number of fund movements committed to the ledger
	LedgerTransfersTotal = MetricName{Name: "streampay_ledger_transfers_total", Description: "Total number of fund movements committed to the ledger"}
	// LedgerRound Last round an operation was committed at
	LedgerRound = MetricName{Name: "streampay_ledger_round", Description: "Last round an operation was committed at"}
	// LedgerStreams Number of streams ever opened
	LedgerStreams = MetricName{Name: "streampay_ledger_streams", Description: "Number of streams ever opened"}
	// LedgerEscrowedUnits Units currently locked in streams
	LedgerEscrowedUnits = MetricName{Name: "streampay_ledger_escrowed_units", Description: "Units currently locked in streams"}
	// NodeTxnRejectedTotal Number of envelopes the node refused before reaching the ledger
	NodeTxnRejectedTotal = MetricName{Name: "streampay_node_txn_rejected_total", Description: "Number of envelopes the node refused before reaching the ledger"}
	// RestRequestsTotal Number of REST requests served, by route and status code
	RestRequestsTotal = MetricName{Name: "streampay_rest_requests_total", Description: "Number of REST requests served, by route and status code"}
)
