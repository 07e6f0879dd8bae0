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

package config

import (
	"fmt"
	"time"
)

// Local holds the per-node-instance configuration settings of streamd.
//
// New fields may be added to Local along with a bump of Version and a
// default in defaultLocal. Existing field names must not change once
// released: they are the keys of config.json.
type Local struct {
	// Version tracks the current version of the defaults so we can migrate old -> new.
	Version uint32

	// EndpointAddress configures the address the node listens on for REST API calls. Specify an IP and port or just port. For example, 127.0.0.1:0 will listen on a random port on the localhost (preferring 8080).
	EndpointAddress string

	// StoreBackend selects the ledger store: "sqlite", "leveldb" or "memory".
	StoreBackend string

	// BaseLoggerDebugLevel specifies the logging level for streamd (node.log). The levels range from 0 (critical error / silent) to 5 (debug / verbose). The default value is 4 (Info).
	BaseLoggerDebugLevel uint32

	// LogSizeLimit is the log file size limit in bytes. When set to 0 logs will be written to stdout.
	LogSizeLimit uint64

	// LogArchiveName text/template for creating log archive filename.
	// Available template vars:
	// Time at start of log: {{.Year}} {{.Month}} {{.Day}} {{.Hour}} {{.Minute}} {{.Second}}
	// Time at end of log: {{.EndYear}} {{.EndMonth}} {{.EndDay}} {{.EndHour}} {{.EndMinute}} {{.EndSecond}}
	//
	// If the filename ends with .gz or .bz2 it will be compressed.
	//
	// default: "node.archive.log" (no rotation, clobbers previous archive)
	LogArchiveName string

	// RoundIntervalMillis is the wall-clock duration of one round of the ledger clock.
	RoundIntervalMillis int64

	// MaxTxnLife is the longest validity window, in rounds, a transaction envelope may declare.
	MaxTxnLife uint64

	// TxnDupCacheSize is the number of recently executed transaction ids remembered to reject replays.
	TxnDupCacheSize int

	// EnableMetrics exposes prometheus metrics on /metrics.
	EnableMetrics bool

	// RestReadTimeoutSeconds is passed to the API servers rest http.Server implementation.
	RestReadTimeoutSeconds int

	// RestWriteTimeoutSeconds is passed to the API server rest http.Server implementation.
	RestWriteTimeoutSeconds int

	// DisableAPIAuth turns off the X-Stream-API-Token check. /health and /metrics never require it.
	DisableAPIAuth bool

	// DeadlockDetection controls the lock-order detector: negative disables it, positive enables it, 0 keeps the build default.
	DeadlockDetection int

	// DeadlockDetectionThreshold is the number of seconds a lock may be waited on before it is reported as a potential deadlock.
	DeadlockDetectionThreshold int
}

// RoundInterval is RoundIntervalMillis as a duration.
func (cfg Local) RoundInterval() time.Duration {
	return time.Duration(cfg.RoundIntervalMillis) * time.Millisecond
}

// Validate rejects settings the node cannot run with.
func (cfg Local) Validate() error {
	switch cfg.StoreBackend {
	case "sqlite", "leveldb", "memory":
	default:
		return fmt.Errorf("config: unknown StoreBackend %q", cfg.StoreBackend)
	}
	if cfg.RoundIntervalMillis <= 0 {
		return fmt.Errorf("config: RoundIntervalMillis must be positive, not %d", cfg.RoundIntervalMillis)
	}
	if cfg.MaxTxnLife == 0 {
		return fmt.Errorf("config: MaxTxnLife must be positive")
	}
	if cfg.TxnDupCacheSize <= 0 {
		return fmt.Errorf("config: TxnDupCacheSize must be positive, not %d", cfg.TxnDupCacheSize)
	}
	if cfg.DeadlockDetectionThreshold <= 0 {
		return fmt.Errorf("config: DeadlockDetectionThreshold must be positive, not %d", cfg.DeadlockDetectionThreshold)
	}
	if cfg.BaseLoggerDebugLevel > 5 {
		return fmt.Errorf("config: BaseLoggerDebugLevel %d out of range 0-5", cfg.BaseLoggerDebugLevel)
	}
	return nil
}
