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

var defaultLocal = Local{
	BaseLoggerDebugLevel:       4,
	DeadlockDetection:          0,
	DeadlockDetectionThreshold: 30,
	DisableAPIAuth:             false,
	EnableMetrics:              true,
	EndpointAddress:            "127.0.0.1:0",
	LogArchiveName:             "node.archive.log",
	LogSizeLimit:               1073741824,
	MaxTxnLife:                 1000,
	RestReadTimeoutSeconds:     15,
	RestWriteTimeoutSeconds:    120,
	RoundIntervalMillis:        1000,
	StoreBackend:               "sqlite",
	TxnDupCacheSize:            50000,
	Version:                    2,
}
