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
)

// migrate upgrades a config written by an older release. A field still
// holding the default of the version it was written with is moved to the
// current default; values the operator changed are kept.
func migrate(cfg Local) (newCfg Local, err error) {
	newCfg = cfg
	if cfg.Version > defaultLocal.Version {
		return newCfg, fmt.Errorf("unexpected config version: %d", cfg.Version)
	}

	for newCfg.Version < defaultLocal.Version {
		switch newCfg.Version {
		case 0:
			// version 1 replaced the 5 second round interval
			if newCfg.RoundIntervalMillis == 5000 {
				newCfg.RoundIntervalMillis = 1000
			}
		case 1:
			// version 2 grew the dup cache
			if newCfg.TxnDupCacheSize == 10000 {
				newCfg.TxnDupCacheSize = 50000
			}
		}
		newCfg.Version++
	}
	return newCfg, nil
}
