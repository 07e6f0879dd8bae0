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
	"os"
	"path/filepath"
)

// DataDirEnv names the environment variable consulted when no data directory is given.
const DataDirEnv = "STREAMPAY_DATA"

// ResolveDataDir returns dataDirectory, or the value of DataDirEnv when it is empty.
func ResolveDataDir(dataDirectory string) string {
	if dataDirectory == "" {
		return os.Getenv(DataDirEnv)
	}
	return dataDirectory
}

// InitializeDataDir resolves the data directory to an absolute existing path
// and loads its config. A missing config.json yields the defaults.
func InitializeDataDir(dataDirectory string) (dir string, cfg Local, err error) {
	dir = ResolveDataDir(dataDirectory)
	if dir == "" {
		return "", Local{}, fmt.Errorf("data directory not specified; use -d or set %s", DataDirEnv)
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", Local{}, fmt.Errorf("can't convert data directory's path to absolute: %w", err)
	}
	if _, err = os.Stat(dir); err != nil {
		return "", Local{}, err
	}

	cfg, err = LoadConfigFromDisk(dir)
	if err != nil && !os.IsNotExist(err) {
		return "", Local{}, err
	}
	return dir, cfg, cfg.Validate()
}
