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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/algorand/go-streampay/config"
	"github.com/algorand/go-streampay/daemon/streamd"
	"github.com/algorand/go-streampay/data/bookkeeping"
	"github.com/algorand/go-streampay/util/codecs"
)

var dataDirectory = flag.String("d", "", "Root streamd data path")
var genesisFile = flag.String("g", "", "Genesis configuration file")
var genesisPrint = flag.Bool("G", false, "Print genesis ID")
var versionCheck = flag.Bool("v", false, "Display and write current build version and exit")
var initAndExit = flag.Bool("x", false, "Initialize the ledger and exit")
var logToStdout = flag.Bool("o", false, "Write to stdout instead of node.log by overriding config.LogSizeLimit to 0")
var listenIP = flag.String("l", "", "Override config.EndpointAddress (REST listening address) with ip:port")

func main() {
	flag.Parse()
	exitCode := run()
	os.Exit(exitCode)
}

func loadGenesis(dataDir string, genesisPath string) (bookkeeping.Genesis, error) {
	if genesisPath == "" {
		genesisPath = filepath.Join(dataDir, bookkeeping.GenesisFilename)
	}
	genesis, err := bookkeeping.LoadGenesisFromFile(genesisPath)
	if err != nil {
		return bookkeeping.Genesis{}, err
	}
	return genesis, genesis.Validate()
}

func run() int {
	if *versionCheck {
		fmt.Println(config.FormatVersionAndLicense())
		return 0
	}

	dataDir := config.ResolveDataDir(*dataDirectory)
	if len(dataDir) == 0 {
		fmt.Fprintf(os.Stderr, "Data directory not specified.  Please use -d or set $%s in your environment.\n", config.DataDirEnv)
		return 1
	}

	genesis, err := loadGenesis(dataDir, *genesisFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading genesis file (%s): %v\n", *genesisFile, err)
		return 1
	}

	// -G will print only the genesis ID and then exit
	if *genesisPrint {
		fmt.Println(genesis.ID())
		return 0
	}

	absolutePath, cfg, err := config.InitializeDataDir(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot load config from %s: %v\n", dataDir, err)
		return 1
	}

	// before doing anything further, attempt to acquire the streamd lock
	// to ensure this is the only node running against this data directory
	lockPath := filepath.Join(absolutePath, streamd.LockFilename)
	fileLock := flock.New(lockPath)
	locked, err := fileLock.TryLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "unexpected failure in establishing %s: %s \n", streamd.LockFilename, err.Error())
		return 1
	}
	if !locked {
		fmt.Fprintf(os.Stderr, "failed to lock %s; is an instance of streamd already running in this data directory?\n", streamd.LockFilename)
		return 1
	}
	defer fileLock.Unlock()

	if *listenIP != "" {
		cfg.EndpointAddress = *listenIP
	}
	if *logToStdout {
		cfg.LogSizeLimit = 0
	}

	fmt.Printf("Config loaded from %s\n", absolutePath)
	fmt.Println("Configuration after loading/defaults merge: ")
	err = codecs.NewFormattedJSONEncoder(os.Stdout).Encode(cfg)
	if err != nil {
		fmt.Println("Error encoding config: ", err)
	}

	s := streamd.Server{
		RootPath: absolutePath,
		Genesis:  genesis,
	}
	err = s.Initialize(cfg, *logToStdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *initAndExit {
		s.Stop()
		return 0
	}

	if err = s.Start(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
