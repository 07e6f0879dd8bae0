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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/algorand/go-streampay/config"
)

var dataDir string
var nodeURL string
var apiToken string
var versionCheck bool

func init() {
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(termsCmd)
	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(statusCmd)

	rootCmd.Flags().BoolVarP(&versionCheck, "version", "v", false, "Display current build version and exit")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "datadir", "d", "", "Data directory of the node; its streamd.net and streamd.token are used to reach it")
	rootCmd.PersistentFlags().StringVar(&nodeURL, "url", "", "URL of the node REST API, overriding the data directory")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "API token, overriding the data directory")
}

var rootCmd = &cobra.Command{
	Use:   "streamctl",
	Short: "CLI for interacting with a stream ledger node",
	Long:  `streamctl manages signing keys, computes and signs stream terms, and submits stream transactions to a running streamd.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if versionCheck {
			fmt.Println(config.FormatVersionAndLicense())
			return
		}
		//If no arguments passed, we should fallback to help
		cmd.HelpFunc()(cmd, args)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
