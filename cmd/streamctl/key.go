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
	"github.com/spf13/cobra"

	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/data/basics"
)

var keyFile string

func init() {
	keyCmd.AddCommand(keyGenerateCmd)
	keyCmd.AddCommand(keyShowCmd)

	keyCmd.PersistentFlags().StringVarP(&keyFile, "keyfile", "f", "", "Private key seed filename")
	keyCmd.MarkPersistentFlagRequired("keyfile")
}

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage signing keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a key and write its seed to the key file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		seed, secrets := crypto.NewSignatureSecrets()
		if err := writeKeyfile(keyFile, seed); err != nil {
			reportErrorf("Cannot write key to %s: %v", keyFile, err)
		}
		reportInfof("Public key: %s", basics.Address(secrets.SignatureVerifier))
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the address of the key in the key file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		secrets := mustSecrets(keyFile)
		reportInfof("Public key: %s", basics.Address(secrets.SignatureVerifier))
	},
}
