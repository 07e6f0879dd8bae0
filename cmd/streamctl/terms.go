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

	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
)

var (
	termsStreamID   uint64
	paymentPerBlock uint64
	startBlock      uint64
	stopBlock       uint64
)

func addTermsFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&termsStreamID, "stream", 0, "Stream id")
	cmd.Flags().Uint64Var(&paymentPerBlock, "rate", 0, "Payment per block of the proposed terms")
	cmd.Flags().Uint64Var(&startBlock, "start", 0, "First block of the proposed timeframe")
	cmd.Flags().Uint64Var(&stopBlock, "stop", 0, "Block the proposed timeframe ends before")
	cmd.MarkFlagRequired("stream")
	cmd.MarkFlagRequired("rate")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("stop")
}

func proposedTerms() streams.Terms {
	return streams.Terms{
		StreamID:        streams.StreamID(termsStreamID),
		PaymentPerBlock: basics.Units{Raw: paymentPerBlock},
		Timeframe:       streams.MakeTimeframe(basics.Round(startBlock), basics.Round(stopBlock)),
	}
}

func init() {
	termsCmd.AddCommand(termsHashCmd)
	termsCmd.AddCommand(termsSignCmd)

	addTermsFlags(termsHashCmd)
	addTermsFlags(termsSignCmd)
	termsSignCmd.Flags().StringVarP(&keyFile, "keyfile", "f", "", "Private key seed filename of the consenting party")
	termsSignCmd.MarkFlagRequired("keyfile")
}

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Hash and sign proposed stream terms",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

var termsHashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Print the digest a counterparty signs to consent to new terms",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reportInfof("%s", proposedTerms().Hash())
	},
}

var termsSignCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign proposed terms and print the signature",
	Long:  `Sign proposed terms with the key file and print the base64 signature the other party passes to 'stream update --sig'.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		terms := proposedTerms()
		if err := terms.WellFormed(); err != nil {
			reportErrorf("Refusing to sign malformed terms: %v", err)
		}
		reportInfof("%s", terms.Sign(mustSecrets(keyFile)))
	},
}
