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
	"github.com/algorand/go-streampay/data/transactions"
	"github.com/algorand/go-streampay/protocol"
)

var (
	streamID      uint64
	recipientAddr string
	deposit       uint64
	amount        uint64
	signerAddr    string
	signerSig     string
	balanceAddr   string
	validRounds   uint64
	noteText      string
)

func addSenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&keyFile, "keyfile", "f", "", "Private key seed filename of the caller")
	cmd.Flags().Uint64Var(&validRounds, "valid-rounds", 100, "Number of rounds the transaction stays valid for")
	cmd.Flags().StringVarP(&noteText, "note", "n", "", "Note text (ignored by the ledger)")
	cmd.MarkFlagRequired("keyfile")
}

func addStreamIDFlag(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&streamID, "stream", 0, "Stream id")
	cmd.MarkFlagRequired("stream")
}

func init() {
	streamCmd.AddCommand(openCmd, refuelCmd, withdrawCmd, refundCmd, updateCmd, showCmd, balanceCmd, latestCmd)

	addSenderFlags(openCmd)
	openCmd.Flags().StringVar(&recipientAddr, "to", "", "Recipient address")
	openCmd.Flags().Uint64Var(&deposit, "deposit", 0, "Initial deposit")
	openCmd.Flags().Uint64Var(&paymentPerBlock, "rate", 0, "Payment per block")
	openCmd.Flags().Uint64Var(&startBlock, "start", 0, "First vesting block")
	openCmd.Flags().Uint64Var(&stopBlock, "stop", 0, "Block vesting ends before")
	for _, name := range []string{"to", "deposit", "rate", "start", "stop"} {
		openCmd.MarkFlagRequired(name)
	}

	addSenderFlags(refuelCmd)
	addStreamIDFlag(refuelCmd)
	refuelCmd.Flags().Uint64Var(&amount, "amount", 0, "Amount to add to the stream")
	refuelCmd.MarkFlagRequired("amount")

	addSenderFlags(withdrawCmd)
	addStreamIDFlag(withdrawCmd)

	addSenderFlags(refundCmd)
	addStreamIDFlag(refundCmd)

	addSenderFlags(updateCmd)
	addTermsFlags(updateCmd)
	updateCmd.Flags().StringVar(&signerAddr, "signer", "", "Address of the consenting counterparty")
	updateCmd.Flags().StringVar(&signerSig, "sig", "", "Counterparty signature over the new terms, from 'terms sign'")
	updateCmd.MarkFlagRequired("signer")
	updateCmd.MarkFlagRequired("sig")

	addStreamIDFlag(showCmd)

	addStreamIDFlag(balanceCmd)
	balanceCmd.Flags().StringVar(&balanceAddr, "address", "", "Address whose claim to show")
	balanceCmd.MarkFlagRequired("address")
}

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Open, fund, settle and inspect streams",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

// sendCall signs and submits a transaction of type typ filled by fill.
func sendCall(typ protocol.TxType, fill func(tx *transactions.Transaction)) {
	secrets := mustSecrets(keyFile)
	c := ensureRestClient()
	tx := transactions.Transaction{
		Type:   typ,
		Header: txnHeader(c, basics.Address(secrets.SignatureVerifier), validRounds, noteText),
	}
	fill(&tx)
	submit(c, tx, secrets)
}

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a stream to a recipient, escrowing a deposit",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		recipient := mustAddress(recipientAddr)
		sendCall(protocol.OpenStreamTx, func(tx *transactions.Transaction) {
			tx.Recipient = recipient
			tx.Deposit = basics.Units{Raw: deposit}
			tx.PaymentPerBlock = basics.Units{Raw: paymentPerBlock}
			tx.Timeframe = streams.MakeTimeframe(basics.Round(startBlock), basics.Round(stopBlock))
		})
	},
}

var refuelCmd = &cobra.Command{
	Use:   "refuel",
	Short: "Add funds to a stream you opened",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sendCall(protocol.RefuelStreamTx, func(tx *transactions.Transaction) {
			tx.StreamID = streams.StreamID(streamID)
			tx.Amount = basics.Units{Raw: amount}
		})
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Collect what has vested to you",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sendCall(protocol.WithdrawStreamTx, func(tx *transactions.Transaction) {
			tx.StreamID = streams.StreamID(streamID)
		})
	},
}

var refundCmd = &cobra.Command{
	Use:   "refund",
	Short: "Take back the part of a stream that will never vest",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sendCall(protocol.RefundStreamTx, func(tx *transactions.Transaction) {
			tx.StreamID = streams.StreamID(streamID)
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace the rate and timeframe with the counterparty's signed consent",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		signer := mustAddress(signerAddr)
		sig, err := parseSignature(signerSig)
		if err != nil {
			reportErrorf("Invalid signature: %v", err)
		}
		terms := proposedTerms()
		sendCall(protocol.UpdateStreamTx, func(tx *transactions.Transaction) {
			tx.StreamID = terms.StreamID
			tx.PaymentPerBlock = terms.PaymentPerBlock
			tx.Timeframe = terms.Timeframe
			tx.Signer = signer
			tx.SignerSig = sig
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a stream and what has vested",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := ensureRestClient().StreamInformation(streams.StreamID(streamID))
		if err != nil {
			reportErrorf("Cannot get stream %d: %v", streamID, err)
		}
		printJSON(resp)
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the claim of an address on a stream",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := ensureRestClient().StreamBalance(streams.StreamID(streamID), mustAddress(balanceAddr))
		if err != nil {
			reportErrorf("Cannot get balance on stream %d: %v", streamID, err)
		}
		printJSON(resp)
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the id the next opened stream will get",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := ensureRestClient().LatestStreamID()
		if err != nil {
			reportErrorf("Cannot get latest stream id: %v", err)
		}
		printJSON(resp)
	},
}
