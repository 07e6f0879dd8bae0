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
)

var accountAddr string

func init() {
	accountCmd.AddCommand(accountShowCmd)
	accountShowCmd.Flags().StringVarP(&accountAddr, "address", "a", "", "Account address")
	accountShowCmd.MarkFlagRequired("address")
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Inspect external balances",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

var accountShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the balance of an address",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := ensureRestClient().AccountInformation(mustAddress(accountAddr))
		if err != nil {
			reportErrorf("Cannot get account %s: %v", accountAddr, err)
		}
		printJSON(resp)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of the node",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := ensureRestClient().Status()
		if err != nil {
			reportErrorf("Cannot get node status: %v", err)
		}
		printJSON(resp)
	},
}
