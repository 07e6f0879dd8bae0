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
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/algorand/go-streampay/config"
	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/daemon/streamd"
	"github.com/algorand/go-streampay/daemon/streamd/api/client"
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/transactions"
	"github.com/algorand/go-streampay/protocol"
	"github.com/algorand/go-streampay/util/tokens"
)

func reportInfof(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

func reportErrorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func printJSON(obj interface{}) {
	fmt.Println(string(protocol.EncodeJSON(obj)))
}

func loadKeyfile(keyfile string) (crypto.Seed, error) {
	var seed crypto.Seed
	seedbytes, err := os.ReadFile(keyfile)
	if err != nil {
		return seed, err
	}
	if len(seedbytes) != len(seed) {
		return seed, fmt.Errorf("%s holds %d bytes, not a %d byte key seed", keyfile, len(seedbytes), len(seed))
	}
	copy(seed[:], seedbytes)
	return seed, nil
}

func writeKeyfile(keyfile string, seed crypto.Seed) error {
	return os.WriteFile(keyfile, seed[:], 0600)
}

func mustSecrets(keyfile string) *crypto.SignatureSecrets {
	if keyfile == "" {
		reportErrorf("A key file is required; use -f")
	}
	seed, err := loadKeyfile(keyfile)
	if err != nil {
		reportErrorf("Cannot read key seed from %s: %v", keyfile, err)
	}
	return crypto.GenerateSignatureSecrets(seed)
}

func mustAddress(text string) basics.Address {
	addr, err := basics.UnmarshalChecksumAddress(text)
	if err != nil {
		reportErrorf("Invalid address %q: %v", text, err)
	}
	return addr
}

func parseSignature(text string) (crypto.Signature, error) {
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return crypto.Signature{}, err
	}
	return crypto.SignatureFromBytes(raw)
}

// nodeEndpoint returns the REST URL and API token to reach the node, from
// the flags or else from the data directory.
func nodeEndpoint() (url.URL, string, error) {
	token := apiToken
	dir := config.ResolveDataDir(dataDir)
	if token == "" && dir != "" {
		token, _ = tokens.GetAPIToken(dir, tokens.StreamdTokenFilename)
	}

	address := nodeURL
	if address == "" {
		if dir == "" {
			return url.URL{}, "", fmt.Errorf("no node given; use --url or -d, or set %s", config.DataDirEnv)
		}
		raw, err := os.ReadFile(filepath.Join(dir, streamd.NetFilename))
		if err != nil {
			return url.URL{}, "", fmt.Errorf("is streamd running? %w", err)
		}
		address = strings.TrimSpace(string(raw))
	}
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	u, err := url.Parse(address)
	if err != nil {
		return url.URL{}, "", err
	}
	return *u, token, nil
}

func ensureRestClient() client.RestClient {
	u, token, err := nodeEndpoint()
	if err != nil {
		reportErrorf("Cannot reach node: %v", err)
	}
	return client.MakeRestClient(u, token)
}

// txnHeader fills the envelope of a transaction sent by sender: the node's
// network and a window starting at its current round.
func txnHeader(c client.RestClient, sender basics.Address, validRounds uint64, note string) transactions.Header {
	status, err := c.Status()
	if err != nil {
		reportErrorf("Cannot get node status: %v", err)
	}
	return transactions.Header{
		Sender:     sender,
		FirstValid: status.Round,
		LastValid:  status.Round + basics.Round(validRounds),
		Note:       []byte(note),
		GenesisID:  status.GenesisID,
	}
}

func submit(c client.RestClient, tx transactions.Transaction, secrets *crypto.SignatureSecrets) {
	resp, err := c.SendRawTransaction(tx.Sign(secrets))
	if err != nil {
		reportErrorf("Transaction rejected: %v", err)
	}
	printJSON(resp)
}
