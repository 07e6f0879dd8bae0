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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/daemon/streamd"
	"github.com/algorand/go-streampay/util/tokens"
)

func TestKeyfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	seed, _ := crypto.NewSignatureSecrets()
	require.NoError(t, writeKeyfile(path, seed))

	loaded, err := loadKeyfile(path)
	require.NoError(t, err)
	require.Equal(t, seed, loaded)

	require.NoError(t, os.WriteFile(path, []byte("short"), 0600))
	_, err = loadKeyfile(path)
	require.Error(t, err)
}

func TestParseSignature(t *testing.T) {
	secrets := crypto.GenerateSignatureSecrets(crypto.Seed{4})
	sig := secrets.SignBytes([]byte("terms"))

	parsed, err := parseSignature(sig.String())
	require.NoError(t, err)
	require.Equal(t, sig, parsed)

	_, err = parseSignature("AAAA")
	require.Error(t, err)
	_, err = parseSignature("not base64!")
	require.Error(t, err)
}

func TestNodeEndpointFromDataDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, streamd.NetFilename), []byte("127.0.0.1:4160\n"), 0644))
	require.NoError(t, tokens.WriteAPITokenToDisk(dir, tokens.StreamdTokenFilename, "abc"))

	dataDir, nodeURL, apiToken = dir, "", ""
	defer func() { dataDir = "" }()

	u, token, err := nodeEndpoint()
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:4160", u.String())
	require.Equal(t, "abc", token)

	nodeURL, apiToken = "https://node.example:443", "override"
	defer func() { nodeURL, apiToken = "", "" }()
	u, token, err = nodeEndpoint()
	require.NoError(t, err)
	require.Equal(t, "https://node.example:443", u.String())
	require.Equal(t, "override", token)
}
