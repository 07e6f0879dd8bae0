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

// Package tokens manages the API token that guards the REST endpoints of
// a data directory.
package tokens

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/algorand/go-streampay/crypto"
)

// StreamdTokenFilename is the filename used to store the streamd API token
const StreamdTokenFilename = "streamd.token"

const tokenBytes = 32

// ErrBadToken is returned for a token that is not 64 hex characters.
var ErrBadToken = errors.New("API token must be 64 hexadecimal characters")

// tokenFilepath returns the full path to a token file
func tokenFilepath(dataDir, tokenFilename string) string {
	return filepath.Join(dataDir, tokenFilename)
}

// GenerateAPIToken returns a random token
func GenerateAPIToken() string {
	var raw [tokenBytes]byte
	crypto.SystemRNG.RandBytes(raw[:])
	return hex.EncodeToString(raw[:])
}

// ValidateAPIToken checks the format of a token
func ValidateAPIToken(token string) error {
	if len(token) != 2*tokenBytes {
		return ErrBadToken
	}
	if _, err := hex.DecodeString(token); err != nil {
		return ErrBadToken
	}
	return nil
}

// GetAPIToken reads the token stored in dataDir
func GetAPIToken(dataDir, tokenFilename string) (string, error) {
	raw, err := os.ReadFile(tokenFilepath(dataDir, tokenFilename))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// WriteAPITokenToDisk stores token in dataDir, readable only by its owner
func WriteAPITokenToDisk(dataDir, tokenFilename, token string) error {
	return os.WriteFile(tokenFilepath(dataDir, tokenFilename), []byte(token), 0600)
}

// GetAndValidateAPIToken returns the token stored in dataDir, creating one
// on first use.
func GetAndValidateAPIToken(dataDir, tokenFilename string) (string, error) {
	token, err := GetAPIToken(dataDir, tokenFilename)
	if os.IsNotExist(err) {
		token = GenerateAPIToken()
		err = WriteAPITokenToDisk(dataDir, tokenFilename, token)
	}
	if err != nil {
		return "", err
	}
	if err = ValidateAPIToken(token); err != nil {
		return "", fmt.Errorf("%s: %w", tokenFilepath(dataDir, tokenFilename), err)
	}
	return token, nil
}
