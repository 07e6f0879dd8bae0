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

package crypto

import (
	"crypto/rand"
	"encoding/binary"
)

// RNG represents a randomness source.  This interface is used to
// generate keys and salts.
type RNG interface {
	RandBytes([]byte)
}

type systemRNG struct{}

func (systemRNG) RandBytes(buf []byte) {
	_, err := rand.Read(buf)
	if err != nil {
		panic(err)
	}
}

// SystemRNG implements the RNG interface using the operating system's
// cryptographically secure random source.
var SystemRNG RNG = systemRNG{}

// RandUint64 returns a random 64-bit unsigned integer
func RandUint64() uint64 {
	var buf [8]byte
	SystemRNG.RandBytes(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}
