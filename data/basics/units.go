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

package basics

import (
	"math"

	"github.com/algorand/go-codec/codec"
)

// microPerWhole is the number of micro-units in one whole token.
const microPerWhole = 1e6

// Round is the discrete time step (block height) of the ledger.
type Round uint64

// Units is the native fungible amount, counted in micro-units.
type Units struct {
	Raw uint64
}

// CodecEncodeSelf implements codec.Selfer to encode Units as a simple int
func (a Units) CodecEncodeSelf(enc *codec.Encoder) {
	enc.MustEncode(a.Raw)
}

// CodecDecodeSelf implements codec.Selfer to decode Units as a simple int
func (a *Units) CodecDecodeSelf(dec *codec.Decoder) {
	dec.MustDecode(&a.Raw)
}

// LessThan implements arithmetic comparison for Units
func (a Units) LessThan(b Units) bool {
	return a.Raw < b.Raw
}

// GreaterThan implements arithmetic comparison for Units
func (a Units) GreaterThan(b Units) bool {
	return a.Raw > b.Raw
}

// IsZero implements arithmetic comparison for Units
func (a Units) IsZero() bool {
	return a.Raw == 0
}

// ToUint64 converts the amount of units to uint64
func (a Units) ToUint64() uint64 {
	return a.Raw
}

// ToWhole converts micro-units into whole tokens for display.
func (a Units) ToWhole() float64 {
	return float64(a.Raw) / microPerWhole
}

// ToMicro converts a whole-token amount into micro-units, flooring fractions
// below one micro-unit. Negative or non-finite inputs yield zero and amounts
// beyond the representable range saturate.
func ToMicro(whole float64) Units {
	if math.IsNaN(whole) || whole <= 0 {
		return Units{}
	}
	micro := math.Floor(whole * microPerWhole)
	if micro >= math.MaxUint64 {
		return Units{Raw: math.MaxUint64}
	}
	return Units{Raw: uint64(micro)}
}

// SubSaturate subtracts b from a, returning zero on underflow.
func (round Round) SubSaturate(x Round) Round {
	if round < x {
		return 0
	}
	return round - x
}
