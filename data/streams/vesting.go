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

package streams

import (
	"github.com/algorand/go-streampay/data/basics"
)

// TotalVesting is the amount that vests over the whole window, ppb * (stop - start).
func (s Stream) TotalVesting() (basics.Units, bool) {
	return totalVesting(s.PaymentPerBlock, s.Timeframe)
}

func totalVesting(ppb basics.Units, tf Timeframe) (basics.Units, bool) {
	var ot basics.OverflowTracker
	total := ot.ScalarMulU(ppb, tf.Length())
	return total, ot.Overflowed
}

// Vested is the amount vested to the recipient at round now:
// ppb * (clamp(now, start, stop) - start). Terms are validated against
// overflow when written, so the product is exact; a corrupt record saturates.
func (s Stream) Vested(now basics.Round) basics.Units {
	var ot basics.OverflowTracker
	vested := ot.ScalarMulU(s.PaymentPerBlock, s.Timeframe.BlockDelta(now))
	if ot.Overflowed {
		return basics.Units{Raw: ^uint64(0)}
	}
	return vested
}

// Owed is what a withdrawal at round now pays out. Vesting beyond the locked
// balance is not payable, so an underfunded stream pays at most what it holds.
func (s Stream) Owed(now basics.Round) basics.Units {
	payable := basics.MinU(s.Vested(now), s.Balance)
	return basics.SubSaturateU(payable, s.WithdrawnBalance)
}

// Excess is the part of the balance that never vests: balance - vested(stop).
func (s Stream) Excess() basics.Units {
	return basics.SubSaturateU(s.Balance, s.Vested(s.Timeframe.StopBlock))
}

// BalanceOf reports the share of the stream that belongs to who at round now.
// The recipient owns what is owed to it; the sender owns what has not vested yet.
func (s Stream) BalanceOf(who basics.Address, now basics.Round) basics.Units {
	switch {
	case s.IsRecipient(who):
		return s.Owed(now)
	case s.IsSender(who):
		return basics.SubSaturateU(s.Balance, s.Vested(now))
	default:
		return basics.Units{}
	}
}

// Escrowed is what the stream still holds in escrow: balance - withdrawn.
func (s Stream) Escrowed() basics.Units {
	return basics.SubSaturateU(s.Balance, s.WithdrawnBalance)
}
