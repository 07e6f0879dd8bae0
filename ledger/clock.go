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

package ledger

import (
	"github.com/algorand/go-deadlock"

	"github.com/algorand/go-streampay/data/basics"
)

// Clock supplies the current time step. Successive calls never go backwards.
type Clock interface {
	Round() basics.Round
}

// SteppedClock is a Clock moved forward explicitly, by the node's round
// ticker or by tests.
type SteppedClock struct {
	mu    deadlock.Mutex
	round basics.Round
}

// MakeSteppedClock returns a clock reading start.
func MakeSteppedClock(start basics.Round) *SteppedClock {
	return &SteppedClock{round: start}
}

// Round implements Clock.
func (c *SteppedClock) Round() basics.Round {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.round
}

// Set moves the clock to rnd. Setting an earlier round has no effect; the
// round the clock reads afterwards is returned.
func (c *SteppedClock) Set(rnd basics.Round) basics.Round {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rnd > c.round {
		c.round = rnd
	}
	return c.round
}

// Advance moves the clock forward by n rounds and returns the new round.
func (c *SteppedClock) Advance(n uint64) basics.Round {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.round += basics.Round(n)
	return c.round
}
