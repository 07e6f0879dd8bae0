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

package node

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/algorand/go-deadlock"
	"golang.org/x/crypto/blake2b"

	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/data/transactions"
)

// txSaltedCache remembers recently submitted transaction ids. It keeps two
// pages of up to maxSize entries: when the current page fills up it becomes
// the previous page and the oldest page is dropped. Keys are blake2b hashes
// of the id with a per-page salt, so remembered ids cannot be enumerated
// from the map layout.
type txSaltedCache struct {
	mu deadlock.RWMutex

	cur  map[crypto.Digest]struct{}
	prev map[crypto.Digest]struct{}

	curSalt  [8]byte
	prevSalt [8]byte

	maxSize int
}

func makeSaltedCache(size int) *txSaltedCache {
	c := &txSaltedCache{
		cur:     map[crypto.Digest]struct{}{},
		maxSize: size,
	}
	c.moreSalt()
	return c
}

// moreSalt updates salt value used for hashing
// locking semantic: write lock must be held
func (c *txSaltedCache) moreSalt() {
	binary.LittleEndian.PutUint64(c.curSalt[:], crypto.RandUint64())
}

func saltedKey(txid transactions.Txid, salt [8]byte) crypto.Digest {
	var buf [crypto.DigestSize + 8]byte
	copy(buf[:], txid[:])
	copy(buf[crypto.DigestSize:], salt[:])
	return crypto.Digest(blake2b.Sum256(buf[:]))
}

// innerSwap rotates cache pages and update the salt used.
// locking semantic: write lock must be held
func (c *txSaltedCache) innerSwap() {
	c.prevSalt = c.curSalt
	c.prev = c.cur
	c.cur = make(map[crypto.Digest]struct{}, len(c.prev))
	c.moreSalt()
}

// innerCheck returns the key txid has in the page holding it, or its key
// in the current page when no page does.
// locking semantic: read lock must be held
func (c *txSaltedCache) innerCheck(txid transactions.Txid) (crypto.Digest, bool) {
	d := saltedKey(txid, c.curSalt)
	if _, found := c.cur[d]; found {
		return d, true
	}
	if c.prev != nil {
		pd := saltedKey(txid, c.prevSalt)
		if _, found := c.prev[pd]; found {
			return pd, true
		}
	}
	return d, false
}

// CheckAndPut adds txid into the cache and reports whether it was already there.
func (c *txSaltedCache) CheckAndPut(txid transactions.Txid) bool {
	c.mu.RLock()
	_, found := c.innerCheck(txid)
	c.mu.RUnlock()
	if found {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// the salt may have changed or another submission may have won the race
	d, found := c.innerCheck(txid)
	if found {
		return true
	}
	if len(c.cur) >= c.maxSize {
		c.innerSwap()
		d = saltedKey(txid, c.curSalt)
	}
	c.cur[d] = struct{}{}
	return false
}

// Delete forgets txid, so a rejected transaction may be submitted again.
func (c *txSaltedCache) Delete(txid transactions.Txid) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cur, saltedKey(txid, c.curSalt))
	if c.prev != nil {
		delete(c.prev, saltedKey(txid, c.prevSalt))
	}
}

// Len returns size of a cache
func (c *txSaltedCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cur) + len(c.prev)
}

// Remix rotates the pages on schedule.
func (c *txSaltedCache) Remix() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.innerSwap()
}

// salter remixes the cache every refreshInterval until ctx is done.
func (c *txSaltedCache) salter(ctx context.Context, refreshInterval time.Duration) error {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.Remix()
		case <-ctx.Done():
			return nil
		}
	}
}
