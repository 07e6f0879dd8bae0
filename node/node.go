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

// Package node wires a ledger to its store, its round clock and the
// admission checks applied to submitted transactions.
package node

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/algorand/go-streampay/config"
	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/bookkeeping"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
	"github.com/algorand/go-streampay/ledger"
	"github.com/algorand/go-streampay/ledger/ledgercore"
	"github.com/algorand/go-streampay/ledger/store"
	"github.com/algorand/go-streampay/logging"
	"github.com/algorand/go-streampay/util/metrics"
)

// dupCacheRefresh is how often the dup cache rotates its salt regardless of load.
const dupCacheRefresh = 10 * time.Minute

var (
	errWrongNetwork = errors.New("transaction is for another network")
	errTooLongLived = errors.New("validity window longer than the node accepts")
)

// StatusReport represents the current basic status of the node
type StatusReport struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	LastRound      basics.Round     `codec:"last-round"`
	Round          basics.Round     `codec:"round"`
	GenesisID      string           `codec:"genesis-id"`
	GenesisHash    crypto.Digest    `codec:"genesis-hash"`
	LatestStreamID streams.StreamID `codec:"latest-stream-id"`
	Version        string           `codec:"version"`
}

// StreamNode runs a ledger over the configured store and admits signed
// transactions into it.
type StreamNode struct {
	log     logging.Logger
	config  config.Local
	genesis bookkeeping.Genesis

	ledger   *ledger.Ledger
	clock    *ledger.SteppedClock
	dupCache *txSaltedCache

	txnRejected *metrics.Counter
}

// MakeStreamNode opens the store inside dataDir and the ledger over it.
// A nil registry gets a private one.
func MakeStreamNode(log logging.Logger, dataDir string, cfg config.Local, genesis bookkeeping.Genesis, reg *metrics.Registry) (*StreamNode, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.StoreBackend, dataDir, log)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger store: %w", err)
	}
	if reg == nil {
		reg = metrics.MakeRegistry()
	}

	clock := ledger.MakeSteppedClock(genesis.Round)
	l, err := ledger.OpenLedger(context.Background(), log, st, genesis, clock, nil, reg)
	if err != nil {
		st.Close()
		return nil, err
	}
	// resume the clock where the previous run left it
	clock.Set(l.LastRound())

	node := &StreamNode{
		log:         log,
		config:      cfg,
		genesis:     genesis,
		ledger:      l,
		clock:       clock,
		dupCache:    makeSaltedCache(cfg.TxnDupCacheSize),
		txnRejected: metrics.MakeCounter(metrics.NodeTxnRejectedTotal, "reason"),
	}
	node.txnRejected.Register(reg)
	return node, nil
}

// Ledger exposes the node's ledger for queries.
func (node *StreamNode) Ledger() *ledger.Ledger {
	return node.ledger
}

// GenesisID returns the ID of the genesis node.
func (node *StreamNode) GenesisID() string {
	return node.genesis.ID()
}

// Run advances the ledger clock once per round interval and rotates the
// dup cache until ctx is done.
func (node *StreamNode) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return node.roundTicker(gctx, node.config.RoundInterval())
	})
	g.Go(func() error {
		return node.dupCache.salter(gctx, dupCacheRefresh)
	})
	return g.Wait()
}

func (node *StreamNode) roundTicker(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rnd := node.clock.Advance(1)
			node.log.Debugf("round %d", rnd)
		case <-ctx.Done():
			return nil
		}
	}
}

// Stop closes the ledger. Run must have returned.
func (node *StreamNode) Stop() {
	node.ledger.Close()
}

// Status returns a StatusReport structure reporting our status as Active and with our ledger's LastRound
func (node *StreamNode) Status() StatusReport {
	return StatusReport{
		LastRound:      node.ledger.LastRound(),
		Round:          node.ledger.Round(),
		GenesisID:      node.genesis.ID(),
		GenesisHash:    node.ledger.GenesisHash(),
		LatestStreamID: node.ledger.LatestStreamID(),
		Version:        config.GetCurrentVersion().String(),
	}
}

// SubmitTxn checks a signed transaction against the node's network, the
// current round and the recently seen transactions, then executes it.
func (node *StreamNode) SubmitTxn(ctx context.Context, stxn transactions.SignedTxn) (ledger.Receipt, error) {
	tx := stxn.Txn
	if tx.GenesisID != "" && tx.GenesisID != node.genesis.ID() {
		node.reject("network")
		return ledger.Receipt{}, ledgercore.MakeInvalidArgumentError("gen", fmt.Errorf("%w: %q", errWrongNetwork, tx.GenesisID))
	}
	if tx.LastValid >= tx.FirstValid && uint64(tx.LastValid-tx.FirstValid) > node.config.MaxTxnLife {
		node.reject("lifetime")
		return ledger.Receipt{}, ledgercore.MakeInvalidArgumentError("lv", errTooLongLived)
	}
	if err := tx.Alive(node.ledger.Round()); err != nil {
		node.reject("dead")
		return ledger.Receipt{}, ledgercore.MakeInvalidArgumentError("fv", err)
	}

	// The cache only turns away resubmissions early. The ledger keeps the
	// txids of executed envelopes in its store and rejects replays itself.
	txid := stxn.ID()
	if node.dupCache.CheckAndPut(txid) {
		node.reject("duplicate")
		return ledger.Receipt{}, ledgercore.TransactionInLedgerError{Txid: txid}
	}

	receipt, err := node.ledger.Execute(ctx, stxn)
	if err != nil {
		var dup ledgercore.TransactionInLedgerError
		if errors.As(err, &dup) {
			node.reject("duplicate")
			return ledger.Receipt{}, err
		}
		// a rejected transaction changed nothing; let it be retried
		node.dupCache.Delete(txid)
		return ledger.Receipt{}, err
	}
	return receipt, nil
}

func (node *StreamNode) reject(reason string) {
	node.txnRejected.Inc(map[string]string{"reason": reason})
}
