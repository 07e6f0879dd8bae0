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

// Package ledger is the single entry point to the stream ledger. Every
// operation runs under the ledger lock as one atomic transition: its writes
// are buffered and committed to the store together, or not at all.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/algorand/go-deadlock"

	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/bookkeeping"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
	"github.com/algorand/go-streampay/ledger/apply"
	"github.com/algorand/go-streampay/ledger/ledgercore"
	"github.com/algorand/go-streampay/ledger/store/trackerdb"
	"github.com/algorand/go-streampay/logging"
	"github.com/algorand/go-streampay/protocol"
	"github.com/algorand/go-streampay/util/metrics"
)

// Ledger owns the stream table and the external balances.
type Ledger struct {
	// mu serializes operations and guards nextID and lastRound.
	mu deadlock.RWMutex

	store    trackerdb.Store
	clock    Clock
	verifier apply.TermsVerifier
	log      logging.Logger
	metrics  *metricsTracker

	genesisID   string
	genesisHash crypto.Digest

	nextID    streams.StreamID
	lastRound basics.Round
}

// Receipt describes the effect of an executed transaction.
type Receipt struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Txid      transactions.Txid      `codec:"txid"`
	Type      protocol.TxType        `codec:"type"`
	Round     basics.Round           `codec:"round"`
	StreamID  streams.StreamID       `codec:"sid"`
	Amount    basics.Units           `codec:"amt"`
	Transfers []ledgercore.Transfer  `codec:"transfers,allocbound=-"`
}

// OpenLedger seeds store from genesis on first use and loads the ledger state.
// The ledger takes ownership of store. A nil verifier checks ed25519
// signatures; a nil registry gets a private one.
func OpenLedger(ctx context.Context, log logging.Logger, store trackerdb.Store, genesis bookkeeping.Genesis,
	clock Clock, verifier apply.TermsVerifier, reg *metrics.Registry) (*Ledger, error) {
	if err := genesis.Validate(); err != nil {
		return nil, fmt.Errorf("invalid genesis: %w", err)
	}
	balances, err := genesis.Balances()
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(ctx, genesis.ID(), genesis.Round, balances); err != nil {
		return nil, fmt.Errorf("initializing ledger store: %w", err)
	}
	meta, err := store.Meta(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading ledger store: %w", err)
	}
	escrowed, err := store.LookupAccount(ctx, streams.EscrowAddress)
	if err != nil {
		return nil, fmt.Errorf("reading escrow balance: %w", err)
	}

	if verifier == nil {
		verifier = apply.Ed25519Verifier{}
	}
	if reg == nil {
		reg = metrics.MakeRegistry()
	}
	l := &Ledger{
		store:       store,
		clock:       clock,
		verifier:    verifier,
		log:         log,
		metrics:     makeMetricsTracker(reg),
		genesisID:   meta.GenesisID,
		genesisHash: genesis.Hash(),
		nextID:      meta.NextStreamID,
		lastRound:   meta.Round,
	}
	l.metrics.loaded(meta.Round, meta.NextStreamID, escrowed)
	log.Infof("ledger %s opened at round %d with %d streams", l.genesisID, meta.Round, meta.NextStreamID)
	return l, nil
}

// Close releases the store.
func (l *Ledger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.metrics.close()
	l.store.Close()
}

// GenesisID is the identifier of the network the ledger belongs to.
func (l *Ledger) GenesisID() string {
	return l.genesisID
}

// GenesisHash is the digest of the genesis the ledger was opened with.
func (l *Ledger) GenesisHash() crypto.Digest {
	return l.genesisHash
}

// now is the round operations are evaluated at. The clock is not allowed to
// read earlier than the last committed operation.
func (l *Ledger) now() basics.Round {
	rnd := l.clock.Round()
	if rnd < l.lastRound {
		return l.lastRound
	}
	return rnd
}

// Round returns the round an operation submitted now would be evaluated at.
func (l *Ledger) Round() basics.Round {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.now()
}

// LastRound returns the round of the last committed operation.
func (l *Ledger) LastRound() basics.Round {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastRound
}

// transact evaluates fn over a copy-on-write view and commits what it wrote.
// A failing fn leaves the store untouched.
func (l *Ledger) transact(ctx context.Context, op protocol.TxType, caller basics.Address, fn func(cb *roundCowState) error) (ledgercore.StateDelta, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cb := makeRoundCowState(ctx, l.store, l.now(), l.nextID)
	if err := fn(cb); err != nil {
		l.metrics.rejected(string(op), err)
		var dup ledgercore.TransactionInLedgerError
		if kind, ok := ledgercore.KindOf(err); ok {
			l.log.With("op", op).With("caller", caller).With("kind", kind).Infof("operation rejected: %v", err)
		} else if errors.As(err, &dup) {
			l.log.With("op", op).With("caller", caller).Infof("replay rejected: %v", err)
		} else {
			l.log.With("op", op).With("caller", caller).Warnf("operation failed: %v", err)
		}
		return ledgercore.StateDelta{}, err
	}

	delta := cb.deltas()
	if !delta.IsEmpty() {
		if err := l.store.Commit(ctx, delta); err != nil {
			l.metrics.rejected(string(op), err)
			l.log.With("op", op).Errorf("committing delta at round %d failed: %v", delta.Round, err)
			return ledgercore.StateDelta{}, fmt.Errorf("commit %s: %w", op, err)
		}
		l.nextID = delta.NextStreamID
		l.lastRound = delta.Round
	}
	l.metrics.committed(string(op), delta)

	if l.log.IsLevelEnabled(logging.Debug) {
		l.log.WithFields(logging.Fields{
			"op":        op,
			"caller":    caller,
			"round":     delta.Round,
			"streams":   len(delta.Streams),
			"transfers": delta.Transfers,
		}).Debug("operation committed")
	}
	return delta, nil
}

// Open locks deposit from sender into a new stream paying recipient
// paymentPerBlock over tf, and returns the id of the stream.
func (l *Ledger) Open(ctx context.Context, sender, recipient basics.Address, deposit basics.Units, tf streams.Timeframe, paymentPerBlock basics.Units) (id streams.StreamID, err error) {
	_, err = l.transact(ctx, protocol.OpenStreamTx, sender, func(cb *roundCowState) (err error) {
		id, err = apply.Open(cb, sender, recipient, deposit, tf, paymentPerBlock)
		return
	})
	return
}

// Refuel adds amount from caller, who must be the sender, to stream id.
func (l *Ledger) Refuel(ctx context.Context, id streams.StreamID, caller basics.Address, amount basics.Units) error {
	_, err := l.transact(ctx, protocol.RefuelStreamTx, caller, func(cb *roundCowState) error {
		return apply.Refuel(cb, id, caller, amount)
	})
	return err
}

// Withdraw pays caller, who must be the recipient, everything owed on stream
// id and returns the amount paid.
func (l *Ledger) Withdraw(ctx context.Context, id streams.StreamID, caller basics.Address) (paid basics.Units, err error) {
	_, err = l.transact(ctx, protocol.WithdrawStreamTx, caller, func(cb *roundCowState) (err error) {
		paid, err = apply.Withdraw(cb, id, caller)
		return
	})
	return
}

// Refund returns the unvestable excess of stream id to caller, who must be
// the sender, and returns the amount returned.
func (l *Ledger) Refund(ctx context.Context, id streams.StreamID, caller basics.Address) (excess basics.Units, err error) {
	_, err = l.transact(ctx, protocol.RefundStreamTx, caller, func(cb *roundCowState) (err error) {
		excess, err = apply.Refund(cb, id, caller)
		return
	})
	return
}

// UpdateDetails replaces the rate and timeframe of stream id with terms
// signed by the counterparty of caller.
func (l *Ledger) UpdateDetails(ctx context.Context, id streams.StreamID, caller basics.Address, paymentPerBlock basics.Units,
	tf streams.Timeframe, signer basics.Address, sig crypto.Signature) error {
	_, err := l.transact(ctx, protocol.UpdateStreamTx, caller, func(cb *roundCowState) error {
		return apply.UpdateDetails(cb, l.verifier, id, caller, paymentPerBlock, tf, signer, sig)
	})
	return err
}

// Execute authenticates a signed envelope and performs the operation it
// encodes on behalf of its sender. The envelope must be alive at the
// evaluation round, and its txid is stored with the operation's writes until
// that round passes its LastValid, so an envelope executes at most once.
func (l *Ledger) Execute(ctx context.Context, stxn transactions.SignedTxn) (Receipt, error) {
	tx := stxn.Txn
	if err := stxn.Verify(); err != nil {
		return Receipt{}, &ledgercore.UnauthorizedError{StreamID: tx.StreamID, Caller: tx.Sender, Role: "authenticated sender"}
	}
	if err := tx.WellFormed(); err != nil {
		var malformed *transactions.MalformedTxnError
		if errors.As(err, &malformed) {
			return Receipt{}, ledgercore.MakeInvalidArgumentError(malformed.Field, malformed.Err)
		}
		return Receipt{}, err
	}

	txid := stxn.ID()
	var ad apply.ApplyData
	delta, err := l.transact(ctx, tx.Type, tx.Sender, func(cb *roundCowState) (err error) {
		if err = tx.Alive(cb.Round()); err != nil {
			return ledgercore.MakeInvalidArgumentError("fv", err)
		}
		if err = cb.addTx(txid, tx.LastValid); err != nil {
			return err
		}
		ad, err = apply.Txn(tx, cb, l.verifier)
		return
	})
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{
		Txid:      txid,
		Type:      tx.Type,
		Round:     delta.Round,
		StreamID:  ad.StreamID,
		Amount:    ad.Amount,
		Transfers: delta.Transfers,
	}, nil
}

// GetStream returns the stream with the given id.
func (l *Ledger) GetStream(ctx context.Context, id streams.StreamID) (streams.Stream, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lookupStream(ctx, id)
}

func (l *Ledger) lookupStream(ctx context.Context, id streams.StreamID) (streams.Stream, error) {
	s, err := l.store.LookupStream(ctx, id)
	if errors.Is(err, trackerdb.ErrNotFound) {
		return streams.Stream{}, &ledgercore.StreamNotFoundError{StreamID: id}
	}
	return s, err
}

// LatestStreamID returns the id the next opened stream will receive, which
// is also the number of streams opened so far.
func (l *Ledger) LatestStreamID() streams.StreamID {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.nextID
}

// BalanceOf returns what who can currently claim from stream id: the owed
// amount for the recipient, the not yet vested balance for the sender and
// zero for anyone else.
func (l *Ledger) BalanceOf(ctx context.Context, id streams.StreamID, who basics.Address) (basics.Units, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, err := l.lookupStream(ctx, id)
	if err != nil {
		return basics.Units{}, err
	}
	return s.BalanceOf(who, l.now()), nil
}

// AccountBalance returns the transferable balance of addr.
func (l *Ledger) AccountBalance(ctx context.Context, addr basics.Address) (basics.Units, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.LookupAccount(ctx, addr)
}

// BlockDelta returns how many rounds of tf have elapsed.
func (l *Ledger) BlockDelta(tf streams.Timeframe) uint64 {
	return tf.BlockDelta(l.Round())
}

// HashTerms returns the digest a counterparty signs to consent to new terms.
func (l *Ledger) HashTerms(id streams.StreamID, paymentPerBlock basics.Units, tf streams.Timeframe) crypto.Digest {
	return streams.HashTerms(id, paymentPerBlock, tf)
}

// ValidateSignature reports whether signer signed digest.
func (l *Ledger) ValidateSignature(digest crypto.Digest, sig crypto.Signature, signer basics.Address) bool {
	return l.verifier.VerifyTerms(digest, sig, signer)
}
