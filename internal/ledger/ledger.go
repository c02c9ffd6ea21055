// Package ledger records every funds movement. It never touches balances:
// callers mutate them only after Record succeeds.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hance08/banksim/internal/clock"
	"github.com/shopspring/decimal"
)

var ErrNotVerified = errors.New("not verified")

// Verifier approves or vetoes a pending transaction.
type Verifier interface {
	Verify(tx Transaction) bool
}

// Endpoint is one side of a transaction: an account and the bank that must
// verify transfers touching it.
type Endpoint interface {
	ID() string
	Verifier() Verifier
}

type Ledger struct {
	mu    sync.RWMutex
	clock clock.Clock
	txs   []Transaction
}

func New(c clock.Clock) *Ledger {
	return &Ledger{clock: c}
}

// Record builds a transaction stamped with the current instant and appends it.
// Account-to-account transfers must be approved by the banks of both
// endpoints first; a single veto returns ErrNotVerified and nothing is appended.
// A nil endpoint is an absent side. Passing endpoints that contradict kind panics.
func (l *Ledger) Record(source, dest Endpoint, amount decimal.Decimal, kind Kind) (Transaction, error) {
	tx := Transaction{
		Amount: amount,
		Kind:   kind,
		At:     l.clock.Now(),
	}
	if source != nil {
		tx.Source = source.ID()
	}
	if dest != nil {
		tx.Dest = dest.ID()
	}
	if err := tx.validate(); err != nil {
		panic(err)
	}

	if kind == AccountToAccount {
		if !verify(source, tx) {
			return Transaction{}, fmt.Errorf("source bank rejected transfer %s -> %s: %w", tx.Source, tx.Dest, ErrNotVerified)
		}
		if !verify(dest, tx) {
			return Transaction{}, fmt.Errorf("destination bank rejected transfer %s -> %s: %w", tx.Source, tx.Dest, ErrNotVerified)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	tx.Seq = int64(len(l.txs)) + 1
	l.txs = append(l.txs, tx)
	return tx, nil
}

func verify(e Endpoint, tx Transaction) bool {
	v := e.Verifier()
	return v != nil && v.Verify(tx)
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.txs)
}

// Transactions returns a copy of the committed history in commit order.
func (l *Ledger) Transactions() []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}

// ByAccount returns the committed transactions touching accountID.
func (l *Ledger) ByAccount(accountID string) []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Transaction
	for _, tx := range l.txs {
		if tx.Involves(accountID) {
			out = append(out, tx)
		}
	}
	return out
}
