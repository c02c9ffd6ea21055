package bank

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hance08/banksim/internal/client"
	"github.com/hance08/banksim/internal/ledger"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultDepositTerm is used when a deposit account is opened without a maturity.
const DefaultDepositTerm = 365 * 24 * time.Hour

// Config holds the scalars a bank applies to newly opened accounts.
type Config struct {
	InterestRate    decimal.Decimal
	CreditFee       decimal.Decimal
	SuspiciousLimit decimal.Decimal
	DepositTerm     time.Duration
}

func (c Config) Validate() error {
	if c.InterestRate.IsNegative() {
		return fmt.Errorf("interest rate %s is negative: %w", c.InterestRate, ErrInvalidConfig)
	}
	if c.CreditFee.IsNegative() {
		return fmt.Errorf("credit fee %s is negative: %w", c.CreditFee, ErrInvalidConfig)
	}
	if !c.SuspiciousLimit.IsPositive() {
		return fmt.Errorf("suspicious limit %s must be > 0: %w", c.SuspiciousLimit, ErrInvalidConfig)
	}
	if c.DepositTerm < 0 {
		return fmt.Errorf("deposit term %s is negative: %w", c.DepositTerm, ErrInvalidConfig)
	}
	return nil
}

// AccountParams carries the kind-specific options of NewAccount. Deposit
// accounts require InitialFunds; the other fields fall back to bank defaults.
type AccountParams struct {
	InitialFunds *decimal.Decimal
	Maturity     *time.Time
	InterestRate *decimal.Decimal
}

type Bank struct {
	name string
	env  *Env

	mu        sync.RWMutex
	cfg       Config
	accounts  map[string][]*Account
	blacklist map[string]struct{}
}

func (b *Bank) Name() string { return b.name }

func (b *Bank) Config() Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cfg
}

func (b *Bank) SetInterestRate(rate decimal.Decimal) error {
	return b.updateConfig(func(c *Config) { c.InterestRate = rate })
}

func (b *Bank) SetCreditFee(fee decimal.Decimal) error {
	return b.updateConfig(func(c *Config) { c.CreditFee = fee })
}

func (b *Bank) SetSuspiciousLimit(limit decimal.Decimal) error {
	return b.updateConfig(func(c *Config) { c.SuspiciousLimit = limit })
}

func (b *Bank) updateConfig(fn func(*Config)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	next := b.cfg
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	b.cfg = next
	return nil
}

// NewAccount opens an account of the given kind for the client, seeded with
// the bank's current configuration, and returns its id.
func (b *Bank) NewAccount(info client.Info, kind Kind, p AccountParams) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("kind %d: %w", int(kind), ErrUnknownKind)
	}

	cfg := b.Config()
	rate := cfg.InterestRate
	if p.InterestRate != nil {
		if p.InterestRate.IsNegative() {
			return "", fmt.Errorf("interest rate %s is negative: %w", p.InterestRate, ErrInvalidConfig)
		}
		rate = *p.InterestRate
	}

	acc := &Account{
		bank:            b.name,
		clientID:        info.ClientID,
		kind:            kind,
		env:             b.env,
		balance:         decimal.Zero,
		suspicious:      info.Suspicious,
		suspiciousLimit: cfg.SuspiciousLimit,
	}

	switch kind {
	case Debit:
		acc.debit = &interestTerms{rate: rate, unpaid: decimal.Zero}
	case Deposit:
		if p.InitialFunds == nil {
			return "", fmt.Errorf("deposit account needs initial funds: %w", ErrMissingParam)
		}
		if err := checkAmount(*p.InitialFunds); err != nil {
			return "", err
		}
		maturity := b.env.Clock.Now().Add(cfg.DepositTerm)
		if p.Maturity != nil {
			maturity = *p.Maturity
		}
		acc.deposit = &depositTerms{
			interestTerms: interestTerms{rate: rate, unpaid: decimal.Zero},
			maturity:      maturity,
		}
	case Credit:
		acc.credit = &creditTerms{dailyFee: cfg.CreditFee}
	}

	acc.id = b.env.IDs.Allocate(AccountIDSize)

	if kind == Deposit {
		if _, err := b.env.Ledger.Record(nil, acc, *p.InitialFunds, ledger.ClientToAccount); err != nil {
			b.env.IDs.Release(acc.id)
			return "", err
		}
		acc.balance = *p.InitialFunds
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[info.ClientID] = append(b.accounts[info.ClientID], acc)
	b.env.Accounts.add(acc)

	return acc.id, nil
}

// UpdateClientInfo pushes a client's suspicious flag, and the bank's current
// cap, to every account the client holds here.
func (b *Bank) UpdateClientInfo(info client.Info) {
	b.mu.RLock()
	accounts := slices.Clone(b.accounts[info.ClientID])
	limit := b.cfg.SuspiciousLimit
	b.mu.RUnlock()

	for _, acc := range accounts {
		acc.UpdateClientInfo(info, limit)
	}
}

func (b *Bank) AddToBlacklist(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blacklist[clientID] = struct{}{}
}

func (b *Bank) IsBlacklisted(clientID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.blacklist[clientID]
	return ok
}

func (b *Bank) Blacklist() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := maps.Keys(b.blacklist)
	slices.Sort(ids)
	return ids
}

// Verify rejects a transaction if either endpoint belongs to a client on this
// bank's blacklist.
func (b *Bank) Verify(tx ledger.Transaction) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, accountID := range []string{tx.Source, tx.Dest} {
		if accountID == "" {
			continue
		}
		owner, ok := b.env.Accounts.Owner(accountID)
		if !ok {
			continue
		}
		if _, banned := b.blacklist[owner]; banned {
			return false
		}
	}
	return true
}

// SweepAccrual runs one accrual period over every account of the bank.
func (b *Bank) SweepAccrual(now time.Time) {
	for _, acc := range b.allAccounts() {
		acc.Accrue(now)
	}
}

// Accounts returns snapshots of every account, ordered by client then id.
func (b *Bank) Accounts() []Snapshot {
	accounts := b.allAccounts()
	out := make([]Snapshot, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, acc.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ClientID != out[j].ClientID {
			return out[i].ClientID < out[j].ClientID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (b *Bank) ClientAccounts(clientID string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var ids []string
	for _, acc := range b.accounts[clientID] {
		ids = append(ids, acc.id)
	}
	return ids
}

// CloseAccount removes the account from the bank and releases its id.
func (b *Bank) CloseAccount(accountID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for clientID, accounts := range b.accounts {
		idx := slices.IndexFunc(accounts, func(a *Account) bool { return a.id == accountID })
		if idx < 0 {
			continue
		}
		accounts = slices.Delete(accounts, idx, idx+1)
		if len(accounts) == 0 {
			delete(b.accounts, clientID)
		} else {
			b.accounts[clientID] = accounts
		}
		return b.env.Accounts.remove(accountID)
	}
	return fmt.Errorf("account %s at bank %s: %w", accountID, b.name, ErrNotFound)
}

func (b *Bank) allAccounts() []*Account {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []*Account
	for _, accounts := range b.accounts {
		out = append(out, accounts...)
	}
	return out
}
