package bank

import (
	"fmt"
	"sync"
	"time"

	"github.com/hance08/banksim/internal/client"
	"github.com/hance08/banksim/internal/ledger"
	"github.com/shopspring/decimal"
)

const AccountIDSize = 32

// interestTerms is shared by debit and deposit accounts.
type interestTerms struct {
	rate   decimal.Decimal
	unpaid decimal.Decimal
}

func (t *interestTerms) accrue(balance decimal.Decimal) {
	t.unpaid = t.unpaid.Add(balance.Mul(t.rate))
}

// payout moves unpaid interest into the balance and returns the new balance.
func (t *interestTerms) payout(balance decimal.Decimal) decimal.Decimal {
	balance = balance.Add(t.unpaid)
	t.unpaid = decimal.Zero
	return balance
}

type depositTerms struct {
	interestTerms
	maturity          time.Time
	withdrawAvailable bool
}

type creditTerms struct {
	dailyFee decimal.Decimal
}

// Account is a tagged variant: kind selects which of debit, deposit or credit
// is set. id, bank, clientID and kind never change after creation; everything
// else is guarded by mu.
type Account struct {
	id       string
	bank     string
	clientID string
	kind     Kind
	env      *Env

	mu              sync.Mutex
	balance         decimal.Decimal
	suspicious      bool
	suspiciousLimit decimal.Decimal

	debit   *interestTerms
	deposit *depositTerms
	credit  *creditTerms
}

// Snapshot is a point-in-time copy of an account for display and export.
type Snapshot struct {
	ID                string
	Bank              string
	ClientID          string
	Kind              Kind
	Balance           decimal.Decimal
	Suspicious        bool
	SuspiciousLimit   decimal.Decimal
	InterestRate      decimal.Decimal
	UnpaidInterest    decimal.Decimal
	DailyFee          decimal.Decimal
	Maturity          time.Time
	WithdrawAvailable bool
}

func (a *Account) ID() string       { return a.id }
func (a *Account) BankName() string { return a.bank }
func (a *Account) ClientID() string { return a.clientID }
func (a *Account) Kind() Kind       { return a.kind }

// Verifier resolves the owning bank through the registry.
func (a *Account) Verifier() ledger.Verifier {
	b, err := a.env.Banks.Get(a.bank)
	if err != nil {
		return nil
	}
	return b
}

func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

func (a *Account) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := Snapshot{
		ID:              a.id,
		Bank:            a.bank,
		ClientID:        a.clientID,
		Kind:            a.kind,
		Balance:         a.balance,
		Suspicious:      a.suspicious,
		SuspiciousLimit: a.suspiciousLimit,
	}
	switch a.kind {
	case Debit:
		s.InterestRate = a.debit.rate
		s.UnpaidInterest = a.debit.unpaid
	case Deposit:
		s.InterestRate = a.deposit.rate
		s.UnpaidInterest = a.deposit.unpaid
		s.Maturity = a.deposit.maturity
		s.WithdrawAvailable = a.deposit.withdrawAvailable
	case Credit:
		s.DailyFee = a.credit.dailyFee
	}
	return s
}

// Deposit tops the account up with money from outside the system.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if err := checkAmount(amount); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkCap(amount); err != nil {
		return err
	}
	if _, err := a.env.Ledger.Record(nil, a, amount, ledger.ClientToAccount); err != nil {
		return err
	}
	a.balance = a.balance.Add(amount)
	return nil
}

// Withdraw pays money out to the client. The suspicious limit is checked
// before any kind-specific rule.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if err := checkAmount(amount); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkCap(amount); err != nil {
		return err
	}

	switch a.kind {
	case Debit:
		if err := a.checkFunds(amount); err != nil {
			return err
		}
	case Deposit:
		if !a.deposit.withdrawAvailable {
			return fmt.Errorf("account %s matures at %s: %w",
				a.id, a.deposit.maturity.Format(time.RFC3339), ErrWithdrawLocked)
		}
		if err := a.checkFunds(amount); err != nil {
			return err
		}
	case Credit:
		// credit balances may go negative
	default:
		panic(fmt.Sprintf("account %s has invalid kind %d", a.id, int(a.kind)))
	}

	if _, err := a.env.Ledger.Record(a, nil, amount, ledger.AccountToClient); err != nil {
		return err
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// Send transfers amount to the account destID. Both banks verify the transfer
// before either balance changes.
func (a *Account) Send(destID string, amount decimal.Decimal) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if destID == a.id {
		return ErrSameAccount
	}

	a.mu.Lock()
	err := a.checkFunds(amount)
	a.mu.Unlock()
	if err != nil {
		return err
	}

	dest, err := a.env.Accounts.Get(destID)
	if err != nil {
		return err
	}

	unlock := lockPair(a, dest)
	defer unlock()

	// the balance may have moved while no lock was held
	if err := a.checkFunds(amount); err != nil {
		return err
	}
	if _, err := a.env.Ledger.Record(a, dest, amount, ledger.AccountToAccount); err != nil {
		return err
	}
	a.balance = a.balance.Sub(amount)
	dest.balance = dest.balance.Add(amount)
	return nil
}

// Accrue applies one period of interest or fees as of now.
func (a *Account) Accrue(now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.kind {
	case Debit:
		a.debit.accrue(a.balance)
		if isPayoutDay(now) {
			a.balance = a.debit.payout(a.balance)
		}
	case Deposit:
		d := a.deposit
		d.accrue(a.balance)
		if !now.After(d.maturity) && isPayoutDay(now) {
			a.balance = d.payout(a.balance)
		}
		if !now.Before(d.maturity) {
			d.withdrawAvailable = true
		}
	case Credit:
		if a.balance.IsNegative() {
			a.balance = a.balance.Sub(a.credit.dailyFee)
		}
	default:
		panic(fmt.Sprintf("account %s has invalid kind %d", a.id, int(a.kind)))
	}
}

// UpdateClientInfo refreshes the suspicious flag and cap. Info for another
// client is a caller bug and panics.
func (a *Account) UpdateClientInfo(info client.Info, limit decimal.Decimal) {
	if info.ClientID != a.clientID {
		panic(fmt.Sprintf("client id must be equal: %s != %s", info.ClientID, a.clientID))
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.suspicious = info.Suspicious
	a.suspiciousLimit = limit
}

func (a *Account) checkCap(amount decimal.Decimal) error {
	if a.suspicious && amount.GreaterThan(a.suspiciousLimit) {
		return fmt.Errorf("%s > %s: %w", amount, a.suspiciousLimit, ErrInsufficientCap)
	}
	return nil
}

func (a *Account) checkFunds(amount decimal.Decimal) error {
	if a.balance.LessThan(amount) {
		return fmt.Errorf("account %s has %s, needs %s: %w", a.id, a.balance, amount, ErrInsufficientFunds)
	}
	return nil
}

func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%s: %w", amount, ErrInvalidAmount)
	}
	return nil
}

func isPayoutDay(now time.Time) bool {
	return now.Day() == 1
}

// lockPair locks two distinct accounts in id order.
func lockPair(a, b *Account) func() {
	first, second := a, b
	if b.id < a.id {
		first, second = b, a
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
