package service

import (
	"fmt"

	"github.com/hance08/banksim/internal/bank"
	"github.com/shopspring/decimal"
)

// NewAccount opens an account of kind ("debit", "deposit" or "credit") for the
// client at the named bank.
func (s *Service) NewAccount(clientID, bankName, kind string, p bank.AccountParams) (string, error) {
	args := []any{"client", clientID, "bank", bankName, "kind", kind}

	k, err := bank.ParseKind(kind)
	if err != nil {
		return "", s.result("open", err, args...)
	}
	info, err := s.Clients.Info(clientID)
	if err != nil {
		return "", s.result("open", err, args...)
	}
	b, err := s.Env.Banks.Get(bankName)
	if err != nil {
		return "", s.result("open", err, args...)
	}

	id, err := b.NewAccount(info, k, p)
	return id, s.result("open", err, append(args, "account", id)...)
}

// TopUp deposits money from outside. Anyone may top up any account.
func (s *Service) TopUp(accountID string, amount decimal.Decimal) error {
	args := []any{"account", accountID, "amount", amount.String()}

	acc, err := s.Env.Accounts.Get(accountID)
	if err != nil {
		return s.result("topup", err, args...)
	}
	return s.result("topup", acc.Deposit(amount), args...)
}

func (s *Service) Withdraw(clientID, accountID string, amount decimal.Decimal) error {
	args := []any{"client", clientID, "account", accountID, "amount", amount.String()}

	acc, err := s.owned(clientID, accountID)
	if err != nil {
		return s.result("withdraw", err, args...)
	}
	return s.result("withdraw", acc.Withdraw(amount), args...)
}

func (s *Service) Send(clientID, fromID, toID string, amount decimal.Decimal) error {
	args := []any{"client", clientID, "from", fromID, "to", toID, "amount", amount.String()}

	acc, err := s.owned(clientID, fromID)
	if err != nil {
		return s.result("send", err, args...)
	}
	return s.result("send", acc.Send(toID, amount), args...)
}

// CloseAccount removes an account and releases its id.
func (s *Service) CloseAccount(clientID, accountID string) error {
	args := []any{"client", clientID, "account", accountID}

	acc, err := s.owned(clientID, accountID)
	if err != nil {
		return s.result("close", err, args...)
	}
	b, err := s.Env.Banks.Get(acc.BankName())
	if err != nil {
		return s.result("close", err, args...)
	}
	return s.result("close", b.CloseAccount(accountID), args...)
}

func (s *Service) Account(accountID string) (bank.Snapshot, error) {
	acc, err := s.Env.Accounts.Get(accountID)
	if err != nil {
		return bank.Snapshot{}, err
	}
	return acc.Snapshot(), nil
}

// Accounts lists every account of every bank, banks in name order.
func (s *Service) Accounts() []bank.Snapshot {
	var out []bank.Snapshot
	for _, b := range s.Env.Banks.All() {
		out = append(out, b.Accounts()...)
	}
	return out
}

func (s *Service) owned(clientID, accountID string) (*bank.Account, error) {
	acc, err := s.Env.Accounts.Get(accountID)
	if err != nil {
		return nil, err
	}
	if acc.ClientID() != clientID {
		return nil, fmt.Errorf("account %s, client %s: %w", accountID, clientID, ErrNotOwner)
	}
	return acc, nil
}
