package service

import (
	"github.com/hance08/banksim/internal/ledger"
)

// Transactions returns the committed ledger history, oldest first.
func (s *Service) Transactions() []ledger.Transaction {
	return s.Env.Ledger.Transactions()
}

// TransactionHistory returns the transactions touching one account.
func (s *Service) TransactionHistory(accountID string) ([]ledger.Transaction, error) {
	if _, err := s.Env.Accounts.Get(accountID); err != nil {
		return nil, err
	}
	return s.Env.Ledger.ByAccount(accountID), nil
}
