package service

import (
	"github.com/hance08/banksim/internal/bank"
	"github.com/shopspring/decimal"
)

// BankSettings names the scalars ConfigureBank changes. Nil fields are kept.
type BankSettings struct {
	InterestRate    *decimal.Decimal
	CreditFee       *decimal.Decimal
	SuspiciousLimit *decimal.Decimal
}

func (s *Service) NewBank(name string, cfg bank.Config) error {
	_, err := s.Env.Banks.New(name, cfg)
	return s.result("new bank", err, "bank", name,
		"interest_rate", cfg.InterestRate.String(),
		"credit_fee", cfg.CreditFee.String(),
		"suspicious_limit", cfg.SuspiciousLimit.String())
}

// ConfigureBank changes a bank's scalars. Accounts opened afterwards get the
// new values; existing accounts pick up a new limit on their next client
// update. Either every given field is applied or none is.
func (s *Service) ConfigureBank(name string, set BankSettings) error {
	args := []any{"bank", name}

	b, err := s.Env.Banks.Get(name)
	if err != nil {
		return s.result("configure bank", err, args...)
	}

	next := b.Config()
	if set.InterestRate != nil {
		next.InterestRate = *set.InterestRate
		args = append(args, "interest_rate", set.InterestRate.String())
	}
	if set.CreditFee != nil {
		next.CreditFee = *set.CreditFee
		args = append(args, "credit_fee", set.CreditFee.String())
	}
	if set.SuspiciousLimit != nil {
		next.SuspiciousLimit = *set.SuspiciousLimit
		args = append(args, "suspicious_limit", set.SuspiciousLimit.String())
	}
	if err := next.Validate(); err != nil {
		return s.result("configure bank", err, args...)
	}

	if set.InterestRate != nil {
		err = b.SetInterestRate(next.InterestRate)
	}
	if err == nil && set.CreditFee != nil {
		err = b.SetCreditFee(next.CreditFee)
	}
	if err == nil && set.SuspiciousLimit != nil {
		err = b.SetSuspiciousLimit(next.SuspiciousLimit)
	}
	return s.result("configure bank", err, args...)
}

func (s *Service) Bank(name string) (*bank.Bank, error) {
	return s.Env.Banks.Get(name)
}

func (s *Service) BankNames() []string {
	return s.Env.Banks.Names()
}

// AddToBlacklist bans a client at one bank. Listing a client twice is a no-op.
func (s *Service) AddToBlacklist(bankName, clientID string) error {
	b, err := s.Env.Banks.Get(bankName)
	if err != nil {
		return s.result("blacklist", err, "bank", bankName, "client", clientID)
	}
	if _, err := s.Clients.Get(clientID); err != nil {
		return s.result("blacklist", err, "bank", bankName, "client", clientID)
	}

	b.AddToBlacklist(clientID)
	return s.result("blacklist", nil, "bank", bankName, "client", clientID)
}

// IsBlacklisted reports whether the named bank bans the client.
func (s *Service) IsBlacklisted(bankName, clientID string) (bool, error) {
	b, err := s.Env.Banks.Get(bankName)
	if err != nil {
		return false, err
	}
	return b.IsBlacklisted(clientID), nil
}
