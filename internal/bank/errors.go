package bank

import (
	"errors"

	"github.com/hance08/banksim/internal/ledger"
)

// Business outcomes. They are returned, never raised, and callers match them
// with errors.Is.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInsufficientCap   = errors.New("amount is higher than suspicious limit")
	ErrWithdrawLocked    = errors.New("withdraw not available before maturity")
	ErrNotVerified       = ledger.ErrNotVerified
	ErrUnknownKind       = errors.New("unknown account kind")
	ErrMissingParam      = errors.New("missing account parameter")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateName     = errors.New("bank name already taken")

	ErrInvalidAmount = errors.New("amount must be > 0")
	ErrSameAccount   = errors.New("source and destination are the same account")
	ErrInvalidConfig = errors.New("invalid bank configuration")
)
