package scenario

import (
	"errors"

	"github.com/hance08/banksim/internal/bank"
	"github.com/hance08/banksim/internal/client"
	"github.com/hance08/banksim/internal/service"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// expectations maps the names usable in expect_error to the errors they
// accept.
var expectations = map[string][]error{
	"insufficient_funds":  {bank.ErrInsufficientFunds},
	"insufficient_cap":    {bank.ErrInsufficientCap},
	"withdraw_locked":     {bank.ErrWithdrawLocked},
	"not_verified":        {bank.ErrNotVerified},
	"unknown_kind":        {bank.ErrUnknownKind},
	"missing_param":       {bank.ErrMissingParam},
	"not_found":           {bank.ErrNotFound, client.ErrNotFound},
	"duplicate_name":      {bank.ErrDuplicateName},
	"invalid_amount":      {bank.ErrInvalidAmount},
	"same_account":        {bank.ErrSameAccount},
	"not_owner":           {service.ErrNotOwner},
	"client_has_accounts": {service.ErrClientHasAccounts},
	"invalid_config":      {bank.ErrInvalidConfig},
}

// ErrorNames lists the accepted expect_error values.
func ErrorNames() []string {
	names := maps.Keys(expectations)
	slices.Sort(names)
	return names
}

// ErrorName returns the expect_error name matching err, "" for nil and
// "other" for anything unnamed.
func ErrorName(err error) string {
	if err == nil {
		return ""
	}
	for _, name := range ErrorNames() {
		if matches(name, err) {
			return name
		}
	}
	return "other"
}

func matches(name string, err error) bool {
	for _, target := range expectations[name] {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
