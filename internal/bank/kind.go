package bank

import (
	"fmt"
	"strings"
)

type Kind int

const (
	Debit Kind = iota + 1
	Deposit
	Credit
)

var kindNames = map[Kind]string{
	Debit:   "debit",
	Deposit: "deposit",
	Credit:  "credit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind maps "debit", "deposit" or "credit" (any case) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debit":
		return Debit, nil
	case "deposit":
		return Deposit, nil
	case "credit":
		return Credit, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
	}
}
