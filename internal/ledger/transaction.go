package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Kind int

const (
	AccountToAccount Kind = iota + 1
	ClientToAccount
	AccountToClient
)

func (k Kind) String() string {
	switch k {
	case AccountToAccount:
		return "account_to_account"
	case ClientToAccount:
		return "client_to_account"
	case AccountToClient:
		return "account_to_client"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Transaction is an immutable record of one funds movement. An empty Source
// means the money came from outside (deposit), an empty Dest means it left
// (withdrawal).
type Transaction struct {
	Seq    int64
	Source string
	Dest   string
	Amount decimal.Decimal
	Kind   Kind
	At     time.Time
}

func (t Transaction) HasSource() bool { return t.Source != "" }
func (t Transaction) HasDest() bool   { return t.Dest != "" }

// Involves reports whether accountID is either endpoint.
func (t Transaction) Involves(accountID string) bool {
	return accountID != "" && (t.Source == accountID || t.Dest == accountID)
}

func (t Transaction) validate() error {
	var ok bool
	switch t.Kind {
	case AccountToAccount:
		ok = t.HasSource() && t.HasDest()
	case ClientToAccount:
		ok = !t.HasSource() && t.HasDest()
	case AccountToClient:
		ok = t.HasSource() && !t.HasDest()
	default:
		return fmt.Errorf("unknown transaction kind %d", int(t.Kind))
	}
	if !ok {
		return fmt.Errorf("%s transaction with source=%q dest=%q", t.Kind, t.Source, t.Dest)
	}
	return nil
}
