package views

import (
	"time"

	"github.com/hance08/banksim/internal/constants"
	"github.com/hance08/banksim/internal/ledger"
	"github.com/hance08/banksim/internal/store"
	"github.com/hance08/banksim/internal/utils"
)

// outside marks the missing endpoint of a deposit or withdrawal.
const outside = "(client)"

// LedgerItems converts live ledger entries. label renders an account id, nil
// means the short id.
func LedgerItems(txs []ledger.Transaction, label func(string) string) []TransactionListItem {
	if label == nil {
		label = utils.ShortID
	}

	items := make([]TransactionListItem, 0, len(txs))
	for _, tx := range txs {
		items = append(items, TransactionListItem{
			Seq:    tx.Seq,
			Time:   tx.At.Format(constants.DateTimeFormat),
			Kind:   tx.Kind.String(),
			From:   endpoint(tx.Source, label),
			To:     endpoint(tx.Dest, label),
			Amount: utils.FormatAmount(tx.Amount),
		})
	}
	return items
}

// StoreItems converts transactions read back from a saved run.
func StoreItems(txs []*store.Transaction) []TransactionListItem {
	items := make([]TransactionListItem, 0, len(txs))
	for _, tx := range txs {
		amount := tx.Amount
		if d, err := utils.ParseAmount(tx.Amount); err == nil {
			amount = utils.FormatAmount(d)
		}

		items = append(items, TransactionListItem{
			Seq:    tx.Seq,
			Time:   time.Unix(tx.OccurredAt, 0).UTC().Format(constants.DateTimeFormat),
			Kind:   tx.Kind,
			From:   endpointPtr(tx.SourceID),
			To:     endpointPtr(tx.DestID),
			Amount: amount,
		})
	}
	return items
}

func endpoint(id string, label func(string) string) string {
	if id == "" {
		return outside
	}
	return label(id)
}

func endpointPtr(id *string) string {
	if id == nil {
		return outside
	}
	return utils.ShortID(*id)
}
