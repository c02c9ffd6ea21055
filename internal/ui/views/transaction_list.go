package views

import (
	"fmt"

	"github.com/pterm/pterm"
)

type TransactionListItem struct {
	Seq    int64
	Time   string
	Kind   string
	From   string
	To     string
	Amount string
}

type TransactionListView struct{}

func NewTransactionListView() *TransactionListView {
	return &TransactionListView{}
}

func (v *TransactionListView) Render(items []TransactionListItem, limit int) error {
	if len(items) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	if limit > 0 {
		pterm.DefaultSection.Printf("Ledger (limit: %d)", limit)
	} else {
		pterm.DefaultSection.Printf("Ledger")
	}

	tableData := pterm.TableData{
		{"#", "Time", "Kind", "From", "To", "Amount"},
	}

	for _, item := range items {
		var coloredKind, coloredAmount string

		switch item.Kind {
		case "client_to_account":
			coloredKind = pterm.Green(item.Kind)
			coloredAmount = pterm.Green(item.Amount)
		case "account_to_client":
			coloredKind = pterm.Red(item.Kind)
			coloredAmount = pterm.Red(item.Amount)
		case "account_to_account":
			coloredKind = pterm.Blue(item.Kind)
			coloredAmount = pterm.Blue(item.Amount)
		default:
			coloredKind = item.Kind
			coloredAmount = item.Amount
		}

		tableData = append(tableData, []string{
			fmt.Sprintf("%d", item.Seq),
			item.Time,
			coloredKind,
			item.From,
			item.To,
			coloredAmount,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(items))
	return nil
}
