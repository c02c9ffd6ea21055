package views

import (
	"github.com/hance08/banksim/internal/constants"
	"github.com/hance08/banksim/internal/utils"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

type AccountListItem struct {
	ID         string
	Alias      string
	Bank       string
	Client     string
	Kind       string
	Balance    decimal.Decimal
	Suspicious bool
}

type AccountListView struct{}

func NewAccountListView() *AccountListView {
	return &AccountListView{}
}

func (v *AccountListView) Render(items []AccountListItem) error {
	if len(items) == 0 {
		pterm.Warning.Println("No accounts found")
		return nil
	}

	headers := []string{"ID", "Alias", "Bank", "Client", "Kind", "Balance", "Flags"}
	tableData := pterm.TableData{headers}

	for _, item := range items {
		balance := utils.FormatAmount(item.Balance)

		var coloredKind, coloredBalance string
		switch item.Kind {
		case constants.KindDebit:
			coloredKind = pterm.Green(item.Kind)
		case constants.KindDeposit:
			coloredKind = pterm.Blue(item.Kind)
		case constants.KindCredit:
			coloredKind = pterm.Yellow(item.Kind)
		default:
			coloredKind = item.Kind
		}

		if item.Balance.IsNegative() {
			coloredBalance = pterm.Red(balance)
		} else {
			coloredBalance = balance
		}

		flags := ""
		if item.Suspicious {
			flags = pterm.Yellow("suspicious")
		}

		alias := item.Alias
		if alias == "" {
			alias = "-"
		}

		tableData = append(tableData, []string{
			utils.ShortID(item.ID),
			alias,
			item.Bank,
			utils.ShortID(item.Client),
			coloredKind,
			coloredBalance,
			flags,
		})
	}

	pterm.DefaultSection.Printf("Account List")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts\n", len(items))

	return nil
}
