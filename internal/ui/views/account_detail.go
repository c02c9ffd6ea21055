package views

import (
	"time"

	"github.com/hance08/banksim/internal/bank"
	"github.com/hance08/banksim/internal/ui"
	"github.com/hance08/banksim/internal/utils"
	"github.com/pterm/pterm"
)

// RenderAccountDetail prints one account with the fields of its kind.
func RenderAccountDetail(snap bank.Snapshot) error {
	pterm.Println()
	ui.PrintL2Title("Account Info")

	suspicious := "No"
	if snap.Suspicious {
		suspicious = pterm.Yellow("Yes")
	}

	infoData := pterm.TableData{
		{"Field", "Value"},
		{"ID", snap.ID},
		{"Bank", snap.Bank},
		{"Client", snap.ClientID},
		{"Kind", snap.Kind.String()},
		{"Balance", utils.FormatAmount(snap.Balance)},
		{"Suspicious", suspicious},
		{"Suspicious Limit", utils.FormatAmount(snap.SuspiciousLimit)},
	}

	switch snap.Kind {
	case bank.Debit:
		infoData = append(infoData,
			[]string{"Interest Rate", snap.InterestRate.String()},
			[]string{"Unpaid Interest", snap.UnpaidInterest.String()},
		)
	case bank.Deposit:
		available := pterm.Red("Locked")
		if snap.WithdrawAvailable {
			available = pterm.Green("Available")
		}
		infoData = append(infoData,
			[]string{"Interest Rate", snap.InterestRate.String()},
			[]string{"Unpaid Interest", snap.UnpaidInterest.String()},
			[]string{"Maturity", snap.Maturity.Format(time.RFC3339)},
			[]string{"Withdraw", available},
		)
	case bank.Credit:
		infoData = append(infoData, []string{"Daily Fee", utils.FormatAmount(snap.DailyFee)})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(infoData).
		Render()
}
