package prompts

import (
	"fmt"
	"time"

	"github.com/hance08/banksim/internal/bank"
	"github.com/hance08/banksim/internal/constants"
	"github.com/hance08/banksim/internal/utils"
	"github.com/hance08/banksim/internal/validation"
	"github.com/shopspring/decimal"
)

// PromptAccountKind prompts for account kind selection
func PromptAccountKind() (string, error) {
	options := []Option{
		{Label: "Debit - everyday account, interest paid monthly", Value: constants.KindDebit},
		{Label: "Deposit - locked until maturity", Value: constants.KindDeposit},
		{Label: "Credit - may go negative, daily fee", Value: constants.KindCredit},
	}

	selected, err := PromptSelectOption("Account kind:", options, constants.KindDebit)
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}
	return selected, nil
}

// PromptAccountParams asks for the kind specific options. Deposit accounts
// must be funded at opening; maturity defaults to one deposit term from now.
func PromptAccountParams(kind string, now time.Time, term time.Duration) (bank.AccountParams, error) {
	var p bank.AccountParams
	if kind != constants.KindDeposit {
		return p, nil
	}

	funds, err := PromptAmount("Initial funds:", "Deposit accounts are funded when opened", validation.ValidatePositiveAmount)
	if err != nil {
		return p, err
	}
	d, err := utils.ParseAmount(funds)
	if err != nil {
		return p, err
	}
	p.InitialFunds = &d

	defaultDate := now.Add(term).Format(constants.DateFormat)
	date, err := PromptDate("Maturity (YYYY-MM-DD):", defaultDate, "Press Enter for the bank's default term")
	if err != nil {
		return p, err
	}
	maturity, err := time.ParseInLocation(constants.DateFormat, date, now.Location())
	if err != nil {
		return p, fmt.Errorf("invalid maturity date %q: %w", date, err)
	}
	p.Maturity = &maturity

	return p, nil
}

// PromptAccountSelection lets the user pick one account, showing its bank,
// kind and balance.
func PromptAccountSelection(message string, accounts []bank.Snapshot) (string, error) {
	if len(accounts) == 0 {
		return "", fmt.Errorf("no accounts available")
	}

	options := make([]Option, 0, len(accounts))
	for _, acc := range accounts {
		label := fmt.Sprintf("%s  %-10s %-8s %12s",
			utils.ShortID(acc.ID), acc.Bank, acc.Kind, utils.FormatAmount(acc.Balance))
		options = append(options, Option{Label: label, Value: acc.ID})
	}

	return PromptSelectOption(message, options, accounts[0].ID)
}

// PromptPositiveAmount asks for an amount > 0 and parses it.
func PromptPositiveAmount(message string) (decimal.Decimal, error) {
	raw, err := PromptAmount(message, "e.g. 150 or 10.50", validation.ValidatePositiveAmount)
	if err != nil {
		return decimal.Zero, err
	}
	return utils.ParseAmount(raw)
}
