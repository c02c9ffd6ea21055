package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hance08/banksim/internal/bank"
	"github.com/hance08/banksim/internal/client"
	"github.com/hance08/banksim/internal/service"
	"github.com/hance08/banksim/internal/utils"
	"github.com/hance08/banksim/internal/validation"
	"github.com/shopspring/decimal"
)

// Interactive menu actions.
const (
	ActionNewBank       = "new-bank"
	ActionConfigureBank = "configure-bank"
	ActionNewClient     = "new-client"
	ActionUpdateClient  = "update-client"
	ActionRemoveClient  = "remove-client"
	ActionOpenAccount   = "open-account"
	ActionCloseAccount  = "close-account"
	ActionShowAccount   = "show-account"
	ActionTopUp         = "topup"
	ActionWithdraw      = "withdraw"
	ActionSend          = "send"
	ActionBlacklist     = "blacklist"
	ActionTick          = "tick"
	ActionAccounts      = "accounts"
	ActionLedger        = "ledger"
	ActionQuit          = "quit"
)

func PromptMainMenu(now string) (string, error) {
	selection := ActionAccounts

	err := huh.NewSelect[string]().
		Title("What next?").
		Description("Simulated time: " + now).
		Options(
			huh.NewOption("Create bank", ActionNewBank),
			huh.NewOption("Configure bank", ActionConfigureBank),
			huh.NewOption("Register client", ActionNewClient),
			huh.NewOption("Update client details", ActionUpdateClient),
			huh.NewOption("Remove client", ActionRemoveClient),
			huh.NewOption("Open account", ActionOpenAccount),
			huh.NewOption("Close account", ActionCloseAccount),
			huh.NewOption("Show account", ActionShowAccount),
			huh.NewOption("Top up", ActionTopUp),
			huh.NewOption("Withdraw", ActionWithdraw),
			huh.NewOption("Send money", ActionSend),
			huh.NewOption("Blacklist client", ActionBlacklist),
			huh.NewOption("Advance clock", ActionTick),
			huh.NewOption("List accounts", ActionAccounts),
			huh.NewOption("Show ledger", ActionLedger),
			huh.NewOption("Quit", ActionQuit),
		).
		Value(&selection).
		Run()

	return selection, err
}

// ClientForm is the answer of PromptNewClient.
type ClientForm struct {
	Name     string
	Surname  string
	Optional client.Optional
}

// PromptNewClient asks for the required names first and the optional
// profile fields after. Skipping an optional field makes the client
// suspicious.
func PromptNewClient() (ClientForm, error) {
	var form ClientForm

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name:").
				Value(&form.Name).
				Validate(func(s string) error { return validation.ValidateName("client name", s) }),
			huh.NewInput().
				Title("Surname:").
				Value(&form.Surname).
				Validate(func(s string) error { return validation.ValidateName("client surname", s) }),
		),
	).Run()
	if err != nil {
		return form, err
	}

	form.Name = strings.TrimSpace(form.Name)
	form.Surname = strings.TrimSpace(form.Surname)

	form.Optional, err = PromptClientOptional()
	return form, err
}

func PromptClientOptional() (client.Optional, error) {
	var opt client.Optional
	var err error

	if opt.Address, err = PromptOptional("Address:"); err != nil {
		return opt, err
	}
	if opt.Passport, err = PromptOptional("Passport:"); err != nil {
		return opt, err
	}
	return opt, nil
}

// PromptNewBank asks for a bank name and its scalars, prefilled with the
// configured defaults.
func PromptNewBank(v *validation.Validator, defaults bank.Config) (string, bank.Config, error) {
	cfg := defaults

	name, err := PromptInput("Bank name:", "", v.ValidateNewBankName)
	if err != nil {
		return "", cfg, err
	}

	rate, err := PromptInput("Interest rate per tick:", defaults.InterestRate.String(), validation.ValidateRate)
	if err != nil {
		return "", cfg, err
	}
	fee, err := PromptInput("Credit daily fee:", defaults.CreditFee.String(), validation.ValidateRate)
	if err != nil {
		return "", cfg, err
	}
	limit, err := PromptInput("Suspicious limit:", defaults.SuspiciousLimit.String(), validation.ValidatePositiveAmount)
	if err != nil {
		return "", cfg, err
	}

	if cfg.InterestRate, err = utils.ParseAmount(rate); err != nil {
		return "", cfg, err
	}
	if cfg.CreditFee, err = utils.ParseAmount(fee); err != nil {
		return "", cfg, err
	}
	if cfg.SuspiciousLimit, err = utils.ParseAmount(limit); err != nil {
		return "", cfg, err
	}

	return strings.TrimSpace(name), cfg, nil
}

// PromptBankSettings asks for new scalars, prefilled with the bank's current
// ones. Only values that differ from current are returned.
func PromptBankSettings(current bank.Config) (service.BankSettings, error) {
	var set service.BankSettings

	ask := func(message string, value decimal.Decimal, validator func(string) error) (*decimal.Decimal, error) {
		raw, err := PromptInput(message, value.String(), validator)
		if err != nil {
			return nil, err
		}
		d, err := utils.ParseAmount(raw)
		if err != nil {
			return nil, err
		}
		if d.Equal(value) {
			return nil, nil
		}
		return &d, nil
	}

	var err error
	if set.InterestRate, err = ask("Interest rate per tick:", current.InterestRate, validation.ValidateRate); err != nil {
		return set, err
	}
	if set.CreditFee, err = ask("Credit daily fee:", current.CreditFee, validation.ValidateRate); err != nil {
		return set, err
	}
	if set.SuspiciousLimit, err = ask("Suspicious limit:", current.SuspiciousLimit, validation.ValidatePositiveAmount); err != nil {
		return set, err
	}
	return set, nil
}
