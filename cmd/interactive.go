package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/hance08/banksim/internal/app"
	"github.com/hance08/banksim/internal/bank"
	"github.com/hance08/banksim/internal/constants"
	"github.com/hance08/banksim/internal/errhandler"
	"github.com/hance08/banksim/internal/service"
	"github.com/hance08/banksim/internal/ui"
	"github.com/hance08/banksim/internal/ui/prompts"
	"github.com/hance08/banksim/internal/ui/views"
	"github.com/hance08/banksim/internal/utils"
	"github.com/hance08/banksim/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type interactiveRunner struct {
	app       *app.App
	log       io.Writer
	svc       *service.Service
	validator *validation.Validator
}

func NewInteractiveCmd(ref *appRef) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Play with a fresh simulation from prompts",
		Long: `Start an empty simulation and drive it from menus: create banks and clients,
open accounts, move money and advance the clock. Nothing is saved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &interactiveRunner{
				app: ref.app,
				log: cmd.ErrOrStderr(),
			}
			return runner.Run()
		},
	}
}

func (r *interactiveRunner) Run() error {
	svc, err := r.app.NewSession(r.log)
	if err != nil {
		return err
	}
	r.svc = svc
	r.validator = validation.NewValidator(svc.Env.Banks)

	ui.PrintL1Title("banksim")

	for {
		action, err := prompts.PromptMainMenu(r.svc.Now().Format(constants.DateTimeFormat))
		if err != nil {
			return err
		}
		if action == prompts.ActionQuit {
			return nil
		}

		if err := r.dispatch(action); err != nil {
			// a cancelled prompt returns to the menu
			if errhandler.IsCancelled(err) {
				pterm.Warning.Println("Operation Cancelled")
				continue
			}
			pterm.Error.Println(errhandler.Capitalize(err.Error()))
		}
		ui.Separator()
	}
}

func (r *interactiveRunner) dispatch(action string) error {
	switch action {
	case prompts.ActionNewBank:
		return r.newBank()
	case prompts.ActionConfigureBank:
		return r.configureBank()
	case prompts.ActionNewClient:
		return r.newClient()
	case prompts.ActionUpdateClient:
		return r.updateClient()
	case prompts.ActionRemoveClient:
		return r.removeClient()
	case prompts.ActionOpenAccount:
		return r.openAccount()
	case prompts.ActionCloseAccount:
		return r.closeAccount()
	case prompts.ActionShowAccount:
		id, err := prompts.PromptAccountSelection("Account:", r.svc.Accounts())
		if err != nil {
			return err
		}
		return r.showAccount(id)
	case prompts.ActionTopUp:
		return r.topUp()
	case prompts.ActionWithdraw:
		return r.withdraw()
	case prompts.ActionSend:
		return r.send()
	case prompts.ActionBlacklist:
		return r.blacklist()
	case prompts.ActionTick:
		return r.tick()
	case prompts.ActionAccounts:
		return renderSession(r.svc, nil)
	case prompts.ActionLedger:
		return r.ledger()
	}
	return fmt.Errorf("unknown action %q", action)
}

func (r *interactiveRunner) newBank() error {
	name, cfg, err := prompts.PromptNewBank(r.validator, r.svc.Defaults())
	if err != nil {
		return err
	}
	if err := r.svc.NewBank(name, cfg); err != nil {
		return err
	}
	pterm.Success.Printf("Bank %s created\n", name)
	return nil
}

func (r *interactiveRunner) configureBank() error {
	bankName, err := r.selectBank("Bank:")
	if err != nil {
		return err
	}
	b, err := r.svc.Bank(bankName)
	if err != nil {
		return err
	}

	set, err := prompts.PromptBankSettings(b.Config())
	if err != nil {
		return err
	}
	if set.InterestRate == nil && set.CreditFee == nil && set.SuspiciousLimit == nil {
		pterm.Info.Println("Nothing changed")
		return nil
	}
	if err := r.svc.ConfigureBank(bankName, set); err != nil {
		return err
	}
	pterm.Success.Printf("Bank %s updated; new accounts use the new settings\n", bankName)
	return nil
}

func (r *interactiveRunner) newClient() error {
	form, err := prompts.PromptNewClient()
	if err != nil {
		return err
	}
	id, err := r.svc.NewClient(form.Name, form.Surname, form.Optional)
	if err != nil {
		return err
	}

	pterm.Success.Printf("Client %s %s registered (%s)\n", form.Name, form.Surname, utils.ShortID(id))
	if info, err := r.svc.Clients.Info(id); err == nil && info.Suspicious {
		pterm.Warning.Println("Profile incomplete: transactions are capped until address and passport are given")
	}
	return nil
}

func (r *interactiveRunner) updateClient() error {
	clientID, err := r.selectClient("Client:")
	if err != nil {
		return err
	}
	opt, err := prompts.PromptClientOptional()
	if err != nil {
		return err
	}
	if err := r.svc.UpdateClientOptionalInfo(clientID, opt); err != nil {
		return err
	}
	pterm.Success.Println("Client updated")
	return nil
}

func (r *interactiveRunner) removeClient() error {
	clientID, err := r.selectClient("Client to remove:")
	if err != nil {
		return err
	}
	if held := r.svc.ClientAccounts(clientID); len(held) > 0 {
		pterm.Warning.Printf("Client still holds %d account(s); close them first\n", len(held))
	}

	ok, err := prompts.PromptConfirm("Remove this client?", false)
	if err != nil || !ok {
		return err
	}
	if err := r.svc.RemoveClient(clientID); err != nil {
		return err
	}
	pterm.Success.Println("Client removed")
	return nil
}

func (r *interactiveRunner) openAccount() error {
	clientID, err := r.selectClient("Owner:")
	if err != nil {
		return err
	}
	bankName, err := r.selectBank("Bank:")
	if err != nil {
		return err
	}
	kind, err := prompts.PromptAccountKind()
	if err != nil {
		return err
	}

	b, err := r.svc.Bank(bankName)
	if err != nil {
		return err
	}
	p, err := prompts.PromptAccountParams(kind, r.svc.Now(), b.Config().DepositTerm)
	if err != nil {
		return err
	}

	id, err := r.svc.NewAccount(clientID, bankName, kind, p)
	if err != nil {
		return err
	}
	return views.RenderAccountSuccess(id, bankName, kind)
}

func (r *interactiveRunner) closeAccount() error {
	acc, err := r.selectOwnedAccount("Account to close:")
	if err != nil {
		return err
	}
	if !acc.Balance.IsZero() {
		pterm.Warning.Printf("Account still holds %s\n", utils.FormatAmount(acc.Balance))
	}

	ok, err := prompts.PromptConfirm("Close this account?", false)
	if err != nil || !ok {
		return err
	}
	if err := r.svc.CloseAccount(acc.ClientID, acc.ID); err != nil {
		return err
	}
	pterm.Success.Println("Account closed")
	return nil
}

func (r *interactiveRunner) topUp() error {
	accountID, err := prompts.PromptAccountSelection("Account to top up:", r.svc.Accounts())
	if err != nil {
		return err
	}
	amount, err := prompts.PromptPositiveAmount("Amount:")
	if err != nil {
		return err
	}
	if err := r.svc.TopUp(accountID, amount); err != nil {
		return err
	}
	return r.showAccount(accountID)
}

func (r *interactiveRunner) withdraw() error {
	acc, err := r.selectOwnedAccount("Withdraw from:")
	if err != nil {
		return err
	}
	amount, err := prompts.PromptPositiveAmount("Amount:")
	if err != nil {
		return err
	}
	if err := r.svc.Withdraw(acc.ClientID, acc.ID, amount); err != nil {
		return err
	}
	return r.showAccount(acc.ID)
}

func (r *interactiveRunner) send() error {
	from, err := r.selectOwnedAccount("Send from:")
	if err != nil {
		return err
	}

	var targets []bank.Snapshot
	for _, snap := range r.svc.Accounts() {
		if snap.ID != from.ID {
			targets = append(targets, snap)
		}
	}
	to, err := prompts.PromptAccountSelection("Send to:", targets)
	if err != nil {
		return err
	}
	amount, err := prompts.PromptPositiveAmount("Amount:")
	if err != nil {
		return err
	}

	if err := r.svc.Send(from.ClientID, from.ID, to, amount); err != nil {
		return err
	}
	pterm.Success.Printf("Sent %s\n", utils.FormatAmount(amount))
	return nil
}

func (r *interactiveRunner) blacklist() error {
	bankName, err := r.selectBank("Bank:")
	if err != nil {
		return err
	}
	clientID, err := r.selectClient("Client to blacklist:")
	if err != nil {
		return err
	}

	listed, err := r.svc.IsBlacklisted(bankName, clientID)
	if err != nil {
		return err
	}
	if listed {
		pterm.Warning.Printf("Client is already blacklisted at %s\n", bankName)
		return nil
	}
	return r.svc.AddToBlacklist(bankName, clientID)
}

func (r *interactiveRunner) tick() error {
	raw, err := prompts.PromptInput("How many ticks?", "1", func(s string) error {
		var n int
		if _, err := fmt.Sscan(s, &n); err != nil || n < 1 {
			return fmt.Errorf("enter a whole number >= 1")
		}
		return nil
	})
	if err != nil {
		return err
	}

	var n int
	if _, err := fmt.Sscan(raw, &n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		r.svc.Tick()
	}
	pterm.Info.Printf("Clock is now %s\n", r.svc.Now().Format(constants.DateTimeFormat))
	return nil
}

func (r *interactiveRunner) ledger() error {
	return views.NewTransactionListView().Render(views.LedgerItems(r.svc.Transactions(), nil), 0)
}

func (r *interactiveRunner) showAccount(id string) error {
	snap, err := r.svc.Account(id)
	if err != nil {
		return err
	}
	if err := views.RenderAccountDetail(snap); err != nil {
		return err
	}

	history, err := r.svc.TransactionHistory(id)
	if err != nil {
		return err
	}
	return views.NewTransactionListView().Render(views.LedgerItems(history, nil), 0)
}

func (r *interactiveRunner) selectClient(message string) (string, error) {
	ids := r.svc.Clients.IDs()
	if len(ids) == 0 {
		return "", fmt.Errorf("no clients yet, register one first")
	}

	options := make([]prompts.Option, 0, len(ids))
	for _, id := range ids {
		c, err := r.svc.Clients.Get(id)
		if err != nil {
			continue
		}
		label := strings.TrimSpace(c.Name+" "+c.Surname) + " (" + utils.ShortID(id) + ")"
		options = append(options, prompts.Option{Label: label, Value: id})
	}
	return prompts.PromptSelectOption(message, options, ids[0])
}

func (r *interactiveRunner) selectBank(message string) (string, error) {
	names := r.svc.BankNames()
	if len(names) == 0 {
		return "", fmt.Errorf("no banks yet, create one first")
	}
	return prompts.PromptSelect(message, names, names[0])
}

// selectOwnedAccount picks an account and acts as its owner.
func (r *interactiveRunner) selectOwnedAccount(message string) (bank.Snapshot, error) {
	accounts := r.svc.Accounts()
	id, err := prompts.PromptAccountSelection(message, accounts)
	if err != nil {
		return bank.Snapshot{}, err
	}
	return r.svc.Account(id)
}
