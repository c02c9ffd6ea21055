package cmd

import (
	"fmt"

	"github.com/hance08/banksim/internal/app"
	"github.com/hance08/banksim/internal/store"
	"github.com/hance08/banksim/internal/ui"
	"github.com/hance08/banksim/internal/ui/views"
	"github.com/hance08/banksim/internal/utils"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type historyRunner struct {
	app     *app.App
	runID   int64
	account string
	limit   int
	remove  int64
}

func NewHistoryCmd(ref *appRef) *cobra.Command {
	runner := &historyRunner{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved runs",
		Long: `List sessions saved with 'banksim run --save', or show the accounts and
ledger of one of them.`,
		Example: `  # List saved runs
  banksim history

  # Show one run
  banksim history --run 3

  # Only the transactions touching one account
  banksim history --run 3 --account 1f0c9a2b...

  # Delete a run
  banksim history --delete 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner.app = ref.app
			return runner.Run()
		},
	}

	cmd.Flags().Int64VarP(&runner.runID, "run", "r", 0, "Show the run with this ID")
	cmd.Flags().StringVarP(&runner.account, "account", "a", "", "Filter transactions by account ID")
	cmd.Flags().IntVarP(&runner.limit, "limit", "l", 20, "Maximum number of rows to display")
	cmd.Flags().Int64Var(&runner.remove, "delete", 0, "Delete the run with this ID")

	return cmd
}

func (r *historyRunner) Run() error {
	repo, err := r.app.Store()
	if err != nil {
		return err
	}

	switch {
	case r.remove != 0:
		return r.deleteRun(repo)
	case r.runID != 0:
		return r.showRun(repo)
	}

	runs, err := repo.ListRuns(r.limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	return views.RenderRunList(runs)
}

func (r *historyRunner) showRun(repo store.Repository) error {
	run, err := repo.GetRun(r.runID)
	if err != nil {
		return err
	}

	ui.PrintL1Title("Run #%d: %s", run.ID, run.Name)

	accounts, err := repo.GetRunAccounts(run.ID)
	if err != nil {
		return err
	}

	var items []views.AccountListItem
	for _, acc := range accounts {
		if r.account != "" && acc.ID != r.account {
			continue
		}
		balance, err := decimal.NewFromString(acc.Balance)
		if err != nil {
			return fmt.Errorf("account %s has corrupt balance %q: %w", utils.ShortID(acc.ID), acc.Balance, err)
		}
		items = append(items, views.AccountListItem{
			ID:         acc.ID,
			Bank:       acc.Bank,
			Client:     acc.ClientID,
			Kind:       acc.Kind,
			Balance:    balance,
			Suspicious: acc.Suspicious,
		})
	}
	if err := views.NewAccountListView().Render(items); err != nil {
		return err
	}

	txs, err := repo.GetRunTransactions(run.ID, r.account, r.limit)
	if err != nil {
		return err
	}
	return views.NewTransactionListView().Render(views.StoreItems(txs), r.limit)
}

func (r *historyRunner) deleteRun(repo store.Repository) error {
	run, err := repo.GetRun(r.remove)
	if err != nil {
		return err
	}
	accounts, err := repo.GetRunAccounts(run.ID)
	if err != nil {
		return err
	}

	views.RenderRunDeletePreview(run, len(accounts))

	ok, err := ui.Confirm("Delete this run?", false)
	if err != nil {
		return err
	}
	if !ok {
		pterm.Info.Println("Nothing deleted")
		return nil
	}

	if err := repo.DeleteRun(run.ID); err != nil {
		return err
	}
	pterm.Success.Printf("Run #%d deleted\n", run.ID)
	return nil
}
