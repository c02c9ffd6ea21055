package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/hance08/banksim/internal/app"
	"github.com/hance08/banksim/internal/scenario"
	"github.com/hance08/banksim/internal/service"
	"github.com/hance08/banksim/internal/ui/views"
	"github.com/hance08/banksim/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var ErrScenarioFailed = errors.New("scenario failed")

type runRunner struct {
	app   *app.App
	log   io.Writer
	save  bool
	quiet bool
}

func NewRunCmd(ref *appRef) *cobra.Command {
	runner := &runRunner{}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario file",
		Long: `Run a scenario file against a fresh simulation and check every expectation.

The command exits with status 1 when any step does not behave as expected.`,
		Example: `  # Run a scenario
  banksim run demo.yaml

  # Run and keep the final state for 'banksim history'
  banksim run demo.yaml --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner.app = ref.app
			runner.log = cmd.ErrOrStderr()
			return runner.Run(args[0])
		},
	}

	cmd.Flags().BoolVarP(&runner.save, "save", "s", false, "Save the finished session to the database")
	cmd.Flags().BoolVarP(&runner.quiet, "quiet", "q", false, "Only print the step summary")

	return cmd
}

func (r *runRunner) Run(path string) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}

	defaults, err := r.app.Config.BankDefaults()
	if err != nil {
		return err
	}
	start, err := r.app.Config.ClockStart()
	if err != nil {
		return err
	}

	opts := scenario.Options{
		Start:    start,
		Step:     r.app.Config.ClockStep(),
		Defaults: defaults,
	}
	if !r.quiet {
		opts.Logger = r.app.Logger(r.log)
	}

	svc, err := scenario.NewSession(sc, opts)
	if err != nil {
		return err
	}

	runner := scenario.NewRunner(svc)
	report, err := runner.Run(sc)
	if err != nil {
		return err
	}

	if err := views.RenderRunSummary(report.Name, outcomeItems(report)); err != nil {
		return err
	}

	if !r.quiet {
		if err := renderSession(svc, runner.Aliases()); err != nil {
			return err
		}
	}

	if r.save {
		repo, err := r.app.Store()
		if err != nil {
			return err
		}
		run, accounts, txs := scenario.Export(report, svc)
		id, err := repo.SaveRun(run, accounts, txs)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		pterm.Success.Printf("Saved as run #%d\n", id)
	}

	if !report.Passed() {
		return fmt.Errorf("%d of %d steps: %w", report.Failed(), len(report.Outcomes), ErrScenarioFailed)
	}
	return nil
}

func outcomeItems(report *scenario.Report) []views.OutcomeItem {
	items := make([]views.OutcomeItem, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		item := views.OutcomeItem{
			Index:    o.Index,
			Op:       o.Op,
			Detail:   o.Detail,
			Expected: o.Expected,
			Observed: o.Observed,
			Passed:   o.Passed,
		}
		if o.Err != nil {
			item.Error = o.Err.Error()
		}
		items = append(items, item)
	}
	return items
}

// renderSession prints the account table and the ledger of a session.
// aliases maps account ids to the names a scenario gave them.
func renderSession(svc *service.Service, aliases map[string]string) error {
	var items []views.AccountListItem
	for _, snap := range svc.Accounts() {
		items = append(items, views.AccountListItem{
			ID:         snap.ID,
			Alias:      aliases[snap.ID],
			Bank:       snap.Bank,
			Client:     snap.ClientID,
			Kind:       snap.Kind.String(),
			Balance:    snap.Balance,
			Suspicious: snap.Suspicious,
		})
	}
	if err := views.NewAccountListView().Render(items); err != nil {
		return err
	}

	label := func(id string) string {
		if alias, ok := aliases[id]; ok {
			return alias
		}
		return utils.ShortID(id)
	}
	return views.NewTransactionListView().Render(views.LedgerItems(svc.Transactions(), label), 0)
}
