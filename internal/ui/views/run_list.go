package views

import (
	"fmt"
	"time"

	"github.com/hance08/banksim/internal/constants"
	"github.com/hance08/banksim/internal/store"
	"github.com/hance08/banksim/internal/ui"
	"github.com/pterm/pterm"
)

func RenderRunList(runs []*store.Run) error {
	if len(runs) == 0 {
		pterm.Warning.Println("No saved runs found")
		return nil
	}

	pterm.DefaultSection.Println("Saved Runs")

	tableData := pterm.TableData{
		{"ID", "Name", "Saved", "Clock", "Result"},
	}
	for _, run := range runs {
		tableData = append(tableData, []string{
			fmt.Sprintf("%d", run.ID),
			run.Name,
			time.Unix(run.FinishedAt, 0).Format(constants.DateTimeFormat),
			time.Unix(run.ClockAt, 0).UTC().Format(constants.DateFormat),
			ui.PassFail(run.Passed),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d runs\n", len(runs))
	return nil
}

func RenderRunDeletePreview(run *store.Run, accountCount int) {
	pterm.Warning.Printf("About to delete run #%d:\n", run.ID)

	deletionInfo := pterm.TableData{
		{"Name", run.Name},
		{"Saved", time.Unix(run.FinishedAt, 0).Format(constants.DateTimeFormat)},
		{"Accounts", fmt.Sprint(accountCount)},
	}

	_ = pterm.DefaultTable.WithData(deletionInfo).Render()
}
