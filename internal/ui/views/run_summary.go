package views

import (
	"fmt"

	"github.com/hance08/banksim/internal/ui"
	"github.com/pterm/pterm"
)

type OutcomeItem struct {
	Index    int
	Op       string
	Detail   string
	Expected string
	Observed string
	Passed   bool
	Error    string
}

// RenderRunSummary prints every scenario step and a pass/fail footer.
func RenderRunSummary(name string, items []OutcomeItem) error {
	pterm.DefaultSection.Printf("Scenario: %s", name)

	tableData := pterm.TableData{
		{"#", "Op", "Detail", "Expected", "Observed", "Result"},
	}

	failed := 0
	for _, item := range items {
		expected := item.Expected
		if expected == "" {
			expected = "ok"
		}
		observed := item.Observed
		if observed == "" {
			observed = "ok"
		}
		if !item.Passed {
			failed++
		}

		tableData = append(tableData, []string{
			fmt.Sprintf("%d", item.Index),
			item.Op,
			item.Detail,
			expected,
			observed,
			ui.PassFail(item.Passed),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	for _, item := range items {
		if !item.Passed && item.Error != "" {
			pterm.Warning.Printf("step %d: %s\n", item.Index, item.Error)
		}
	}

	if failed == 0 {
		pterm.Success.Printf("All %d steps passed\n", len(items))
	} else {
		pterm.Error.Printf("%d of %d steps failed\n", failed, len(items))
	}
	return nil
}
