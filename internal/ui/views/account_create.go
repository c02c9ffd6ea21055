package views

import (
	"github.com/hance08/banksim/internal/ui"
	"github.com/pterm/pterm"
)

func RenderAccountSuccess(id, bankName, kind string) error {
	ui.Separator()

	tableData := pterm.TableData{
		{pterm.Blue("Account ID"), id},
		{pterm.Blue("Bank"), bankName},
		{pterm.Blue("Kind"), kind},
	}

	if err := pterm.DefaultTable.WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Success.Print("Account opened successfully!\n")

	return nil
}
