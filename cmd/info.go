package cmd

import (
	"os"

	"github.com/hance08/banksim/internal/app"
	"github.com/hance08/banksim/internal/config"
	"github.com/hance08/banksim/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(ref *appRef) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, database path, bank defaults and clock settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: ref.app,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	c := r.app.Config

	configPath := c.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	dbPath, err := r.app.DBPath()
	if err != nil {
		return err
	}

	dbExists := false
	if _, err := os.Stat(dbPath); err == nil {
		dbExists = true
	}

	defaults, err := c.BankDefaults()
	if err != nil {
		return err
	}

	clockStart := c.Clock.Start
	if clockStart == "" {
		clockStart = config.DefaultClockStart
	}

	items := views.SystemInfoItem{
		ConfigPath:      configPath,
		DBPath:          dbPath,
		DBExists:        dbExists,
		AppDataDir:      getAppDataDirOrUnknown(),
		ClockStart:      clockStart,
		ClockStep:       c.ClockStep().String(),
		InterestRate:    defaults.InterestRate.String(),
		CreditFee:       defaults.CreditFee.String(),
		SuspiciousLimit: defaults.SuspiciousLimit.String(),
		DepositTerm:     defaults.DepositTerm.String(),
		LogLevel:        c.Log.Level,
	}

	return views.RenderSystemInfo(items)
}

func getAppDataDirOrUnknown() string {
	dir, err := app.GetAppDataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
