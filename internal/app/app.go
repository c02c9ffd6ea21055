package app

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hance08/banksim/internal/config"
	"github.com/hance08/banksim/internal/service"
	"github.com/hance08/banksim/internal/store"
	"github.com/hance08/banksim/internal/ui"
	"github.com/pterm/pterm"
)

// App carries what every command needs: the decoded config and a lazily
// opened store. Simulation sessions are created per command.
type App struct {
	Config *config.Config

	migrations fs.FS
	store      *store.Store
}

func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	if _, err := cfg.BankDefaults(); err != nil {
		return nil, nil, fmt.Errorf("invalid bank defaults: %w", err)
	}
	if _, err := cfg.ClockStart(); err != nil {
		return nil, nil, fmt.Errorf("invalid clock: %w", err)
	}

	a := &App{Config: cfg, migrations: migrationFS}

	cleanup := func() {
		if a.store == nil {
			return
		}
		if err := a.store.Close(); err != nil {
			fmt.Printf("Error closing DB: %v\n", err)
		}
	}

	return a, cleanup, nil
}

// Store opens the session database on first use.
func (a *App) Store() (store.Repository, error) {
	if a.store != nil {
		return a.store, nil
	}

	path, err := a.DBPath()
	if err != nil {
		return nil, err
	}

	dbStore, err := store.NewStore(path, a.migrations)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a.store = dbStore
	return dbStore, nil
}

// NewSession starts an empty simulation on the configured clock and bank
// defaults, logging to w.
func (a *App) NewSession(w io.Writer) (*service.Service, error) {
	defaults, err := a.Config.BankDefaults()
	if err != nil {
		return nil, err
	}
	start, err := a.Config.ClockStart()
	if err != nil {
		return nil, err
	}
	return service.New(start, a.Config.ClockStep(), defaults, a.Logger(w)), nil
}

func (a *App) Logger(w io.Writer) *pterm.Logger {
	return ui.NewLogger(a.Config.LogLevel(), w)
}

// DBPath is the configured database path with "~" expanded, or the default
// file in the app data directory.
func (a *App) DBPath() (string, error) {
	if a.Config.Database.Path == "" {
		appDir, err := GetAppDataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(appDir, "banksim.db"), nil
	}
	return ExpandPath(a.Config.Database.Path)
}

func GetAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".banksim"), nil
	}

	return filepath.Join(configDir, "banksim"), nil
}

func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}
