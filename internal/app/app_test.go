package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hance08/banksim/internal/config"
)

func TestNewAppRejectsBadDefaults(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Bank.SuspiciousLimit = "-5"
	if _, _, err := NewApp(cfg, nil); err == nil {
		t.Fatalf("expected error for negative limit")
	}
}

func TestStoreAndSession(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Database.Path = filepath.Join(t.TempDir(), "nested", "banksim.db")
	cfg.Log.Level = "disabled"

	a, cleanup, err := NewApp(cfg, os.DirFS(filepath.Join("..", "..")))
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	repo, err := a.Store()
	if err != nil {
		t.Fatalf("Store err=%v", err)
	}
	again, _ := a.Store()
	if repo != again {
		t.Fatalf("store should be opened once")
	}
	if _, err := os.Stat(cfg.Database.Path); err != nil {
		t.Fatalf("database file missing: %v", err)
	}

	svc, err := a.NewSession(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := svc.Now().Format("2006-01-02"); got != "2024-01-01" {
		t.Fatalf("session starts at %s", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	got, _ := ExpandPath("~/x.db")
	if got != filepath.Join(home, "x.db") {
		t.Fatalf("got %s", got)
	}
	got, _ = ExpandPath("/tmp/x.db")
	if got != "/tmp/x.db" {
		t.Fatalf("got %s", got)
	}
}
