package cmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hance08/banksim/internal/app"
	"github.com/hance08/banksim/internal/config"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	c := config.NewDefault()
	c.Database.Path = filepath.Join(t.TempDir(), "banksim.db")

	a, cleanup, err := app.NewApp(c, os.DirFS(".."))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(cleanup)
	return a
}

func TestRunDemoScenarioAndSave(t *testing.T) {
	a := newTestApp(t)
	r := &runRunner{app: a, log: io.Discard, save: true, quiet: true}

	if err := r.Run(filepath.Join("..", "scenarios", "demo.yaml")); err != nil {
		t.Fatalf("demo scenario failed: %v", err)
	}

	repo, err := a.Store()
	if err != nil {
		t.Fatal(err)
	}
	runs, err := repo.ListRuns(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Name != "demo" || !runs[0].Passed {
		t.Fatalf("unexpected saved runs %+v", runs)
	}

	accounts, err := repo.GetRunAccounts(runs[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 4 {
		t.Fatalf("saved accounts=%d want 4", len(accounts))
	}
}

func TestRunFailingScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failing.yaml")
	doc := `
name: failing
banks: [{name: Alpha}]
clients: [{key: a, name: A, surname: B, address: x, passport: y}]
steps:
  - {op: open, client: a, bank: Alpha, kind: debit, account: acc}
  - {op: expect_balance, account: acc, amount: "1"}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &runRunner{app: newTestApp(t), log: io.Discard, quiet: true}
	if err := r.Run(path); !errors.Is(err, ErrScenarioFailed) {
		t.Fatalf("want ErrScenarioFailed, got %v", err)
	}
}
