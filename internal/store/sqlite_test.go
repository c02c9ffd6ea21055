package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "banksim.db")

	// migrations live at the repository root
	s, err := NewStore(path, os.DirFS(filepath.Join("..", "..")))
	if err != nil {
		t.Fatalf("NewStore err=%v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func TestSaveAndReadRun(t *testing.T) {
	s := newTestStore(t)

	accounts := []Account{
		{ID: "acc-b", Bank: "Alpha", ClientID: "bob", Kind: "debit", Balance: "5.5"},
		{ID: "acc-a", Bank: "Alpha", ClientID: "alice", Kind: "debit", Balance: "5", Suspicious: true},
	}
	txs := []Transaction{
		{Seq: 1, OccurredAt: 100, Kind: "client_to_account", DestID: strPtr("acc-a"), Amount: "10.5"},
		{Seq: 2, OccurredAt: 100, Kind: "account_to_account", SourceID: strPtr("acc-a"), DestID: strPtr("acc-b"), Amount: "5.5"},
		{Seq: 3, OccurredAt: 200, Kind: "client_to_account", DestID: strPtr("acc-c"), Amount: "1"},
	}

	runID, err := s.SaveRun(Run{Name: "demo", StartedAt: 1, FinishedAt: 2, ClockAt: 200, Passed: true}, accounts, txs)
	if err != nil {
		t.Fatalf("SaveRun err=%v", err)
	}

	run, err := s.GetRun(runID)
	if err != nil {
		t.Fatal(err)
	}
	if run.Name != "demo" || !run.Passed || run.ClockAt != 200 {
		t.Fatalf("unexpected run %+v", run)
	}

	gotAccounts, err := s.GetRunAccounts(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(gotAccounts) != 2 || gotAccounts[0].ClientID != "alice" || !gotAccounts[0].Suspicious {
		t.Fatalf("unexpected accounts %+v", gotAccounts)
	}

	all, err := s.GetRunTransactions(runID, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].SourceID != nil || *all[1].SourceID != "acc-a" {
		t.Fatalf("unexpected transactions %+v", all)
	}

	forA, err := s.GetRunTransactions(runID, "acc-a", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(forA) != 2 {
		t.Fatalf("acc-a transactions=%d want=2", len(forA))
	}
}

func TestListAndDeleteRuns(t *testing.T) {
	s := newTestStore(t)

	first, _ := s.SaveRun(Run{Name: "first"}, nil, nil)
	second, _ := s.SaveRun(Run{Name: "second"}, []Account{{ID: "x", Bank: "B", ClientID: "c", Kind: "credit", Balance: "-1"}}, nil)

	runs, err := s.ListRuns(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID != second || runs[1].ID != first {
		t.Fatalf("unexpected runs %+v", runs)
	}

	if err := s.DeleteRun(second); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetRun(second); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
	accounts, _ := s.GetRunAccounts(second)
	if len(accounts) != 0 {
		t.Fatalf("accounts of deleted run survived")
	}
	if err := s.DeleteRun(second); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("second delete: want ErrRecordNotFound, got %v", err)
	}
}

func TestSaveRunRollsBack(t *testing.T) {
	s := newTestStore(t)

	dup := []Account{
		{ID: "same", Bank: "A", ClientID: "c", Kind: "debit", Balance: "0"},
		{ID: "same", Bank: "A", ClientID: "c", Kind: "debit", Balance: "0"},
	}
	if _, err := s.SaveRun(Run{Name: "broken"}, dup, nil); err == nil {
		t.Fatalf("duplicate account ids should fail")
	}

	runs, err := s.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Fatalf("failed save left %d runs behind", len(runs))
	}
}
