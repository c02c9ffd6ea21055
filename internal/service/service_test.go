package service

import (
	"errors"
	"testing"
	"time"

	"github.com/hance08/banksim/internal/bank"
	"github.com/hance08/banksim/internal/client"
	"github.com/hance08/banksim/internal/ledger"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := New(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 24*time.Hour, bank.Config{
		CreditFee:       dec("1"),
		SuspiciousLimit: dec("100"),
	}, nil)
	if err := svc.NewBank("Alpha", svc.Defaults()); err != nil {
		t.Fatal(err)
	}
	return svc
}

func newFullClient(t *testing.T, svc *Service, name string) string {
	t.Helper()
	id, err := svc.NewClient(name, "Test", client.Optional{Address: strPtr("street"), Passport: strPtr("P")})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func balance(t *testing.T, svc *Service, accountID string) decimal.Decimal {
	t.Helper()
	snap, err := svc.Account(accountID)
	if err != nil {
		t.Fatal(err)
	}
	return snap.Balance
}

func TestSendScenario(t *testing.T) {
	svc := newTestService(t)
	alice := newFullClient(t, svc, "Alice")
	bob := newFullClient(t, svc, "Bob")

	from, err := svc.NewAccount(alice, "Alpha", "debit", bank.AccountParams{})
	if err != nil {
		t.Fatal(err)
	}
	to, err := svc.NewAccount(bob, "Alpha", "debit", bank.AccountParams{})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.TopUp(from, dec("10.5")); err != nil {
		t.Fatal(err)
	}
	if err := svc.Send(alice, from, to, dec("5.5")); err != nil {
		t.Fatal(err)
	}

	if got := balance(t, svc, from); !got.Equal(dec("5")) {
		t.Fatalf("sender=%s want=5", got)
	}
	if got := balance(t, svc, to); !got.Equal(dec("5.5")) {
		t.Fatalf("receiver=%s want=5.5", got)
	}

	history, err := svc.TransactionHistory(to)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Kind != ledger.AccountToAccount {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestOwnershipChecks(t *testing.T) {
	svc := newTestService(t)
	alice := newFullClient(t, svc, "Alice")
	mallory := newFullClient(t, svc, "Mallory")
	acc, _ := svc.NewAccount(alice, "Alpha", "debit", bank.AccountParams{})
	other, _ := svc.NewAccount(mallory, "Alpha", "debit", bank.AccountParams{})
	_ = svc.TopUp(acc, dec("10"))

	if err := svc.Withdraw(mallory, acc, dec("1")); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("withdraw: want ErrNotOwner, got %v", err)
	}
	if err := svc.Send(mallory, acc, other, dec("1")); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("send: want ErrNotOwner, got %v", err)
	}
	if err := svc.CloseAccount(mallory, acc); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("close: want ErrNotOwner, got %v", err)
	}
	if got := balance(t, svc, acc); !got.Equal(dec("10")) {
		t.Fatalf("balance=%s want=10", got)
	}

	// top-ups are open to anyone
	if err := svc.TopUp(acc, dec("1")); err != nil {
		t.Fatal(err)
	}
}

func TestNotFound(t *testing.T) {
	svc := newTestService(t)
	alice := newFullClient(t, svc, "Alice")

	if _, err := svc.NewAccount(alice, "Nowhere", "debit", bank.AccountParams{}); !errors.Is(err, bank.ErrNotFound) {
		t.Fatalf("unknown bank: got %v", err)
	}
	if _, err := svc.NewAccount("ghost", "Alpha", "debit", bank.AccountParams{}); !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("unknown client: got %v", err)
	}
	if _, err := svc.NewAccount(alice, "Alpha", "savings", bank.AccountParams{}); !errors.Is(err, bank.ErrUnknownKind) {
		t.Fatalf("unknown kind: got %v", err)
	}
	if err := svc.TopUp("missing", dec("1")); !errors.Is(err, bank.ErrNotFound) {
		t.Fatalf("unknown account: got %v", err)
	}
	if err := svc.AddToBlacklist("Alpha", "ghost"); !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("blacklist unknown client: got %v", err)
	}
	if err := svc.NewBank("Alpha", svc.Defaults()); !errors.Is(err, bank.ErrDuplicateName) {
		t.Fatalf("duplicate bank: got %v", err)
	}
}

func TestUpdateClientOptionalInfoReachesEveryBank(t *testing.T) {
	svc := newTestService(t)
	if err := svc.NewBank("Beta", svc.Defaults()); err != nil {
		t.Fatal(err)
	}
	eve, err := svc.NewClient("Eve", "Test", client.Optional{})
	if err != nil {
		t.Fatal(err)
	}
	a, _ := svc.NewAccount(eve, "Alpha", "debit", bank.AccountParams{})
	b, _ := svc.NewAccount(eve, "Beta", "credit", bank.AccountParams{})

	for _, id := range []string{a, b} {
		if err := svc.TopUp(id, dec("500")); !errors.Is(err, bank.ErrInsufficientCap) {
			t.Fatalf("suspicious top-up: want ErrInsufficientCap, got %v", err)
		}
	}

	if err := svc.UpdateClientOptionalInfo(eve, client.Optional{Address: strPtr("a"), Passport: strPtr("p")}); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{a, b} {
		if err := svc.TopUp(id, dec("500")); err != nil {
			t.Fatalf("top-up after update: %v", err)
		}
	}
}

func TestBlacklistScenario(t *testing.T) {
	svc := newTestService(t)
	carol := newFullClient(t, svc, "Carol")
	dave := newFullClient(t, svc, "Dave")
	from, _ := svc.NewAccount(carol, "Alpha", "debit", bank.AccountParams{})
	to, _ := svc.NewAccount(dave, "Alpha", "debit", bank.AccountParams{})
	_ = svc.TopUp(from, dec("10"))
	before := len(svc.Transactions())

	if err := svc.AddToBlacklist("Alpha", carol); err != nil {
		t.Fatal(err)
	}
	if err := svc.Send(carol, from, to, dec("1")); !errors.Is(err, bank.ErrNotVerified) {
		t.Fatalf("want ErrNotVerified, got %v", err)
	}
	if len(svc.Transactions()) != before {
		t.Fatalf("ledger changed after veto")
	}
	if got := balance(t, svc, from); !got.Equal(dec("10")) {
		t.Fatalf("balance=%s want=10", got)
	}
}

func TestTickSweepsEveryBank(t *testing.T) {
	svc := newTestService(t)
	if err := svc.NewBank("Beta", svc.Defaults()); err != nil {
		t.Fatal(err)
	}
	alice := newFullClient(t, svc, "Alice")
	a, _ := svc.NewAccount(alice, "Alpha", "credit", bank.AccountParams{})
	b, _ := svc.NewAccount(alice, "Beta", "credit", bank.AccountParams{})
	_ = svc.Withdraw(alice, a, dec("5"))
	_ = svc.Withdraw(alice, b, dec("5"))

	start := svc.Now()
	now := svc.Tick()
	if !now.Equal(start.Add(24 * time.Hour)) {
		t.Fatalf("tick moved clock to %v", now)
	}
	for _, id := range []string{a, b} {
		if got := balance(t, svc, id); !got.Equal(dec("-6")) {
			t.Fatalf("account %s balance=%s want=-6", id, got)
		}
	}
	if got := len(svc.Accounts()); got != 2 {
		t.Fatalf("accounts=%d want=2", got)
	}
}

func TestDepositMaturityThroughTicks(t *testing.T) {
	svc := newTestService(t)
	alice := newFullClient(t, svc, "Alice")
	funds := dec("10")
	acc, err := svc.NewAccount(alice, "Alpha", "deposit", bank.AccountParams{InitialFunds: &funds})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Withdraw(alice, acc, dec("5")); !errors.Is(err, bank.ErrWithdrawLocked) {
		t.Fatalf("want ErrWithdrawLocked, got %v", err)
	}
	for i := 0; i < 365; i++ {
		svc.Tick()
	}
	if err := svc.Withdraw(alice, acc, dec("5")); err != nil {
		t.Fatalf("withdraw after maturity: %v", err)
	}
	if got := balance(t, svc, acc); !got.Equal(dec("5")) {
		t.Fatalf("balance=%s want=5", got)
	}
}

func TestConfigureBank(t *testing.T) {
	svc := newTestService(t)
	alice := newFullClient(t, svc, "Alice")

	before, err := svc.NewAccount(alice, "Alpha", "debit", bank.AccountParams{})
	if err != nil {
		t.Fatal(err)
	}

	rate, limit := dec("0.01"), dec("50")
	if err := svc.ConfigureBank("Alpha", BankSettings{InterestRate: &rate, SuspiciousLimit: &limit}); err != nil {
		t.Fatalf("ConfigureBank err=%v", err)
	}

	after, err := svc.NewAccount(alice, "Alpha", "debit", bank.AccountParams{})
	if err != nil {
		t.Fatal(err)
	}

	old, _ := svc.Account(before)
	fresh, _ := svc.Account(after)
	if !old.InterestRate.IsZero() || !fresh.InterestRate.Equal(rate) {
		t.Fatalf("rates old=%s new=%s", old.InterestRate, fresh.InterestRate)
	}
	if !fresh.SuspiciousLimit.Equal(limit) || !old.SuspiciousLimit.Equal(dec("100")) {
		t.Fatalf("limits old=%s new=%s", old.SuspiciousLimit, fresh.SuspiciousLimit)
	}

	// a bad field rejects the whole change
	badLimit, fee := dec("0"), dec("9")
	err = svc.ConfigureBank("Alpha", BankSettings{CreditFee: &fee, SuspiciousLimit: &badLimit})
	if !errors.Is(err, bank.ErrInvalidConfig) {
		t.Fatalf("want ErrInvalidConfig, got %v", err)
	}
	b, _ := svc.Bank("Alpha")
	if !b.Config().CreditFee.Equal(dec("1")) {
		t.Fatalf("credit fee changed to %s by a rejected update", b.Config().CreditFee)
	}

	if err := svc.ConfigureBank("Nope", BankSettings{}); !errors.Is(err, bank.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRemoveClient(t *testing.T) {
	svc := newTestService(t)
	alice := newFullClient(t, svc, "Alice")

	acc, err := svc.NewAccount(alice, "Alpha", "debit", bank.AccountParams{})
	if err != nil {
		t.Fatal(err)
	}
	if got := svc.ClientAccounts(alice); len(got) != 1 || got[0] != acc {
		t.Fatalf("ClientAccounts=%v", got)
	}

	if err := svc.RemoveClient(alice); !errors.Is(err, ErrClientHasAccounts) {
		t.Fatalf("want ErrClientHasAccounts, got %v", err)
	}

	if err := svc.CloseAccount(alice, acc); err != nil {
		t.Fatal(err)
	}
	if err := svc.RemoveClient(alice); err != nil {
		t.Fatalf("RemoveClient err=%v", err)
	}
	if _, err := svc.Clients.Get(alice); !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("client still registered: %v", err)
	}
	if svc.Env.IDs.InUse(alice) {
		t.Fatalf("client id not released")
	}
	if err := svc.RemoveClient(alice); !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("second remove: want ErrNotFound, got %v", err)
	}
}

func TestIsBlacklisted(t *testing.T) {
	svc := newTestService(t)
	alice := newFullClient(t, svc, "Alice")

	listed, err := svc.IsBlacklisted("Alpha", alice)
	if err != nil || listed {
		t.Fatalf("fresh client listed=%v err=%v", listed, err)
	}
	if err := svc.AddToBlacklist("Alpha", alice); err != nil {
		t.Fatal(err)
	}
	if listed, _ := svc.IsBlacklisted("Alpha", alice); !listed {
		t.Fatalf("client should be listed")
	}
	if _, err := svc.IsBlacklisted("Nope", alice); !errors.Is(err, bank.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
