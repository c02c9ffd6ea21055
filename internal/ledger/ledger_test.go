package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/hance08/banksim/internal/clock"
	"github.com/shopspring/decimal"
)

type verifierFunc func(Transaction) bool

func (f verifierFunc) Verify(tx Transaction) bool { return f(tx) }

type endpoint struct {
	id    string
	calls *int
	ok    bool
}

func (e endpoint) ID() string { return e.id }

func (e endpoint) Verifier() Verifier {
	return verifierFunc(func(Transaction) bool {
		*e.calls++
		return e.ok
	})
}

func newLedger() (*Ledger, *clock.Toy) {
	c := clock.NewToy(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 24*time.Hour)
	return New(c), c
}

func TestRecordTransferVerifiedByBothBanks(t *testing.T) {
	l, c := newLedger()
	calls := 0
	src := endpoint{id: "a", calls: &calls, ok: true}
	dst := endpoint{id: "b", calls: &calls, ok: true}

	tx, err := l.Record(src, dst, decimal.RequireFromString("5.5"), AccountToAccount)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("verify calls=%d want=2", calls)
	}
	if tx.Seq != 1 || tx.Source != "a" || tx.Dest != "b" || !tx.At.Equal(c.Now()) {
		t.Fatalf("unexpected transaction %+v", tx)
	}
	if l.Len() != 1 {
		t.Fatalf("Len=%d want=1", l.Len())
	}
}

func TestRecordTransferVeto(t *testing.T) {
	cases := []struct {
		name     string
		srcOK    bool
		dstOK    bool
		wantCall int
	}{
		{name: "source bank rejects", srcOK: false, dstOK: true, wantCall: 1},
		{name: "destination bank rejects", srcOK: true, dstOK: false, wantCall: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, _ := newLedger()
			calls := 0
			src := endpoint{id: "a", calls: &calls, ok: tc.srcOK}
			dst := endpoint{id: "b", calls: &calls, ok: tc.dstOK}

			_, err := l.Record(src, dst, decimal.NewFromInt(1), AccountToAccount)
			if !errors.Is(err, ErrNotVerified) {
				t.Fatalf("want ErrNotVerified, got %v", err)
			}
			if calls != tc.wantCall {
				t.Fatalf("verify calls=%d want=%d", calls, tc.wantCall)
			}
			if l.Len() != 0 {
				t.Fatalf("vetoed transfer was appended")
			}
		})
	}
}

func TestRecordSingleSidedSkipsVerification(t *testing.T) {
	l, _ := newLedger()
	calls := 0
	acc := endpoint{id: "a", calls: &calls, ok: false}

	if _, err := l.Record(nil, acc, decimal.NewFromInt(10), ClientToAccount); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Record(acc, nil, decimal.NewFromInt(3), AccountToClient); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Fatalf("single-bank operations must not call verify, got %d calls", calls)
	}

	txs := l.Transactions()
	if len(txs) != 2 || txs[0].HasSource() || !txs[0].HasDest() || txs[1].HasDest() {
		t.Fatalf("unexpected history %+v", txs)
	}
}

func TestRecordMismatchedKindPanics(t *testing.T) {
	l, _ := newLedger()
	calls := 0
	acc := endpoint{id: "a", calls: &calls, ok: true}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for deposit with a source account")
		}
	}()
	_, _ = l.Record(acc, acc, decimal.NewFromInt(1), ClientToAccount)
}

func TestByAccount(t *testing.T) {
	l, c := newLedger()
	calls := 0
	a := endpoint{id: "a", calls: &calls, ok: true}
	b := endpoint{id: "b", calls: &calls, ok: true}

	_, _ = l.Record(nil, a, decimal.NewFromInt(10), ClientToAccount)
	c.Next()
	_, _ = l.Record(a, b, decimal.NewFromInt(4), AccountToAccount)
	_, _ = l.Record(nil, b, decimal.NewFromInt(1), ClientToAccount)

	if got := len(l.ByAccount("a")); got != 2 {
		t.Fatalf("a history len=%d want=2", got)
	}
	if got := len(l.ByAccount("b")); got != 2 {
		t.Fatalf("b history len=%d want=2", got)
	}
	if got := len(l.ByAccount("")); got != 0 {
		t.Fatalf("empty id matched %d transactions", got)
	}
}
