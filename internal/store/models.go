package store

// Run is one finished simulation session.
type Run struct {
	ID         int64
	Name       string
	StartedAt  int64
	FinishedAt int64
	ClockAt    int64
	Passed     bool
}

type Account struct {
	RunID      int64
	ID         string
	Bank       string
	ClientID   string
	Kind       string
	Balance    string
	Suspicious bool
}

type Transaction struct {
	RunID      int64
	Seq        int64
	OccurredAt int64
	Kind       string
	SourceID   *string
	DestID     *string
	Amount     string
}
