package store

type Repository interface {
	// Run Operations
	SaveRun(run Run, accounts []Account, txs []Transaction) (int64, error)
	ListRuns(limit int) ([]*Run, error)
	GetRun(runID int64) (*Run, error)
	DeleteRun(runID int64) error

	// Snapshot Operations
	GetRunAccounts(runID int64) ([]*Account, error)
	GetRunTransactions(runID int64, accountID string, limit int) ([]*Transaction, error)

	Close() error
}
