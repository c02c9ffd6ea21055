package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// SaveRun writes a finished session with its accounts and ledger in one
// database transaction and returns the new run id.
func (s *Store) SaveRun(run Run, accounts []Account, txs []Transaction) (int64, error) {
	var runID int64

	err := s.ExecTx(func(tx *Store) error {
		var err error
		runID, err = tx.insertRun(run)
		if err != nil {
			return err
		}
		if err := tx.insertAccounts(runID, accounts); err != nil {
			return err
		}
		return tx.insertTransactions(runID, txs)
	})
	if err != nil {
		return 0, err
	}

	return runID, nil
}

func (s *Store) insertRun(run Run) (int64, error) {
	stmt, err := s.db.Prepare(`
        INSERT INTO runs (name, started_at, finished_at, clock_at, passed)
        VALUES (?, ?, ?, ?, ?)
        RETURNING id;
    `)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare run SQL : %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	var newID int64
	err = stmt.QueryRow(run.Name, run.StartedAt, run.FinishedAt, run.ClockAt, run.Passed).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run : %w", err)
	}
	return newID, nil
}

func (s *Store) insertAccounts(runID int64, accounts []Account) error {
	stmt, err := s.db.Prepare(`
        INSERT INTO accounts (run_id, id, bank, client_id, kind, balance, suspicious)
        VALUES (?, ?, ?, ?, ?, ?, ?);
    `)
	if err != nil {
		return fmt.Errorf("failed to prepare account SQL : %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, acc := range accounts {
		_, err := stmt.Exec(runID, acc.ID, acc.Bank, acc.ClientID, acc.Kind, acc.Balance, acc.Suspicious)
		if err != nil {
			return fmt.Errorf("failed to insert account %s : %w", acc.ID, err)
		}
	}
	return nil
}

func (s *Store) insertTransactions(runID int64, txs []Transaction) error {
	stmt, err := s.db.Prepare(`
        INSERT INTO transactions (run_id, seq, occurred_at, kind, source_id, dest_id, amount)
        VALUES (?, ?, ?, ?, ?, ?, ?);
    `)
	if err != nil {
		return fmt.Errorf("failed to prepare transaction SQL : %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, tx := range txs {
		_, err := stmt.Exec(runID, tx.Seq, tx.OccurredAt, tx.Kind, tx.SourceID, tx.DestID, tx.Amount)
		if err != nil {
			return fmt.Errorf("failed to insert transaction #%d : %w", tx.Seq, err)
		}
	}
	return nil
}

// ListRuns returns the most recent runs first
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20 // Default limit
	}

	rows, err := s.db.Query(`
        SELECT id, name, started_at, finished_at, clock_at, passed
        FROM runs
        ORDER BY id DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(&run.ID, &run.Name, &run.StartedAt, &run.FinishedAt, &run.ClockAt, &run.Passed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (s *Store) GetRun(runID int64) (*Run, error) {
	run := &Run{}
	err := s.db.QueryRow(`
        SELECT id, name, started_at, finished_at, clock_at, passed
        FROM runs
        WHERE id = ?
    `, runID).Scan(&run.ID, &run.Name, &run.StartedAt, &run.FinishedAt, &run.ClockAt, &run.Passed)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run with ID %d: %w", runID, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query run with ID %d: %w", runID, err)
	}
	return run, nil
}

// DeleteRun removes a run; accounts and transactions go with it (ON DELETE CASCADE)
func (s *Store) DeleteRun(runID int64) error {
	result, err := s.db.Exec(`DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("run with ID %d: %w", runID, ErrRecordNotFound)
	}
	return nil
}

func (s *Store) GetRunAccounts(runID int64) ([]*Account, error) {
	rows, err := s.db.Query(`
        SELECT run_id, id, bank, client_id, kind, balance, suspicious
        FROM accounts
        WHERE run_id = ?
        ORDER BY bank, client_id, id
    `, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var accounts []*Account
	for rows.Next() {
		acc := &Account{}
		err := rows.Scan(&acc.RunID, &acc.ID, &acc.Bank, &acc.ClientID, &acc.Kind, &acc.Balance, &acc.Suspicious)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}

// GetRunTransactions returns a run's ledger in commit order. A non-empty
// accountID keeps only transactions touching that account.
func (s *Store) GetRunTransactions(runID int64, accountID string, limit int) ([]*Transaction, error) {
	if limit <= 0 {
		limit = 100 // Default limit
	}

	rows, err := s.db.Query(`
        SELECT run_id, seq, occurred_at, kind, source_id, dest_id, amount
        FROM transactions
        WHERE run_id = ?
          AND (? = '' OR source_id = ? OR dest_id = ?)
        ORDER BY seq
        LIMIT ?
    `, runID, accountID, accountID, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var txs []*Transaction
	for rows.Next() {
		tx := &Transaction{}
		var source, dest sql.NullString

		err := rows.Scan(&tx.RunID, &tx.Seq, &tx.OccurredAt, &tx.Kind, &source, &dest, &tx.Amount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if source.Valid {
			tx.SourceID = &source.String
		}
		if dest.Valid {
			tx.DestID = &dest.String
		}
		txs = append(txs, tx)
	}

	return txs, rows.Err()
}
