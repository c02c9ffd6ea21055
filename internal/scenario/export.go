package scenario

import (
	"github.com/hance08/banksim/internal/service"
	"github.com/hance08/banksim/internal/store"
)

// Export flattens a finished session into store records.
func Export(report *Report, svc *service.Service) (store.Run, []store.Account, []store.Transaction) {
	run := store.Run{
		Name:       report.Name,
		StartedAt:  report.StartedAt.Unix(),
		FinishedAt: report.FinishedAt.Unix(),
		ClockAt:    svc.Now().Unix(),
		Passed:     report.Passed(),
	}

	var accounts []store.Account
	for _, snap := range svc.Accounts() {
		accounts = append(accounts, store.Account{
			ID:         snap.ID,
			Bank:       snap.Bank,
			ClientID:   snap.ClientID,
			Kind:       snap.Kind.String(),
			Balance:    snap.Balance.String(),
			Suspicious: snap.Suspicious,
		})
	}

	var txs []store.Transaction
	for _, tx := range svc.Transactions() {
		rec := store.Transaction{
			Seq:        tx.Seq,
			OccurredAt: tx.At.Unix(),
			Kind:       tx.Kind.String(),
			Amount:     tx.Amount.String(),
		}
		if tx.HasSource() {
			src := tx.Source
			rec.SourceID = &src
		}
		if tx.HasDest() {
			dst := tx.Dest
			rec.DestID = &dst
		}
		txs = append(txs, rec)
	}

	return run, accounts, txs
}
