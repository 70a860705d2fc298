// Package ledger derives account balances from transaction history.
// Balances are never stored; every read recomputes the fold.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/daltonneres/finantrack/internal/models"
)

// Balance folds an account's transaction history into its current balance,
// starting from the account's opening balance.
//
// Deposits credit the account, withdrawals debit it. A transfer debits the
// source account and credits the target. Addition commutes, so the result
// does not depend on iteration order. A self-transfer nets to zero.
func Balance(accountID uint, opening decimal.Decimal, txs []models.Transaction) decimal.Decimal {
	balance := opening
	for _, t := range txs {
		switch t.Type {
		case models.TypeDeposit:
			if t.AccountID == accountID {
				balance = balance.Add(t.Amount)
			}
		case models.TypeWithdrawal:
			if t.AccountID == accountID {
				balance = balance.Sub(t.Amount)
			}
		case models.TypeTransfer:
			if t.AccountID == accountID {
				balance = balance.Sub(t.Amount)
			}
			if t.TargetAccountID != nil && *t.TargetAccountID == accountID {
				balance = balance.Add(t.Amount)
			}
		}
	}
	return balance
}
