package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/daltonneres/finantrack/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBalance_EmptyAccount(t *testing.T) {
	got := Balance(1, decimal.Zero, nil)
	assert.True(t, got.IsZero())
}

func TestBalance_StartsFromOpeningBalance(t *testing.T) {
	got := Balance(1, dec("250.00"), []models.Transaction{
		{AccountID: 1, Type: models.TypeDeposit, Amount: dec("10.00")},
	})
	assert.True(t, got.Equal(dec("260.00")), "got %s", got)
}

func TestBalance_DepositsAndWithdrawals(t *testing.T) {
	txs := []models.Transaction{
		{AccountID: 1, Type: models.TypeDeposit, Amount: dec("100.00")},
		{AccountID: 1, Type: models.TypeWithdrawal, Amount: dec("40.00")},
		{AccountID: 1, Type: models.TypeDeposit, Amount: dec("15.50")},
	}
	got := Balance(1, decimal.Zero, txs)
	assert.True(t, got.Equal(dec("75.50")), "got %s", got)
}

func TestBalance_OrderIndependent(t *testing.T) {
	txs := []models.Transaction{
		{AccountID: 1, Type: models.TypeDeposit, Amount: dec("100.00")},
		{AccountID: 1, Type: models.TypeWithdrawal, Amount: dec("30.00")},
		{AccountID: 1, Type: models.TypeDeposit, Amount: dec("7.25")},
		{AccountID: 1, Type: models.TypeWithdrawal, Amount: dec("0.25")},
	}
	forward := Balance(1, decimal.Zero, txs)

	reversed := make([]models.Transaction, len(txs))
	for i, tx := range txs {
		reversed[len(txs)-1-i] = tx
	}
	backward := Balance(1, decimal.Zero, reversed)

	assert.True(t, forward.Equal(backward))
}

func TestBalance_TransferConservation(t *testing.T) {
	target := uint(2)
	txs := []models.Transaction{
		{AccountID: 1, Type: models.TypeDeposit, Amount: dec("100.00")},
		{AccountID: 1, TargetAccountID: &target, Type: models.TypeTransfer, Amount: dec("35.00")},
	}

	source := Balance(1, decimal.Zero, txs)
	dest := Balance(2, decimal.Zero, txs)

	assert.True(t, source.Equal(dec("65.00")), "source %s", source)
	assert.True(t, dest.Equal(dec("35.00")), "dest %s", dest)
	assert.True(t, source.Add(dest).Equal(dec("100.00")), "total changed")
}

func TestBalance_SelfTransferNetsToZero(t *testing.T) {
	self := uint(1)
	txs := []models.Transaction{
		{AccountID: 1, Type: models.TypeDeposit, Amount: dec("50.00")},
		{AccountID: 1, TargetAccountID: &self, Type: models.TypeTransfer, Amount: dec("20.00")},
	}
	got := Balance(1, decimal.Zero, txs)
	assert.True(t, got.Equal(dec("50.00")), "got %s", got)
}

func TestBalance_IgnoresOtherAccounts(t *testing.T) {
	txs := []models.Transaction{
		{AccountID: 2, Type: models.TypeDeposit, Amount: dec("999.00")},
		{AccountID: 1, Type: models.TypeDeposit, Amount: dec("10.00")},
	}
	got := Balance(1, decimal.Zero, txs)
	assert.True(t, got.Equal(dec("10.00")), "got %s", got)
}

func TestBalance_DepositWithdrawTransferScenario(t *testing.T) {
	b := uint(2)
	txs := []models.Transaction{
		{AccountID: 1, Type: models.TypeDeposit, Amount: dec("100")},
		{AccountID: 1, Type: models.TypeWithdrawal, Amount: dec("30")},
		{AccountID: 1, TargetAccountID: &b, Type: models.TypeTransfer, Amount: dec("20")},
	}

	assert.True(t, Balance(1, decimal.Zero, txs).Equal(dec("50")))
	assert.True(t, Balance(2, decimal.Zero, txs).Equal(dec("20")))
}
