package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/daltonneres/finantrack/internal/models"
)

// Transactions handles ledger writes and per-account history reads.
type Transactions struct {
	db *gorm.DB
}

func NewTransactions(db *gorm.DB) *Transactions {
	return &Transactions{db: db}
}

// AddInput is a validated-at-the-edge transaction submission.
type AddInput struct {
	AccountID       uint
	Type            models.TransactionType
	Amount          decimal.Decimal
	TargetAccountID *uint
	Description     string
	Category        string
}

// ParseAmount converts user-supplied amount text into a decimal. Junk input
// and non-positive values are rejected as validation errors, not faults.
func ParseAmount(text string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, invalidf("amount %q is not a number", text)
	}
	if !amount.IsPositive() {
		return decimal.Zero, invalidf("amount must be greater than zero")
	}
	return amount, nil
}

// Add records a transaction. The source account must exist and belong to the
// caller. Transfers additionally need an existing target distinct from the
// source; the target may belong to another user.
func (s *Transactions) Add(userID uint, in AddInput) (*models.Transaction, error) {
	if !in.Type.Valid() {
		return nil, invalidf("unknown transaction type %q", string(in.Type))
	}
	if !in.Amount.IsPositive() {
		return nil, invalidf("amount must be greater than zero")
	}

	var src models.Account
	if err := s.db.First(&src, in.AccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}
	if src.UserID != userID {
		return nil, ErrNotOwner
	}

	switch in.Type {
	case models.TypeTransfer:
		if in.TargetAccountID == nil {
			return nil, invalidf("transfer requires a target account")
		}
		if *in.TargetAccountID == in.AccountID {
			return nil, invalidf("transfer target must differ from the source account")
		}
		var count int64
		if err := s.db.Model(&models.Account{}).Where("id = ?", *in.TargetAccountID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("target account lookup failed: %w", err)
		}
		if count == 0 {
			return nil, ErrAccountNotFound
		}
	default:
		if in.TargetAccountID != nil {
			return nil, invalidf("target account is only valid for transfers")
		}
	}

	t := models.Transaction{
		AccountID:       in.AccountID,
		TargetAccountID: in.TargetAccountID,
		Type:            in.Type,
		Amount:          in.Amount,
		Description:     in.Description,
		Category:        in.Category,
	}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &t, nil
}

// ForAccount returns the account's full history in insertion order:
// transactions it originated plus transfers into it.
func (s *Transactions) ForAccount(accountID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.Where("account_id = ? OR target_account_id = ?", accountID, accountID).
		Order("id").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return txs, nil
}
