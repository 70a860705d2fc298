package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType enumerates the kinds of ledger entries.
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeTransfer   TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeDeposit, TypeWithdrawal, TypeTransfer:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;size:100;not null"`
	Password string `gorm:"size:255;not null"`
}

type Account struct {
	gorm.Model
	UserID uint   `gorm:"index;not null"`
	Name   string `gorm:"size:100;not null"`
	Bank   string `gorm:"size:50"`
	// OpeningBalance is the starting value the balance fold begins from.
	OpeningBalance decimal.Decimal `gorm:"type:numeric;not null;default:0"`
}

type Transaction struct {
	gorm.Model
	AccountID       uint            `gorm:"index;not null"`
	TargetAccountID *uint           `gorm:"index"` // set only for transfers
	Type            TransactionType `gorm:"size:20;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric;not null"`
	Description     string          `gorm:"size:200"`
	Category        string          `gorm:"size:50"`
}
