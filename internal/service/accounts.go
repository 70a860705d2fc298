package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/daltonneres/finantrack/internal/ledger"
	"github.com/daltonneres/finantrack/internal/models"
)

// Accounts handles account CRUD and balance reads.
type Accounts struct {
	db *gorm.DB
}

func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{db: db}
}

// AccountView is an account together with its derived balance.
type AccountView struct {
	Account models.Account
	Balance decimal.Decimal
}

// Create persists a new account for the user. The bank label is normalized
// against the known set, falling back to "Other".
func (s *Accounts) Create(userID uint, name, bank string, opening decimal.Decimal) (*models.Account, error) {
	if name == "" {
		return nil, invalidf("account name is required")
	}

	acc := models.Account{
		UserID:         userID,
		Name:           name,
		Bank:           models.NormalizeBank(bank),
		OpeningBalance: opening,
	}
	if err := s.db.Create(&acc).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &acc, nil
}

// ForOwner fetches an account and enforces that userID owns it.
func (s *Accounts) ForOwner(userID, accountID uint) (*models.Account, error) {
	var acc models.Account
	if err := s.db.First(&acc, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}
	if acc.UserID != userID {
		return nil, ErrNotOwner
	}
	return &acc, nil
}

// Balance recomputes an account's balance from its full transaction set:
// every transaction naming it as source or as transfer target.
func (s *Accounts) Balance(acc *models.Account) (decimal.Decimal, error) {
	txs, err := s.transactionsTouching(acc.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.Balance(acc.ID, acc.OpeningBalance, txs), nil
}

// ListWithBalances returns all of the user's accounts with derived balances,
// for the dashboard view.
func (s *Accounts) ListWithBalances(userID uint) ([]AccountView, error) {
	var accounts []models.Account
	if err := s.db.Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	views := make([]AccountView, 0, len(accounts))
	for _, acc := range accounts {
		balance, err := s.Balance(&acc)
		if err != nil {
			return nil, err
		}
		views = append(views, AccountView{Account: acc, Balance: balance})
	}
	return views, nil
}

// Delete removes an account and every transaction touching it, in both
// directions: entries it originated and transfers into it. Leaving inbound
// transfer rows behind would dangle a target reference.
func (s *Accounts) Delete(userID, accountID uint) error {
	acc, err := s.ForOwner(userID, accountID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteAccountCascade(tx, acc.ID)
	})
}

// DeleteAll removes all of the user's accounts and their transactions in a
// single commit.
func (s *Accounts) DeleteAll(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var accounts []models.Account
		if err := tx.Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
			return fmt.Errorf("failed to fetch accounts: %w", err)
		}
		for _, acc := range accounts {
			if err := deleteAccountCascade(tx, acc.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func deleteAccountCascade(tx *gorm.DB, accountID uint) error {
	if err := tx.Where("account_id = ? OR target_account_id = ?", accountID, accountID).
		Delete(&models.Transaction{}).Error; err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	if err := tx.Delete(&models.Account{}, accountID).Error; err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (s *Accounts) transactionsTouching(accountID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.Where("account_id = ? OR target_account_id = ?", accountID, accountID).
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return txs, nil
}
