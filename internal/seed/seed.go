package seed

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/daltonneres/finantrack/internal/logger"
	"github.com/daltonneres/finantrack/internal/models"
)

const (
	demoUsername = "demo"
	demoPassword = "password123"
)

// Run inserts a demo user with two accounts and a short transaction history.
// Idempotent: skipped when the demo user already exists.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", demoUsername).Count(&count).Error; err != nil {
		return fmt.Errorf("seed check failed: %w", err)
	}
	if count > 0 {
		logger.Log.Info("seed already applied, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		user := models.User{Username: demoUsername, Password: string(hash)}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		checking := models.Account{
			UserID:         user.ID,
			Name:           "Conta Corrente",
			Bank:           "NuBank",
			OpeningBalance: decimal.Zero,
		}
		savings := models.Account{
			UserID:         user.ID,
			Name:           "Poupança",
			Bank:           "Caixa",
			OpeningBalance: decimal.RequireFromString("250.00"),
		}
		if err := tx.Create(&checking).Error; err != nil {
			return err
		}
		if err := tx.Create(&savings).Error; err != nil {
			return err
		}

		txs := []models.Transaction{
			{AccountID: checking.ID, Type: models.TypeDeposit, Amount: decimal.RequireFromString("1500.00"), Description: "Salário", Category: "Renda"},
			{AccountID: checking.ID, Type: models.TypeWithdrawal, Amount: decimal.RequireFromString("89.90"), Description: "Mercado", Category: "Alimentação"},
			{AccountID: checking.ID, TargetAccountID: &savings.ID, Type: models.TypeTransfer, Amount: decimal.RequireFromString("300.00"), Description: "Reserva mensal"},
		}
		for i := range txs {
			if err := tx.Create(&txs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	logger.Log.Info("seeded demo user", zap.String("username", demoUsername))
	return nil
}
