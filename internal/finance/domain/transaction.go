package domain

import (
	"math"
	"time"

	"github.com/finapp/finance-backend/internal/finance/errors"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type TransactionRepository interface {
	Save(transaction *Transaction) error
	FindByID(transactionID int64) (*Transaction, error)
	FindByUser(userID int64) ([]Transaction, error)
	Update(transaction *Transaction) error
	Delete(transactionID int64) error
}

type Transaction struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"` // "income" or "expense"
	Description string    `json:"description,omitempty"`
	Categorie   string    `json:"categorie,omitempty"` // free text, not tied to the categories table
	Date        string    `json:"date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func IsValidTransactionType(transactionType string) bool {
	return transactionType == TypeIncome || transactionType == TypeExpense
}

func (t *Transaction) Validate() error {
	if !IsValidTransactionType(t.Type) {
		return errors.NewValidationError("Type must be 'income' or 'expense'")
	}
	if t.Amount < 0 {
		return errors.NewValidationError("Amount must not be negative")
	}
	if len(t.Description) > 200 {
		return errors.NewValidationError("Description must be of length less than 200")
	}
	return nil
}

func (t *Transaction) RoundToTwoDecimalPlaces() {
	t.Amount = math.Round(t.Amount*100) / 100
}
