package infrastructure

import (
	"github.com/finapp/finance-backend/internal/finance/domain"
	financeErrors "github.com/finapp/finance-backend/internal/finance/errors"
)

// MockTransactionRepository keeps transactions in memory so service logic
// can be tested without a database.
type MockTransactionRepository struct {
	Transactions []domain.Transaction
	nextID       int64
}

func (m *MockTransactionRepository) Save(transaction *domain.Transaction) error {
	m.nextID++
	transaction.ID = m.nextID
	m.Transactions = append(m.Transactions, *transaction)
	return nil
}

func (m *MockTransactionRepository) FindByID(transactionID int64) (*domain.Transaction, error) {
	for _, transaction := range m.Transactions {
		if transaction.ID == transactionID {
			found := transaction
			return &found, nil
		}
	}
	return nil, financeErrors.ErrTransactionNotFound
}

func (m *MockTransactionRepository) FindByUser(userID int64) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID {
			transactions = append(transactions, transaction)
		}
	}
	return transactions, nil
}

func (m *MockTransactionRepository) Update(transaction *domain.Transaction) error {
	for i, existing := range m.Transactions {
		if existing.ID == transaction.ID {
			m.Transactions[i] = *transaction
			return nil
		}
	}
	return financeErrors.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Delete(transactionID int64) error {
	for i, existing := range m.Transactions {
		if existing.ID == transactionID {
			m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
			return nil
		}
	}
	return financeErrors.ErrTransactionNotFound
}
