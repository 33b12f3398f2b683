package interfaces

import (
	"errors"

	"github.com/finapp/finance-backend/internal/finance/application"
	"github.com/finapp/finance-backend/internal/finance/domain"
	financeErrors "github.com/finapp/finance-backend/internal/finance/errors"
)

type MockTransactionService struct {
	Transactions []domain.Transaction
	shouldFail   bool
	nextID       int64
}

func (m *MockTransactionService) CreateTransaction(transaction *domain.Transaction) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return err
	}
	m.nextID++
	transaction.ID = m.nextID
	m.Transactions = append(m.Transactions, *transaction)
	return nil
}

func (m *MockTransactionService) GetUserTransactions(userID int64) ([]domain.Transaction, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	transactions := []domain.Transaction{}
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID {
			transactions = append(transactions, transaction)
		}
	}
	return transactions, nil
}

func (m *MockTransactionService) UpdateTransaction(transactionID, userID int64, update application.TransactionUpdate) (*domain.Transaction, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	for i, transaction := range m.Transactions {
		if transaction.ID != transactionID {
			continue
		}
		if transaction.UserID != userID {
			return nil, financeErrors.ErrNotTransactionOwner
		}
		m.Transactions[i].Amount = update.Amount
		m.Transactions[i].Type = update.Type
		m.Transactions[i].Description = update.Description
		updated := m.Transactions[i]
		return &updated, nil
	}
	return nil, financeErrors.ErrTransactionNotFound
}

func (m *MockTransactionService) DeleteTransaction(transactionID, userID int64) (*domain.Transaction, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	for i, transaction := range m.Transactions {
		if transaction.ID != transactionID {
			continue
		}
		if transaction.UserID != userID {
			return nil, financeErrors.ErrNotTransactionOwner
		}
		deleted := transaction
		m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
		return &deleted, nil
	}
	return nil, financeErrors.ErrTransactionNotFound
}

func (m *MockTransactionService) GetTotalAmount(userID int64) (float64, error) {
	if m.shouldFail {
		return 0, errors.New("service error")
	}
	var income, expense float64
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID {
			continue
		}
		if transaction.Type == domain.TypeIncome {
			income += transaction.Amount
		} else {
			expense += transaction.Amount
		}
	}
	return income - expense, nil
}
