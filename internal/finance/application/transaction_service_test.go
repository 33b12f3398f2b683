package application

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finapp/finance-backend/internal/finance/domain"
	financeErrors "github.com/finapp/finance-backend/internal/finance/errors"
	"github.com/finapp/finance-backend/internal/finance/infrastructure"
)

func areEqualRounded(a, b float64) bool {
	return math.Round(a*100) == math.Round(b*100)
}

func seedTransactions(t *testing.T, service *PersonalTransactionService, userID int64, transactions []domain.Transaction) {
	t.Helper()
	for i := range transactions {
		transactions[i].UserID = userID
		err := service.CreateTransaction(&transactions[i])
		assert.NoError(t, err)
	}
}

func TestCreateTransaction_RoundsAmount(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewPersonalTransactionService(repo)

	transaction := domain.Transaction{UserID: 1, Amount: 10.456, Type: domain.TypeIncome}
	err := service.CreateTransaction(&transaction)

	assert.NoError(t, err)
	assert.Equal(t, 10.46, transaction.Amount)
	assert.NotZero(t, transaction.ID)
}

func TestCreateTransaction_RejectsInvalidType(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewPersonalTransactionService(repo)

	transaction := domain.Transaction{UserID: 1, Amount: 10.00, Type: "savings"}
	err := service.CreateTransaction(&transaction)

	assert.Error(t, err)
	assert.True(t, financeErrors.IsValidationError(err))
	assert.Empty(t, repo.Transactions)
}

func TestCreateTransaction_RejectsNegativeAmount(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewPersonalTransactionService(repo)

	transaction := domain.Transaction{UserID: 1, Amount: -5.00, Type: domain.TypeExpense}
	err := service.CreateTransaction(&transaction)

	assert.Error(t, err)
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestGetUserTransactions_EmptyHistory(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewPersonalTransactionService(repo)

	transactions, err := service.GetUserTransactions(1)

	assert.NoError(t, err)
	assert.NotNil(t, transactions)
	assert.Len(t, transactions, 0)
}

func TestUpdateTransaction_RejectsForeignTransaction(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewPersonalTransactionService(repo)
	seedTransactions(t, service, 2, []domain.Transaction{
		{Amount: 10.00, Type: domain.TypeIncome},
	})

	_, err := service.UpdateTransaction(repo.Transactions[0].ID, 1, TransactionUpdate{
		Amount: 20.00,
		Type:   domain.TypeExpense,
	})

	assert.True(t, errors.Is(err, financeErrors.ErrNotTransactionOwner))
	assert.Equal(t, 10.00, repo.Transactions[0].Amount)
}

func TestUpdateTransaction_UnknownID(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewPersonalTransactionService(repo)

	_, err := service.UpdateTransaction(42, 1, TransactionUpdate{Amount: 1.00, Type: domain.TypeIncome})

	assert.True(t, errors.Is(err, financeErrors.ErrTransactionNotFound))
}

func TestUpdateTransaction_PersistsRoundedFields(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewPersonalTransactionService(repo)
	seedTransactions(t, service, 1, []domain.Transaction{
		{Amount: 10.00, Type: domain.TypeIncome, Description: "old"},
	})

	updated, err := service.UpdateTransaction(repo.Transactions[0].ID, 1, TransactionUpdate{
		Amount:      19.999,
		Type:        domain.TypeExpense,
		Description: "new",
	})

	assert.NoError(t, err)
	assert.Equal(t, 20.00, updated.Amount)
	assert.Equal(t, domain.TypeExpense, updated.Type)
	assert.Equal(t, "new", updated.Description)
	assert.Equal(t, 20.00, repo.Transactions[0].Amount)
}

func TestDeleteTransaction_RemovesFromHistory(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewPersonalTransactionService(repo)
	seedTransactions(t, service, 1, []domain.Transaction{
		{Amount: 10.00, Type: domain.TypeIncome},
		{Amount: 5.00, Type: domain.TypeExpense},
	})

	deleted, err := service.DeleteTransaction(repo.Transactions[0].ID, 1)
	assert.NoError(t, err)
	assert.Equal(t, 10.00, deleted.Amount)

	remaining, err := service.GetUserTransactions(1)
	assert.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.Equal(t, 5.00, remaining[0].Amount)
}

func TestDeleteTransaction_RejectsForeignTransaction(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewPersonalTransactionService(repo)
	seedTransactions(t, service, 2, []domain.Transaction{
		{Amount: 10.00, Type: domain.TypeIncome},
	})

	_, err := service.DeleteTransaction(repo.Transactions[0].ID, 1)

	assert.True(t, errors.Is(err, financeErrors.ErrNotTransactionOwner))
	assert.Len(t, repo.Transactions, 1)
}

func TestGetTotalAmount_EmptyHistory(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewPersonalTransactionService(repo)

	total, err := service.GetTotalAmount(1)

	assert.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestGetTotalAmount_AllIncome(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewPersonalTransactionService(repo)
	seedTransactions(t, service, 1, []domain.Transaction{
		{Amount: 100.50, Type: domain.TypeIncome},
		{Amount: 20.00, Type: domain.TypeIncome},
	})

	total, err := service.GetTotalAmount(1)

	assert.NoError(t, err)
	assert.True(t, areEqualRounded(120.50, total))
}

func TestGetTotalAmount_AllExpense(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewPersonalTransactionService(repo)
	seedTransactions(t, service, 1, []domain.Transaction{
		{Amount: 30.00, Type: domain.TypeExpense},
		{Amount: 12.25, Type: domain.TypeExpense},
	})

	total, err := service.GetTotalAmount(1)

	assert.NoError(t, err)
	assert.True(t, areEqualRounded(-42.25, total))
}

func TestGetTotalAmount_MixedHistory(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewPersonalTransactionService(repo)
	seedTransactions(t, service, 1, []domain.Transaction{
		{Amount: 100.50, Type: domain.TypeIncome},
		{Amount: 30.00, Type: domain.TypeExpense},
		{Amount: 20.00, Type: domain.TypeIncome},
	})

	total, err := service.GetTotalAmount(1)

	assert.NoError(t, err)
	assert.True(t, areEqualRounded(90.50, total))
}

func TestGetTotalAmount_IgnoresOtherUsers(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewPersonalTransactionService(repo)
	seedTransactions(t, service, 1, []domain.Transaction{
		{Amount: 100.00, Type: domain.TypeIncome},
	})
	seedTransactions(t, service, 2, []domain.Transaction{
		{Amount: 500.00, Type: domain.TypeIncome},
	})

	total, err := service.GetTotalAmount(1)

	assert.NoError(t, err)
	assert.True(t, areEqualRounded(100.00, total))
}
