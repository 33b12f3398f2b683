package application

import (
	"math"

	"github.com/finapp/finance-backend/internal/finance/domain"
	financeErrors "github.com/finapp/finance-backend/internal/finance/errors"
)

type PersonalTransactionService struct {
	repo domain.TransactionRepository
}

func NewPersonalTransactionService(repo domain.TransactionRepository) *PersonalTransactionService {
	return &PersonalTransactionService{repo: repo}
}

// TransactionUpdate carries the caller-editable fields of an update request.
// Ownership is deliberately absent: a transaction can never be reassigned to
// another user.
type TransactionUpdate struct {
	Amount      float64
	Type        string
	Description string
}

func (s *PersonalTransactionService) CreateTransaction(transaction *domain.Transaction) error {
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return err
	}
	return s.repo.Save(transaction)
}

func (s *PersonalTransactionService) GetUserTransactions(userID int64) ([]domain.Transaction, error) {
	transactions, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		return []domain.Transaction{}, nil
	}
	return transactions, nil
}

func (s *PersonalTransactionService) UpdateTransaction(transactionID, userID int64, update TransactionUpdate) (*domain.Transaction, error) {
	existing, err := s.repo.FindByID(transactionID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, financeErrors.ErrNotTransactionOwner
	}

	existing.Amount = update.Amount
	existing.Type = update.Type
	existing.Description = update.Description
	existing.RoundToTwoDecimalPlaces()
	if err := existing.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *PersonalTransactionService) DeleteTransaction(transactionID, userID int64) (*domain.Transaction, error) {
	existing, err := s.repo.FindByID(transactionID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, financeErrors.ErrNotTransactionOwner
	}

	if err := s.repo.Delete(transactionID); err != nil {
		return nil, err
	}
	return existing, nil
}

// GetTotalAmount sums the user's full transaction history: income amounts
// count positively, expense amounts negatively. An empty history totals 0.
func (s *PersonalTransactionService) GetTotalAmount(userID int64) (float64, error) {
	transactions, err := s.repo.FindByUser(userID)
	if err != nil {
		return 0, err
	}

	var income, expense float64
	for _, transaction := range transactions {
		if transaction.Type == domain.TypeIncome {
			income += transaction.Amount
		} else {
			expense += transaction.Amount
		}
	}

	total := income - expense
	return math.Round(total*100) / 100, nil
}
