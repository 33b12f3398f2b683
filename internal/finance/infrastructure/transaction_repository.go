package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/finapp/finance-backend/internal/finance/domain"
	financeErrors "github.com/finapp/finance-backend/internal/finance/errors"
)

type PersonalTransactionRepository struct {
	db *sql.DB
}

func NewPersonalTransactionRepository(db *sql.DB) *PersonalTransactionRepository {
	return &PersonalTransactionRepository{db: db}
}

func (r *PersonalTransactionRepository) Save(transaction *domain.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, amount, type, description, categorie, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(query,
		transaction.UserID, transaction.Amount, transaction.Type,
		transaction.Description, transaction.Categorie, transaction.Date,
	).Scan(&transaction.ID, &transaction.CreatedAt, &transaction.UpdatedAt)
	return err
}

func (r *PersonalTransactionRepository) FindByID(transactionID int64) (*domain.Transaction, error) {
	query := `
		SELECT id, user_id, amount, type, description, categorie, date, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`
	var transaction domain.Transaction
	err := r.db.QueryRow(query, transactionID).Scan(
		&transaction.ID, &transaction.UserID, &transaction.Amount, &transaction.Type,
		&transaction.Description, &transaction.Categorie, &transaction.Date,
		&transaction.CreatedAt, &transaction.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *PersonalTransactionRepository) FindByUser(userID int64) ([]domain.Transaction, error) {
	query := `
		SELECT id, user_id, amount, type, description, categorie, date, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(
			&transaction.ID, &transaction.UserID, &transaction.Amount, &transaction.Type,
			&transaction.Description, &transaction.Categorie, &transaction.Date,
			&transaction.CreatedAt, &transaction.UpdatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

func (r *PersonalTransactionRepository) Update(transaction *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $1, type = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`
	err := r.db.QueryRow(query,
		transaction.Amount, transaction.Type, transaction.Description, transaction.ID,
	).Scan(&transaction.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return financeErrors.ErrTransactionNotFound
		}
		return err
	}
	return nil
}

func (r *PersonalTransactionRepository) Delete(transactionID int64) error {
	result, err := r.db.Exec(`DELETE FROM transactions WHERE id = $1`, transactionID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrTransactionNotFound
	}
	return nil
}
