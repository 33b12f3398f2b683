package infrastructure

import (
	"database/sql"

	"github.com/finapp/finance-backend/internal/finance/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindCategories(categoryType string) ([]domain.Category, error) {
	query := "SELECT id, name, type FROM categories"
	var args []interface{}

	if categoryType != "" {
		query += " WHERE type = $1"
		args = append(args, categoryType)
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Type); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
