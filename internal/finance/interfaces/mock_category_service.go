package interfaces

import (
	"errors"

	"github.com/finapp/finance-backend/internal/finance/domain"
)

type MockCategoryService struct {
	categories []domain.Category
	shouldFail bool
}

func (m *MockCategoryService) GetAllCategories(categoryType string) ([]domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if categoryType == "" {
		return m.categories, nil
	}
	var filtered []domain.Category
	for _, category := range m.categories {
		if category.Type == categoryType {
			filtered = append(filtered, category)
		}
	}
	return filtered, nil
}
