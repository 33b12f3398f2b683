package application

import "github.com/finapp/finance-backend/internal/finance/domain"

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) GetAllCategories(categoryType string) ([]domain.Category, error) {
	return s.repo.FindCategories(categoryType)
}
