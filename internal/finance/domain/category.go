package domain

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // "income" or "expense"
}

type CategoryRepository interface {
	FindCategories(categoryType string) ([]Category, error)
}
