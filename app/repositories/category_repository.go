package repositories

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepositoryImpl {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, query ListQuery) ([]models.Category, int64, error) {
	var categories []models.Category
	var total int64
	q := query.Normalize()

	scope := func(db *gorm.DB) *gorm.DB {
		return searchScope(q.Search)(db.Where("is_active = ?", true))
	}

	if err := r.db.WithContext(ctx).Model(&models.Category{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order(orderClause(ListQuery{SortBy: SortByName, SortOrder: q.SortOrder})).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&categories).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}
