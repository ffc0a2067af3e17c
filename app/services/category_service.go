package services

import (
	"context"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
)

type CategoryService struct {
	categories repositories.CategoryRepositoryImpl
}

func NewCategoryService(categories repositories.CategoryRepositoryImpl) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to load category", err)
	}
	if category == nil || !category.IsActive {
		return nil, apperror.NotFound("category not found")
	}
	return category, nil
}

// List returns active categories only.
func (s *CategoryService) List(ctx context.Context, q repositories.ListQuery) (Page[models.Category], error) {
	categories, total, err := s.categories.List(ctx, q)
	if err != nil {
		return Page[models.Category]{}, apperror.Internal("failed to list categories", err)
	}
	return newPage(categories, total, q), nil
}
