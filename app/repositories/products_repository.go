package repositories

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := p.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

func (p *productRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64
	q := filter.ListQuery.Normalize()

	scope := func(db *gorm.DB) *gorm.DB {
		return searchScope(q.Search)(db.Where("user_id = ? AND is_active = ?", filter.UserID, true))
	}

	if err := p.db.WithContext(ctx).Model(&models.Product{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	err := p.db.WithContext(ctx).
		Scopes(scope).
		Preload("Category").
		Order(orderClause(q)).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&products).Error

	return products, total, err
}

func (p *productRepository) ListInactiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", false).
		Pluck("id", &ids).Error
	return ids, err
}
