package repositories

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepositoryImpl {
	return &saleRepository{db}
}

func (r *saleRepository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(sale).Error; err != nil {
			return err
		}
		return r.replaceAffected(tx, sale)
	})
}

func (r *saleRepository) replaceAffected(tx *gorm.DB, sale *models.Sale) error {
	if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleProduct{}).Error; err != nil {
		return fmt.Errorf("failed to clear sale products: %w", err)
	}
	if len(sale.AffectedProducts) == 0 {
		return nil
	}
	for i := range sale.AffectedProducts {
		sale.AffectedProducts[i].ID = ""
		sale.AffectedProducts[i].SaleID = sale.ID
		sale.AffectedProducts[i].Position = i
	}
	if err := tx.Create(&sale.AffectedProducts).Error; err != nil {
		return fmt.Errorf("failed to store sale products: %w", err)
	}
	return nil
}

func (r *saleRepository) GetByID(ctx context.Context, id string) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).Preload("AffectedProducts", orderedItems).First(&sale, "id = ?", id).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) Update(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(sale).Error; err != nil {
			return err
		}
		return r.replaceAffected(tx, sale)
	})
}

func (r *saleRepository) List(ctx context.Context, query ListQuery) ([]models.Sale, int64, error) {
	var sales []models.Sale
	var total int64
	q := query.Normalize()

	scope := func(db *gorm.DB) *gorm.DB {
		return searchScope(q.Search)(db.Where("is_active = ?", true))
	}

	if err := r.db.WithContext(ctx).Model(&models.Sale{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("AffectedProducts", orderedItems).
		Order(orderClause(ListQuery{SortBy: SortByName, SortOrder: q.SortOrder})).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) MarkItemUnavailable(ctx context.Context, productID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.SaleProduct{}).
		Where("product_id = ?", productID).
		Update("is_unavailable", true)
	return res.RowsAffected, res.Error
}
