package repositories

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bundleRepository struct {
	db *gorm.DB
}

func NewBundleRepository(db *gorm.DB) BundleRepositoryImpl {
	return &bundleRepository{db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *bundleRepository) Create(ctx context.Context, bundle *models.Bundle) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(bundle).Error; err != nil {
			return err
		}
		return r.replaceItems(tx, bundle)
	})
}

func (r *bundleRepository) replaceItems(tx *gorm.DB, bundle *models.Bundle) error {
	if err := tx.Where("bundle_id = ?", bundle.ID).Delete(&models.BundleItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear bundle items: %w", err)
	}
	if len(bundle.Products) == 0 {
		return nil
	}
	for i := range bundle.Products {
		bundle.Products[i].ID = ""
		bundle.Products[i].BundleID = bundle.ID
		bundle.Products[i].Position = i
	}
	if err := tx.Create(&bundle.Products).Error; err != nil {
		return fmt.Errorf("failed to store bundle items: %w", err)
	}
	return nil
}

func (r *bundleRepository) GetByID(ctx context.Context, id string) (*models.Bundle, error) {
	var bundle models.Bundle
	err := r.db.WithContext(ctx).
		Preload("Products", orderedItems).
		First(&bundle, "id = ?", id).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &bundle, nil
}

func (r *bundleRepository) Update(ctx context.Context, bundle *models.Bundle) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(bundle).Error; err != nil {
			return err
		}
		return r.replaceItems(tx, bundle)
	})
}

func (r *bundleRepository) List(ctx context.Context, filter BundleFilter) ([]models.Bundle, int64, error) {
	var bundles []models.Bundle
	var total int64
	q := filter.ListQuery.Normalize()

	scope := func(db *gorm.DB) *gorm.DB {
		return searchScope(q.Search)(db.Where("seller_id = ? AND is_active = ?", filter.SellerID, true))
	}

	if err := r.db.WithContext(ctx).Model(&models.Bundle{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bundles: %w", err)
	}

	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Products", orderedItems).
		Order(orderClause(q)).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&bundles).Error

	return bundles, total, err
}

func (r *bundleRepository) FindContainingProduct(ctx context.Context, productID string) ([]models.Bundle, error) {
	var bundles []models.Bundle
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&models.BundleItem{}).Select("bundle_id").Where("product_id = ?", productID)).
		Preload("Products", orderedItems).
		Find(&bundles).Error
	return bundles, err
}

func (r *bundleRepository) ListInactiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Bundle{}).
		Where("is_active = ?", false).
		Pluck("id", &ids).Error
	return ids, err
}
