package repositories

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"gorm.io/gorm"
)

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepositoryImpl {
	return &cartRepository{db}
}

func (r *cartRepository) Create(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) MarkUnavailable(ctx context.Context, kind models.ItemKind, id string) (int64, error) {
	column, err := itemColumn(kind)
	if err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where(column+" = ?", id).
		Update("is_unavailable", true)
	return res.RowsAffected, res.Error
}

func itemColumn(kind models.ItemKind) (string, error) {
	switch kind {
	case models.ItemKindProduct:
		return "product_id", nil
	case models.ItemKindBundle:
		return "bundle_id", nil
	}
	return "", fmt.Errorf("unknown item kind %q", kind)
}
