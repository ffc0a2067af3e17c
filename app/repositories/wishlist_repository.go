package repositories

import (
	"context"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"gorm.io/gorm"
)

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepositoryImpl {
	return &wishlistRepository{db}
}

func (r *wishlistRepository) Create(ctx context.Context, wishlist *models.Wishlist) error {
	return r.db.WithContext(ctx).Create(wishlist).Error
}

func (r *wishlistRepository) GetByUserID(ctx context.Context, userID string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&wishlist).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &wishlist, nil
}

func (r *wishlistRepository) MarkUnavailable(ctx context.Context, kind models.ItemKind, id string) (int64, error) {
	column, err := itemColumn(kind)
	if err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where(column+" = ?", id).
		Update("is_unavailable", true)
	return res.RowsAffected, res.Error
}
