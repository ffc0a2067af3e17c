package repositories

import (
	"context"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"gorm.io/gorm"
)

type sellerRepository struct {
	db *gorm.DB
}

func NewSellerRepository(db *gorm.DB) SellerRepositoryImpl {
	return &sellerRepository{db}
}

func (r *sellerRepository) Create(ctx context.Context, seller *models.Seller) error {
	return r.db.WithContext(ctx).Create(seller).Error
}

func (r *sellerRepository) FindByID(ctx context.Context, id string) (*models.Seller, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *sellerRepository) FindByUserID(ctx context.Context, userID string) (*models.Seller, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *sellerRepository) findOne(ctx context.Context, query string, arg string) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).Where(query, arg).First(&seller).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &seller, nil
}

func (r *sellerRepository) Update(ctx context.Context, seller *models.Seller) error {
	return r.db.WithContext(ctx).Save(seller).Error
}
