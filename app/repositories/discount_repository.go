package repositories

import (
	"context"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"gorm.io/gorm"
)

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepositoryImpl {
	return &discountRepository{db}
}

func (r *discountRepository) GetByID(ctx context.Context, id string) (*models.Discount, error) {
	var discount models.Discount
	if err := r.db.WithContext(ctx).First(&discount, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &discount, nil
}

// Save inserts or overwrites the discount by primary key.
func (r *discountRepository) Save(ctx context.Context, discount *models.Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}
