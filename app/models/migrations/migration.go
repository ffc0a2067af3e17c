package migrations

import (
	"github.com/Rakhulsr/go-seller-ms/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Seller{},
		&models.Category{},
		&models.Discount{},
		&models.Product{},
		&models.Bundle{},
		&models.BundleItem{},
		&models.Sale{},
		&models.SaleProduct{},
		&models.Cart{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.WishlistItem{},
	)
}
