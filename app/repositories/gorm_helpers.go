package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// NewGormStore wires every repository to the SQL database.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Products:   NewProductRepository(db),
		Bundles:    NewBundleRepository(db),
		Categories: NewCategoryRepository(db),
		Users:      NewUserRepository(db),
		Sellers:    NewSellerRepository(db),
		Discounts:  NewDiscountRepository(db),
		Sales:      NewSaleRepository(db),
		Carts:      NewCartRepository(db),
		Wishlists:  NewWishlistRepository(db),
	}
}

var sortColumns = map[string]string{
	SortByName:      "name",
	SortByMRP:       "mrp",
	SortByCreatedAt: "created_at",
}

func orderClause(q ListQuery) string {
	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "name"
	}
	if q.Descending() {
		return column + " DESC"
	}
	return column + " ASC"
}

func searchScope(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if strings.TrimSpace(search) == "" {
			return db
		}
		return db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
