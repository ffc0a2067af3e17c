package repositories

import (
	"context"
	"strings"

	"github.com/Rakhulsr/go-seller-ms/app/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

const (
	SortByName      = "name"
	SortByMRP       = "MRP"
	SortByCreatedAt = "createdAt"
)

// ListQuery carries search, sort and pagination for list reads. Search is a
// case-insensitive substring match on name.
type ListQuery struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	switch q.SortBy {
	case SortByName, SortByMRP, SortByCreatedAt:
	default:
		q.SortBy = SortByName
	}
	q.SortOrder = strings.ToLower(q.SortOrder)
	if q.SortOrder != "desc" {
		q.SortOrder = "asc"
	}
	return q
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

func (q ListQuery) Descending() bool {
	return q.SortOrder == "desc"
}

// ProductFilter lists active products of one owner.
type ProductFilter struct {
	UserID string
	ListQuery
}

// BundleFilter lists active bundles of one seller.
type BundleFilter struct {
	SellerID string
	ListQuery
}

// Lookups by id return (nil, nil) when the record does not exist.

type ProductRepositoryImpl interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	ListInactiveIDs(ctx context.Context) ([]string, error)
}

type BundleRepositoryImpl interface {
	Create(ctx context.Context, bundle *models.Bundle) error
	GetByID(ctx context.Context, id string) (*models.Bundle, error)
	Update(ctx context.Context, bundle *models.Bundle) error
	List(ctx context.Context, filter BundleFilter) ([]models.Bundle, int64, error)
	FindContainingProduct(ctx context.Context, productID string) ([]models.Bundle, error)
	ListInactiveIDs(ctx context.Context) ([]string, error)
}

type CategoryRepositoryImpl interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context, query ListQuery) ([]models.Category, int64, error)
}

type UserRepositoryImpl interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type SellerRepositoryImpl interface {
	Create(ctx context.Context, seller *models.Seller) error
	FindByID(ctx context.Context, id string) (*models.Seller, error)
	FindByUserID(ctx context.Context, userID string) (*models.Seller, error)
	Update(ctx context.Context, seller *models.Seller) error
}

type DiscountRepositoryImpl interface {
	GetByID(ctx context.Context, id string) (*models.Discount, error)
	Save(ctx context.Context, discount *models.Discount) error
}

type SaleRepositoryImpl interface {
	Create(ctx context.Context, sale *models.Sale) error
	GetByID(ctx context.Context, id string) (*models.Sale, error)
	Update(ctx context.Context, sale *models.Sale) error
	List(ctx context.Context, query ListQuery) ([]models.Sale, int64, error)
	MarkItemUnavailable(ctx context.Context, productID string) (int64, error)
}

type CartRepositoryImpl interface {
	Create(ctx context.Context, cart *models.Cart) error
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	MarkUnavailable(ctx context.Context, kind models.ItemKind, id string) (int64, error)
}

type WishlistRepositoryImpl interface {
	Create(ctx context.Context, wishlist *models.Wishlist) error
	GetByUserID(ctx context.Context, userID string) (*models.Wishlist, error)
	MarkUnavailable(ctx context.Context, kind models.ItemKind, id string) (int64, error)
}

// Store groups every repository behind one backend.
type Store struct {
	Products   ProductRepositoryImpl
	Bundles    BundleRepositoryImpl
	Categories CategoryRepositoryImpl
	Users      UserRepositoryImpl
	Sellers    SellerRepositoryImpl
	Discounts  DiscountRepositoryImpl
	Sales      SaleRepositoryImpl
	Carts      CartRepositoryImpl
	Wishlists  WishlistRepositoryImpl
}
