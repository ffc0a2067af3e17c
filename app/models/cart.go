package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemKind identifies what a cart or wishlist line points at.
type ItemKind string

const (
	ItemKindProduct ItemKind = "product"
	ItemKindBundle  ItemKind = "bundle"
)

type Cart struct {
	ID        string     `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id" bson:"_id"`
	UserID    string     `gorm:"size:36;index;not null" json:"userId" bson:"userId"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items" bson:"items"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

type CartItem struct {
	ID            string  `gorm:"size:36;not null;uniqueIndex;primary_key" json:"-" bson:"-"`
	CartID        string  `gorm:"size:36;index;not null" json:"-" bson:"-"`
	ProductID     *string `gorm:"size:36;index" json:"productId,omitempty" bson:"productId,omitempty"`
	BundleID      *string `gorm:"size:36;index" json:"bundleId,omitempty" bson:"bundleId,omitempty"`
	Quantity      int     `gorm:"not null" json:"quantity" bson:"quantity"`
	IsUnavailable bool    `gorm:"not null" json:"isUnavailable" bson:"isUnavailable"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}

// Refers reports whether the line points at the given product or bundle.
func (ci *CartItem) Refers(kind ItemKind, id string) bool {
	return refers(ci.ProductID, ci.BundleID, kind, id)
}

func refers(productID, bundleID *string, kind ItemKind, id string) bool {
	switch kind {
	case ItemKindProduct:
		return productID != nil && *productID == id
	case ItemKindBundle:
		return bundleID != nil && *bundleID == id
	}
	return false
}
