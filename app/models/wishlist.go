package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Wishlist struct {
	ID        string         `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id" bson:"_id"`
	UserID    string         `gorm:"size:36;index;not null" json:"userId" bson:"userId"`
	Items     []WishlistItem `gorm:"foreignKey:WishlistID" json:"items" bson:"items"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type WishlistItem struct {
	ID            string  `gorm:"size:36;not null;uniqueIndex;primary_key" json:"-" bson:"-"`
	WishlistID    string  `gorm:"size:36;index;not null" json:"-" bson:"-"`
	ProductID     *string `gorm:"size:36;index" json:"productId,omitempty" bson:"productId,omitempty"`
	BundleID      *string `gorm:"size:36;index" json:"bundleId,omitempty" bson:"bundleId,omitempty"`
	Quantity      int     `gorm:"not null" json:"quantity" bson:"quantity"`
	IsUnavailable bool    `gorm:"not null" json:"isUnavailable" bson:"isUnavailable"`
}

func (wi *WishlistItem) BeforeCreate(tx *gorm.DB) (err error) {
	if wi.ID == "" {
		wi.ID = uuid.New().String()
	}
	return
}

func (wi *WishlistItem) Refers(kind ItemKind, id string) bool {
	return refers(wi.ProductID, wi.BundleID, kind, id)
}
