package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Bundle struct {
	ID                   string              `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id" bson:"_id"`
	SellerID             string              `gorm:"size:36;index;not null" json:"sellerId" bson:"sellerId"`
	Name                 string              `gorm:"size:255;not null" json:"name" bson:"name"`
	Description          string              `gorm:"type:text" json:"description" bson:"description"`
	Products             []BundleItem        `gorm:"foreignKey:BundleID" json:"products" bson:"products"`
	MRP                  decimal.Decimal     `gorm:"column:mrp;type:decimal(16,2);not null" json:"MRP" bson:"MRP"`
	SellerDiscount       decimal.Decimal     `gorm:"type:decimal(5,2);not null" json:"sellerDiscount" bson:"sellerDiscount"`
	SellerDiscounted     decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"sellerDiscounted" bson:"sellerDiscounted"`
	AdminDiscount        decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"adminDiscount" bson:"adminDiscount"`
	AdminDiscountApplied decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"adminDiscountApplied" bson:"adminDiscountApplied"`
	AdminDiscountedPrice decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"adminDiscountedPrice" bson:"adminDiscountedPrice"`
	Stock                int                 `gorm:"not null" json:"stock" bson:"stock"`
	DiscountID           *string             `gorm:"size:36;index" json:"discountId" bson:"discountId"`
	IsActive             bool                `gorm:"not null" json:"isActive" bson:"isActive"`
	IsBlocked            bool                `gorm:"not null" json:"isBlocked" bson:"isBlocked"`
	IsUnavailable        bool                `gorm:"not null" json:"isUnavailable" bson:"isUnavailable"`
	CreatedAt            time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// BundleItem snapshots a member product at composition time.
type BundleItem struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"-" bson:"-"`
	BundleID  string          `gorm:"size:36;index;not null" json:"-" bson:"-"`
	Position  int             `gorm:"not null" json:"-" bson:"-"`
	ProductID string          `gorm:"size:36;index;not null" json:"productId" bson:"productId"`
	Name      string          `gorm:"size:255" json:"name" bson:"name"`
	MRP       decimal.Decimal `gorm:"column:mrp;type:decimal(16,2)" json:"MRP" bson:"MRP"`
	Quantity  int             `gorm:"not null" json:"quantity" bson:"quantity"`
}

func (bi *BundleItem) BeforeCreate(tx *gorm.DB) (err error) {
	if bi.ID == "" {
		bi.ID = uuid.New().String()
	}
	return
}

func (b *Bundle) Deleted() bool {
	return !b.IsActive
}

func (b *Bundle) ProductIDs() []string {
	ids := make([]string, 0, len(b.Products))
	for _, item := range b.Products {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// RemoveProduct drops every line for productID and reports whether any matched.
func (b *Bundle) RemoveProduct(productID string) bool {
	kept := b.Products[:0]
	removed := false
	for _, item := range b.Products {
		if item.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	b.Products = kept
	return removed
}
