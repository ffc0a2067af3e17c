package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                    string              `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id" bson:"_id"`
	UserID                string              `gorm:"size:36;index;not null" json:"userId" bson:"userId"`
	Name                  string              `gorm:"size:255;not null" json:"name" bson:"name"`
	Description           string              `gorm:"type:text" json:"description" bson:"description"`
	MRP                   decimal.Decimal     `gorm:"column:mrp;type:decimal(16,2);not null" json:"MRP" bson:"MRP"`
	Stock                 int                 `gorm:"not null" json:"stock" bson:"stock"`
	CategoryID            string              `gorm:"size:36;index;not null" json:"categoryId" bson:"categoryId"`
	Category              *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty" bson:"-"`
	SellerDiscountApplied decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"sellerDiscountApplied" bson:"sellerDiscountApplied"`
	SellerDiscounted      decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"sellerDiscounted" bson:"sellerDiscounted"`
	AdminDiscountApplied  decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"adminDiscountApplied" bson:"adminDiscountApplied"`
	AdminDiscountedPrice  decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"adminDiscountedPrice" bson:"adminDiscountedPrice"`
	DiscountID            *string             `gorm:"size:36;index" json:"discountId" bson:"discountId"`
	IsActive              bool                `gorm:"not null" json:"isActive" bson:"isActive"`
	IsBlocked             bool                `gorm:"not null" json:"isBlocked" bson:"isBlocked"`
	IsUnavailable         bool                `gorm:"not null" json:"isUnavailable" bson:"isUnavailable"`
	SaleApplied           bool                `gorm:"not null" json:"saleApplied" bson:"saleApplied"`
	FinalePrice           decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"finalePrice" bson:"finalePrice"`
	CreatedAt             time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt             time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// Deleted reports whether the product has been soft-deleted.
func (p *Product) Deleted() bool {
	return !p.IsActive
}
