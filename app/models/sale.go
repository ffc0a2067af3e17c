package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Sale struct {
	ID                  string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id" bson:"_id"`
	Name                string          `gorm:"size:255;not null" json:"name" bson:"name"`
	StartDate           time.Time       `json:"startDate" bson:"startDate"`
	EndDate             time.Time       `json:"endDate" bson:"endDate"`
	SaleDiscountApplied decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"saleDiscountApplied" bson:"saleDiscountApplied"`
	Categories          []string        `gorm:"serializer:json;type:text" json:"categories" bson:"categories"`
	IsActive            bool            `gorm:"not null" json:"isActive" bson:"isActive"`
	IsAppliedSale       bool            `gorm:"not null" json:"isAppliedSale" bson:"isAppliedSale"`
	AffectedProducts    []SaleProduct   `gorm:"foreignKey:SaleID" json:"affectedProducts" bson:"affectedProducts"`
	CreatedAt           time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt" bson:"updatedAt"`
}

type SaleProduct struct {
	ID            string              `gorm:"size:36;not null;uniqueIndex;primary_key" json:"-" bson:"-"`
	SaleID        string              `gorm:"size:36;index;not null" json:"-" bson:"-"`
	ProductID     string              `gorm:"size:36;index;not null" json:"productId" bson:"productId"`
	CategoryID    string              `gorm:"size:36" json:"categoryId" bson:"categoryId"`
	ProductName   string              `gorm:"size:255" json:"productName" bson:"productName"`
	ProductMRP    decimal.Decimal     `gorm:"type:decimal(16,2)" json:"productMRP" bson:"productMRP"`
	FinalePrice   decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"finalePrice" bson:"finalePrice"`
	IsUnavailable bool                `gorm:"not null" json:"isUnavailable" bson:"isUnavailable"`
	Position      int                 `gorm:"not null" json:"-" bson:"-"`
}

func (sp *SaleProduct) BeforeCreate(tx *gorm.DB) (err error) {
	if sp.ID == "" {
		sp.ID = uuid.New().String()
	}
	return
}

func (s *Sale) HasCategory(categoryID string) bool {
	for _, id := range s.Categories {
		if id == categoryID {
			return true
		}
	}
	return false
}

func (s *Sale) HasProduct(productID string) bool {
	for _, item := range s.AffectedProducts {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Expired reports whether the sale's end date lies before now.
func (s *Sale) Expired(now time.Time) bool {
	return !s.EndDate.IsZero() && s.EndDate.Before(now)
}
