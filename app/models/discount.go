package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DiscountStatusActive  = "active"
	DiscountStatusRemoved = "removed"
)

// Discount is an admin-issued discount mirrored from the admin service.
type Discount struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id" bson:"_id"`
	AdminID       string          `gorm:"size:36;index" json:"adminId" bson:"adminId"`
	AdminDiscount decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"adminDiscount" bson:"adminDiscount"`
	Description   string          `gorm:"type:text" json:"description" bson:"description"`
	StartDate     time.Time       `json:"startDate" bson:"startDate"`
	EndDate       time.Time       `json:"endDate" bson:"endDate"`
	Type          string          `gorm:"size:32;not null" json:"type" bson:"type"`
	Status        string          `gorm:"size:16;not null" json:"status" bson:"status"`
	Products      []string        `gorm:"serializer:json;type:text" json:"products" bson:"products"`
	Bundles       []string        `gorm:"serializer:json;type:text" json:"bundles" bson:"bundles"`
	CreatedAt     time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt" bson:"updatedAt"`
}

func (d *Discount) IsActive() bool {
	return d != nil && d.Status == DiscountStatusActive
}
