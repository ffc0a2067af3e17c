package models

import "time"

type Seller struct {
	ID                string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id" bson:"_id"`
	UserID            string    `gorm:"size:36;not null;uniqueIndex" json:"userId" bson:"userId"`
	ShopName          string    `gorm:"size:255;not null" json:"shopName" bson:"shopName"`
	ShopDescription   string    `gorm:"type:text" json:"shopDescription" bson:"shopDescription"`
	ShopContactNumber string    `gorm:"size:30" json:"shopContactNumber" bson:"shopContactNumber"`
	BusinessLicense   string    `gorm:"size:100" json:"businessLicense" bson:"businessLicense"`
	TaxID             string    `gorm:"size:100" json:"taxId" bson:"taxId"`
	Website           string    `gorm:"size:255" json:"website" bson:"website"`
	CreatedAt         time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" bson:"updatedAt"`
}
