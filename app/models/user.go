package models

import "time"

type User struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id" bson:"_id"`
	Name      string    `gorm:"size:100;not null" json:"name" bson:"name"`
	Email     string    `gorm:"size:100;not null;uniqueIndex" json:"email" bson:"email"`
	Role      string    `gorm:"size:20;not null" json:"role" bson:"role"`
	IsActive  bool      `gorm:"not null" json:"isActive" bson:"isActive"`
	SellerID  *string   `gorm:"size:36;index" json:"sellerId" bson:"sellerId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

const (
	RoleUser   = "user"
	RoleSeller = "seller"
)
