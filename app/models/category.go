package models

import "time"

type Category struct {
	ID          string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id" bson:"_id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name" bson:"name"`
	Slug        string    `gorm:"size:100;not null;uniqueIndex" json:"slug" bson:"slug"`
	Category    string    `gorm:"size:100;not null" json:"category" bson:"category"`
	Description string    `gorm:"type:text" json:"description" bson:"description"`
	IsActive    bool      `gorm:"not null" json:"isActive" bson:"isActive"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
