package models

import "time"

type FoodOutlet struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	VendorID string `gorm:"type:uuid;index" json:"vendor_id" bson:"vendor_id"`

	Name           string `gorm:"size:100;uniqueIndex;not null" json:"name" bson:"name"`
	OperatingHours string `gorm:"size:100;not null" json:"operating_hours" bson:"operating_hours"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
