package models

import "time"

type OrderLine struct {
	MenuItemID string `json:"item_id" bson:"item_id"`
	Quantity   int    `json:"quantity" bson:"quantity"`
}

// Order doubles as the cart while Status is "cart"; checkout promotes the same row.
type Order struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	UserID   string `gorm:"type:uuid;not null;index" json:"user_id" bson:"user_id"`
	OutletID string `gorm:"type:uuid;not null;index" json:"outlet_id" bson:"outlet_id"`

	Items  []OrderLine `gorm:"type:jsonb;serializer:json" json:"items" bson:"items"`
	Status string      `gorm:"size:20;not null;index" json:"status" bson:"status"`
	Total  float64     `gorm:"not null" json:"total" bson:"total"`

	// Version guards concurrent cart writes.
	Version int `gorm:"not null" json:"-" bson:"version"`

	CreatedAt time.Time `gorm:"index" json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
