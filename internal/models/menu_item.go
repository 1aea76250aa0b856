package models

import "time"

type MenuItem struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	OutletID string `gorm:"type:uuid;not null;index" json:"outlet_id" bson:"outlet_id"`

	Name        string   `gorm:"size:100;not null" json:"name" bson:"name"`
	Price       float64  `gorm:"not null" json:"price" bson:"price"`
	DietaryTags []string `gorm:"type:jsonb;serializer:json" json:"dietary_tags" bson:"dietary_tags"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
