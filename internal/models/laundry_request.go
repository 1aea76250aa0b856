package models

import "time"

type LaundryItem struct {
	Name                string   `json:"name" bson:"name"`
	Quantity            int      `json:"quantity" bson:"quantity"`
	Stains              []string `json:"stains,omitempty" bson:"stains,omitempty"`
	SpecialInstructions string   `json:"special_instructions,omitempty" bson:"special_instructions,omitempty"`
}

type LaundryRequest struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id" bson:"user_id"`

	// Contact snapshot taken from the user record when the request was created.
	// It is not refreshed if the user later changes their details.
	Email string `gorm:"size:100" json:"email" bson:"email"`
	Phone string `gorm:"size:20" json:"phone,omitempty" bson:"phone,omitempty"`

	Type  string        `gorm:"size:20;not null" json:"type" bson:"type"`
	Items []LaundryItem `gorm:"type:jsonb;serializer:json" json:"items" bson:"items"`

	Status        string `gorm:"size:20;not null;index" json:"status" bson:"status"`
	PaymentStatus string `gorm:"size:20;not null" json:"payment_status" bson:"payment_status"`

	CreatedAt   time.Time  `gorm:"index" json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
	CompletedAt *time.Time `json:"completed_at" bson:"completed_at"`
}
