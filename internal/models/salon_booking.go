package models

import "time"

type SalonBooking struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id" bson:"user_id"`

	Service string    `gorm:"size:100" json:"service,omitempty" bson:"service,omitempty"`
	Date    time.Time `gorm:"not null;index" json:"date" bson:"date"`
	Time    string    `gorm:"size:5;not null" json:"time" bson:"time"`
	Status  string    `gorm:"size:20;not null;index" json:"status" bson:"status"`

	BookedAt    time.Time  `gorm:"not null" json:"booked_at" bson:"booked_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}
