package models

import "time"

// SalonSlot is one bookable (date, time) unit. Date is always midnight UTC.
type SalonSlot struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`

	Date        time.Time `gorm:"not null;uniqueIndex:idx_salon_slot_date_time" json:"date" bson:"date"`
	Time        string    `gorm:"size:5;not null;uniqueIndex:idx_salon_slot_date_time" json:"time" bson:"time"`
	IsAvailable bool      `gorm:"not null" json:"is_available" bson:"is_available"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
