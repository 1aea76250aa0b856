package models

import "time"

type User struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`

	Name         string `gorm:"size:100;not null" json:"name" bson:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email" bson:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-" bson:"password_hash"`
	Phone        string `gorm:"size:20" json:"phone,omitempty" bson:"phone,omitempty"`
	Role         string `gorm:"size:20;not null" json:"role" bson:"role"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
