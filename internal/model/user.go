package model

import "time"

// User represents an account holder. Password holds the bcrypt hash once persisted
// and is never serialized.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username,omitempty" gorm:"uniqueIndex;size:255;not null" validate:"required,max=255"`
	Password       string    `json:"-" gorm:"size:255;not null"`
	FirstName      string    `json:"firstName,omitempty" gorm:"size:255"`
	LastName       string    `json:"lastName,omitempty" gorm:"size:255"`
	Age            *int      `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
	FavouriteColor string    `json:"favouriteColor,omitempty" gorm:"size:64;default:green"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Relations
	Contacts []Contact `json:"contacts,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
