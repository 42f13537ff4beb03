package models

import "time"

// User represents an account in the catalog. PasswordHash is never
// serialized to JSON and is only ever written by the auth service.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"`
	Name         string    `json:"name" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	ProfileImage string    `json:"profile_image" gorm:"type:varchar(500)"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
