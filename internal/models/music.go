package models

import "time"

// Music is a catalog entry for an audio asset. Same shape as Video minus
// the thumbnail, plus a required artist.
type Music struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Artist     string    `json:"artist" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	URL        string    `json:"url" gorm:"type:varchar(500);not null"`
	UploadedBy uint      `json:"uploaded_by" gorm:"not null;index"`
	User       *User     `json:"-" gorm:"foreignKey:UploadedBy"`
	CreatedAt  time.Time `json:"created_at"`
}
