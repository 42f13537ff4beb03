package models

import "time"

// Video is a catalog entry for an already-encoded video asset. URL and
// Thumbnail are opaque locators: either absolute URLs into the local
// upload directory or externally hosted addresses stored verbatim.
type Video struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Description string    `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	URL         string    `json:"url" gorm:"type:varchar(500);not null"`
	Thumbnail   string    `json:"thumbnail" gorm:"type:varchar(500)"`
	UploadedBy  uint      `json:"uploaded_by" gorm:"not null;index"`
	User        *User     `json:"-" gorm:"foreignKey:UploadedBy"`
	CreatedAt   time.Time `json:"created_at"`
}
