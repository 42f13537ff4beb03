package repositories

import "github.com/Siddique-web/EchoPlay/internal/models"

// VideoRepository defines the interface for video catalog data access.
type VideoRepository interface {
	GetAll() ([]models.Video, error)
	GetByID(id uint) (*models.Video, error)
	Create(video *models.Video) error
	Delete(id uint) error
}
