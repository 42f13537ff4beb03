package repositories

import "github.com/Siddique-web/EchoPlay/internal/models"

// MusicRepository defines the interface for music catalog data access.
type MusicRepository interface {
	GetAll() ([]models.Music, error)
	GetByID(id uint) (*models.Music, error)
	Create(music *models.Music) error
	Delete(id uint) error
}
