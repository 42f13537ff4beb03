package repositories

import (
	"fmt"

	"github.com/Siddique-web/EchoPlay/internal/models"

	"gorm.io/gorm"
)

// GORMMusicRepository is a GORM implementation of MusicRepository.
type GORMMusicRepository struct {
	db *gorm.DB
}

// NewGORMMusicRepository creates a new instance of GORMMusicRepository.
func NewGORMMusicRepository(db *gorm.DB) *GORMMusicRepository {
	return &GORMMusicRepository{
		db: db,
	}
}

// GetAll retrieves all music records from the database.
func (r *GORMMusicRepository) GetAll() ([]models.Music, error) {
	var musics []models.Music
	if err := r.db.Find(&musics).Error; err != nil {
		return nil, fmt.Errorf("failed to get all music: %w", err)
	}
	return musics, nil
}

// GetByID retrieves a single music record by its ID from the database.
func (r *GORMMusicRepository) GetByID(id uint) (*models.Music, error) {
	var music models.Music
	if err := r.db.First(&music, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("music with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get music by ID %d: %w", id, err)
	}
	return &music, nil
}

// Create creates a new music record in the database.
func (r *GORMMusicRepository) Create(music *models.Music) error {
	if err := r.db.Create(music).Error; err != nil {
		return fmt.Errorf("failed to create music: %w", err)
	}
	return nil
}

// Delete deletes a music record by its ID from the database.
func (r *GORMMusicRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Music{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete music: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("music with ID %d not found for deletion", id)
	}
	return nil
}
