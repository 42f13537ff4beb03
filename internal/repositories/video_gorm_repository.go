package repositories

import (
	"fmt"

	"github.com/Siddique-web/EchoPlay/internal/models"

	"gorm.io/gorm"
)

// GORMVideoRepository is a GORM implementation of VideoRepository.
type GORMVideoRepository struct {
	db *gorm.DB
}

// NewGORMVideoRepository creates a new instance of GORMVideoRepository.
func NewGORMVideoRepository(db *gorm.DB) *GORMVideoRepository {
	return &GORMVideoRepository{
		db: db,
	}
}

// GetAll retrieves all videos from the database.
func (r *GORMVideoRepository) GetAll() ([]models.Video, error) {
	var videos []models.Video
	if err := r.db.Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("failed to get all videos: %w", err)
	}
	return videos, nil
}

// GetByID retrieves a single video by its ID from the database.
func (r *GORMVideoRepository) GetByID(id uint) (*models.Video, error) {
	var video models.Video
	if err := r.db.First(&video, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("video with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get video by ID %d: %w", id, err)
	}
	return &video, nil
}

// Create creates a new video record in the database.
func (r *GORMVideoRepository) Create(video *models.Video) error {
	if err := r.db.Create(video).Error; err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

// Delete deletes a video by its ID from the database.
func (r *GORMVideoRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Video{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete video: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("video with ID %d not found for deletion", id)
	}
	return nil
}
