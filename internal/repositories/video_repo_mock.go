package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/Siddique-web/EchoPlay/internal/models"
)

// MockVideoRepository is an in-memory implementation of VideoRepository.
type MockVideoRepository struct {
	videos map[uint]models.Video
	nextID uint
	mu     sync.RWMutex
}

// NewMockVideoRepository creates a new instance of MockVideoRepository.
func NewMockVideoRepository() *MockVideoRepository {
	return &MockVideoRepository{
		videos: make(map[uint]models.Video),
		nextID: 1,
	}
}

// GetAll returns all videos.
func (r *MockVideoRepository) GetAll() ([]models.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	videoList := make([]models.Video, 0, len(r.videos))
	for _, video := range r.videos {
		videoList = append(videoList, video)
	}
	return videoList, nil
}

// GetByID returns a video by its ID.
func (r *MockVideoRepository) GetByID(id uint) (*models.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	video, ok := r.videos[id]
	if !ok {
		return nil, fmt.Errorf("video with ID %d not found", id)
	}
	return &video, nil
}

// Create adds a new video.
func (r *MockVideoRepository) Create(video *models.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if video.ID == 0 {
		video.ID = r.nextID
		r.nextID++
	}
	video.CreatedAt = time.Now()
	r.videos[video.ID] = *video
	return nil
}

// Delete removes a video by its ID.
func (r *MockVideoRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.videos[id]; !ok {
		return fmt.Errorf("video with ID %d not found for deletion", id)
	}
	delete(r.videos, id)
	return nil
}
