package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/Siddique-web/EchoPlay/internal/models"
)

// MockMusicRepository is an in-memory implementation of MusicRepository.
type MockMusicRepository struct {
	musics map[uint]models.Music
	nextID uint
	mu     sync.RWMutex
}

// NewMockMusicRepository creates a new instance of MockMusicRepository.
func NewMockMusicRepository() *MockMusicRepository {
	return &MockMusicRepository{
		musics: make(map[uint]models.Music),
		nextID: 1,
	}
}

// GetAll returns all music records.
func (r *MockMusicRepository) GetAll() ([]models.Music, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	musicList := make([]models.Music, 0, len(r.musics))
	for _, music := range r.musics {
		musicList = append(musicList, music)
	}
	return musicList, nil
}

// GetByID returns a music record by its ID.
func (r *MockMusicRepository) GetByID(id uint) (*models.Music, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	music, ok := r.musics[id]
	if !ok {
		return nil, fmt.Errorf("music with ID %d not found", id)
	}
	return &music, nil
}

// Create adds a new music record.
func (r *MockMusicRepository) Create(music *models.Music) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if music.ID == 0 {
		music.ID = r.nextID
		r.nextID++
	}
	music.CreatedAt = time.Now()
	r.musics[music.ID] = *music
	return nil
}

// Delete removes a music record by its ID.
func (r *MockMusicRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.musics[id]; !ok {
		return fmt.Errorf("music with ID %d not found for deletion", id)
	}
	delete(r.musics, id)
	return nil
}
