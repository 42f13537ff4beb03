package services

import (
	"fmt"
	"io"
	"log"

	"github.com/Siddique-web/EchoPlay/internal/models"
	"github.com/Siddique-web/EchoPlay/internal/repositories"
	"github.com/Siddique-web/EchoPlay/internal/storage"
	"github.com/Siddique-web/EchoPlay/pkg/rabbitmq"
)

// FileUpload is an uploaded asset: the client-supplied filename plus the
// byte stream. The filename only contributes the extension; storage
// names are generated.
type FileUpload struct {
	Filename string
	Reader   io.Reader
}

// AddVideoInput carries one video ingestion request. Exactly one of File
// or URL is honored: multipart requests supply File, JSON requests a
// pre-hosted URL stored verbatim.
type AddVideoInput struct {
	Title       string
	Description string
	URL         string
	File        *FileUpload
	Thumbnail   *FileUpload
	UploaderID  uint
}

// AddMusicInput carries one music ingestion request.
type AddMusicInput struct {
	Title      string
	Artist     string
	URL        string
	File       *FileUpload
	UploaderID uint
}

// MediaService handles the catalog's business logic: listing entries,
// ingesting new assets and deleting entries together with their locally
// stored files.
type MediaService struct {
	videoRepo repositories.VideoRepository
	musicRepo repositories.MusicRepository
	store     *storage.LocalStore
	mqClient  *rabbitmq.Client // may be nil; events are then skipped
}

// NewMediaService creates a new MediaService.
func NewMediaService(videoRepo repositories.VideoRepository, musicRepo repositories.MusicRepository, store *storage.LocalStore, mqClient *rabbitmq.Client) *MediaService {
	return &MediaService{
		videoRepo: videoRepo,
		musicRepo: musicRepo,
		store:     store,
		mqClient:  mqClient,
	}
}

// ListVideos retrieves all videos.
func (s *MediaService) ListVideos() ([]models.Video, error) {
	return s.videoRepo.GetAll()
}

// ListMusic retrieves all music records.
func (s *MediaService) ListMusic() ([]models.Music, error) {
	return s.musicRepo.GetAll()
}

// AddVideo ingests a video. The asset (and optional thumbnail) is stored
// durably before the metadata row is written, so a failure at any point
// can strand a file but never a row pointing at a missing asset.
func (s *MediaService) AddVideo(in AddVideoInput) (*models.Video, error) {
	url := in.URL
	if in.File != nil {
		stored, err := s.store.Save(storage.KindVideo, in.File.Filename, in.File.Reader)
		if err != nil {
			return nil, err
		}
		url = stored
	}
	if url == "" {
		return nil, fmt.Errorf("%w: video file or url is required", ErrNoData)
	}

	thumbnail := ""
	if in.Thumbnail != nil {
		stored, err := s.store.Save(storage.KindImage, in.Thumbnail.Filename, in.Thumbnail.Reader)
		if err != nil {
			return nil, err
		}
		thumbnail = stored
	}

	video := &models.Video{
		Title:       in.Title,
		Description: in.Description,
		URL:         url,
		Thumbnail:   thumbnail,
		UploadedBy:  in.UploaderID,
	}
	if err := s.videoRepo.Create(video); err != nil {
		return nil, fmt.Errorf("failed to create video record: %w", err)
	}

	s.publishEvent("media.ingested", map[string]interface{}{
		"media_type":  "video",
		"id":          video.ID,
		"title":       video.Title,
		"uploaded_by": video.UploadedBy,
	})
	return video, nil
}

// AddMusic ingests a music record, same store-then-write ordering as
// AddVideo.
func (s *MediaService) AddMusic(in AddMusicInput) (*models.Music, error) {
	url := in.URL
	if in.File != nil {
		stored, err := s.store.Save(storage.KindAudio, in.File.Filename, in.File.Reader)
		if err != nil {
			return nil, err
		}
		url = stored
	}
	if url == "" {
		return nil, fmt.Errorf("%w: music file or url is required", ErrNoData)
	}

	music := &models.Music{
		Title:      in.Title,
		Artist:     in.Artist,
		URL:        url,
		UploadedBy: in.UploaderID,
	}
	if err := s.musicRepo.Create(music); err != nil {
		return nil, fmt.Errorf("failed to create music record: %w", err)
	}

	s.publishEvent("media.ingested", map[string]interface{}{
		"media_type":  "music",
		"id":          music.ID,
		"title":       music.Title,
		"artist":      music.Artist,
		"uploaded_by": music.UploadedBy,
	})
	return music, nil
}

// DeleteVideo removes a video record and, when its locators point into
// the local store, the backing files. Already-absent files do not fail
// the deletion.
func (s *MediaService) DeleteVideo(id uint) error {
	video, err := s.videoRepo.GetByID(id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.store.Remove(video.URL); err != nil {
		return err
	}
	if video.Thumbnail != "" {
		if err := s.store.Remove(video.Thumbnail); err != nil {
			return err
		}
	}
	if err := s.videoRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete video record: %w", err)
	}

	s.publishEvent("media.deleted", map[string]interface{}{
		"media_type": "video",
		"id":         id,
	})
	return nil
}

// DeleteMusic removes a music record and its locally stored asset.
func (s *MediaService) DeleteMusic(id uint) error {
	music, err := s.musicRepo.GetByID(id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.store.Remove(music.URL); err != nil {
		return err
	}
	if err := s.musicRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete music record: %w", err)
	}

	s.publishEvent("media.deleted", map[string]interface{}{
		"media_type": "music",
		"id":         id,
	})
	return nil
}

func (s *MediaService) publishEvent(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping media event publication.")
		return
	}
	if err := s.mqClient.PublishMediaEvent(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
