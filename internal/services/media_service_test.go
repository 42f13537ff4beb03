package services_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Siddique-web/EchoPlay/internal/repositories"
	"github.com/Siddique-web/EchoPlay/internal/services"
	"github.com/Siddique-web/EchoPlay/internal/storage"

	"github.com/stretchr/testify/assert"
)

func newMediaService(t *testing.T) (*services.MediaService, *storage.LocalStore) {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir(), "http://media.example.com")
	assert.NoError(t, err)
	// nil RabbitMQ client: events are skipped, as in the tests for the
	// rest of the pipeline.
	svc := services.NewMediaService(repositories.NewMockVideoRepository(), repositories.NewMockMusicRepository(), store, nil)
	return svc, store
}

func TestMediaService_AddVideoFromURL(t *testing.T) {
	svc, _ := newMediaService(t)

	video, err := svc.AddVideo(services.AddVideoInput{
		Title:      "T",
		URL:        "http://x/y.mp4",
		UploaderID: 1,
	})
	assert.NoError(t, err)
	assert.NotZero(t, video.ID)
	// Pre-hosted URLs are stored verbatim.
	assert.Equal(t, "http://x/y.mp4", video.URL)
	assert.Equal(t, uint(1), video.UploadedBy)

	videos, err := svc.ListVideos()
	assert.NoError(t, err)
	assert.Len(t, videos, 1)
}

func TestMediaService_AddVideoFromFile(t *testing.T) {
	svc, store := newMediaService(t)

	video, err := svc.AddVideo(services.AddVideoInput{
		Title:       "Uploaded",
		Description: "desc",
		File:        &services.FileUpload{Filename: "clip.mov", Reader: strings.NewReader("bytes")},
		Thumbnail:   &services.FileUpload{Filename: "cover.png", Reader: strings.NewReader("img")},
		UploaderID:  2,
	})
	assert.NoError(t, err)
	assert.True(t, store.Owns(video.URL))
	assert.True(t, strings.HasSuffix(video.URL, ".mov"))
	assert.True(t, store.Owns(video.Thumbnail))
	assert.True(t, strings.HasSuffix(video.Thumbnail, ".png"))

	// The asset is durably stored before the row exists.
	_, err = os.Stat(filepath.Join(store.Dir(), filepath.Base(video.URL)))
	assert.NoError(t, err)
}

func TestMediaService_AddVideoCoercesDangerousExtension(t *testing.T) {
	svc, _ := newMediaService(t)

	video, err := svc.AddVideo(services.AddVideoInput{
		Title:      "Sketchy",
		File:       &services.FileUpload{Filename: "payload.exe", Reader: strings.NewReader("x")},
		UploaderID: 1,
	})
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(video.URL, ".mp4"))
}

func TestMediaService_AddVideoRequiresAsset(t *testing.T) {
	svc, _ := newMediaService(t)

	_, err := svc.AddVideo(services.AddVideoInput{Title: "No asset", UploaderID: 1})
	assert.ErrorIs(t, err, services.ErrNoData)

	// A bad filename never reaches the repository either.
	_, err = svc.AddVideo(services.AddVideoInput{
		Title:      "Bad name",
		File:       &services.FileUpload{Filename: "noextension", Reader: strings.NewReader("x")},
		UploaderID: 1,
	})
	assert.ErrorIs(t, err, storage.ErrValidation)

	videos, err := svc.ListVideos()
	assert.NoError(t, err)
	assert.Empty(t, videos)
}

func TestMediaService_DeleteVideo(t *testing.T) {
	svc, store := newMediaService(t)

	video, err := svc.AddVideo(services.AddVideoInput{
		Title:      "To delete",
		File:       &services.FileUpload{Filename: "clip.mp4", Reader: strings.NewReader("bytes")},
		UploaderID: 1,
	})
	assert.NoError(t, err)
	assetPath := filepath.Join(store.Dir(), filepath.Base(video.URL))

	assert.NoError(t, svc.DeleteVideo(video.ID))
	_, err = os.Stat(assetPath)
	assert.True(t, os.IsNotExist(err))

	// Deleting again reports not found, not a storage failure.
	assert.ErrorIs(t, svc.DeleteVideo(video.ID), services.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteVideo(9999), services.ErrNotFound)
}

func TestMediaService_DeleteVideoToleratesAbsentAsset(t *testing.T) {
	svc, store := newMediaService(t)

	video, err := svc.AddVideo(services.AddVideoInput{
		Title:      "Orphan row",
		File:       &services.FileUpload{Filename: "clip.mp4", Reader: strings.NewReader("bytes")},
		UploaderID: 1,
	})
	assert.NoError(t, err)

	// Simulate an asset that vanished out of band.
	assert.NoError(t, os.Remove(filepath.Join(store.Dir(), filepath.Base(video.URL))))
	assert.NoError(t, svc.DeleteVideo(video.ID))
}

func TestMediaService_AddAndDeleteMusic(t *testing.T) {
	svc, store := newMediaService(t)

	_, err := svc.AddMusic(services.AddMusicInput{Title: "Song", Artist: "Band", UploaderID: 1})
	assert.ErrorIs(t, err, services.ErrNoData)

	music, err := svc.AddMusic(services.AddMusicInput{
		Title:      "Song",
		Artist:     "Band",
		File:       &services.FileUpload{Filename: "track.WAV", Reader: strings.NewReader("audio")},
		UploaderID: 3,
	})
	assert.NoError(t, err)
	assert.True(t, store.Owns(music.URL))
	assert.True(t, strings.HasSuffix(music.URL, ".wav"))
	assert.Equal(t, uint(3), music.UploadedBy)

	musics, err := svc.ListMusic()
	assert.NoError(t, err)
	assert.Len(t, musics, 1)

	assert.NoError(t, svc.DeleteMusic(music.ID))
	assert.ErrorIs(t, svc.DeleteMusic(music.ID), services.ErrNotFound)

	musics, err = svc.ListMusic()
	assert.NoError(t, err)
	assert.Empty(t, musics)
}

// Music added from a URL keeps the external locator and deletion leaves
// the remote asset alone.
func TestMediaService_MusicFromURL(t *testing.T) {
	svc, _ := newMediaService(t)

	music, err := svc.AddMusic(services.AddMusicInput{
		Title:      "Remote",
		Artist:     "Band",
		URL:        "http://elsewhere.example.com/track.mp3",
		UploaderID: 1,
	})
	assert.NoError(t, err)
	assert.Equal(t, "http://elsewhere.example.com/track.mp3", music.URL)
	assert.NoError(t, svc.DeleteMusic(music.ID))
}
