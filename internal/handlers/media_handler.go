package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/Siddique-web/EchoPlay/internal/middleware"
	"github.com/Siddique-web/EchoPlay/internal/services"
	"github.com/Siddique-web/EchoPlay/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// MediaHandler handles HTTP requests for the video and music catalog.
type MediaHandler struct {
	mediaService *services.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
	}
}

// RegisterReadRoutes registers the catalog read routes on a router that
// carries the authentication guard.
func (h *MediaHandler) RegisterReadRoutes(router fiber.Router) {
	router.Get("/videos", h.HandleListVideos)
	router.Get("/music", h.HandleListMusic)
}

// RegisterAdminRoutes registers the ingestion and deletion routes on a
// router that carries the admin guard.
func (h *MediaHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Post("/videos", h.HandleAddVideo)
	router.Post("/music", h.HandleAddMusic)
	router.Delete("/videos/:id", h.HandleDeleteVideo)
	router.Delete("/music/:id", h.HandleDeleteMusic)
}

// HandleListVideos returns all videos in the catalog.
func (h *MediaHandler) HandleListVideos(c *fiber.Ctx) error {
	videos, err := h.mediaService.ListVideos()
	if err != nil {
		log.Printf("Error listing videos: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error retrieving videos",
		})
	}
	return c.JSON(videos)
}

// HandleListMusic returns all music records in the catalog.
func (h *MediaHandler) HandleListMusic(c *fiber.Ctx) error {
	musics, err := h.mediaService.ListMusic()
	if err != nil {
		log.Printf("Error listing music: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error retrieving music",
		})
	}
	return c.JSON(musics)
}

// AddVideoJSON is the JSON body for the URL ingestion path.
type AddVideoJSON struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// HandleAddVideo ingests a video: multipart requests carry the asset
// bytes (field "video", optional "thumbnail"), JSON requests a
// pre-hosted URL stored verbatim.
func (h *MediaHandler) HandleAddVideo(c *fiber.Ctx) error {
	in := services.AddVideoInput{
		UploaderID: middleware.CurrentUser(c).ID,
	}

	if isMultipart(c) {
		in.Title = c.FormValue("title")
		in.Description = c.FormValue("description")

		file, closeFile, err := openFormFile(c, "video")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Video file is required",
			})
		}
		defer closeFile()
		in.File = file

		if thumb, closeThumb, err := openFormFile(c, "thumbnail"); err == nil {
			defer closeThumb()
			in.Thumbnail = thumb
		}
	} else {
		var req AddVideoJSON
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
			})
		}
		in.Title = req.Title
		in.Description = req.Description
		in.URL = req.URL
	}

	if in.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Title is required",
		})
	}

	video, err := h.mediaService.AddVideo(in)
	if err != nil {
		return ingestionError(c, "video", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Video added successfully",
		"video":   video,
	})
}

// AddMusicJSON is the JSON body for the URL ingestion path.
type AddMusicJSON struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
}

// HandleAddMusic ingests a music record, multipart field "music" or a
// JSON URL.
func (h *MediaHandler) HandleAddMusic(c *fiber.Ctx) error {
	in := services.AddMusicInput{
		UploaderID: middleware.CurrentUser(c).ID,
	}

	if isMultipart(c) {
		in.Title = c.FormValue("title")
		in.Artist = c.FormValue("artist")

		file, closeFile, err := openFormFile(c, "music")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Music file is required",
			})
		}
		defer closeFile()
		in.File = file
	} else {
		var req AddMusicJSON
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
			})
		}
		in.Title = req.Title
		in.Artist = req.Artist
		in.URL = req.URL
	}

	if in.Title == "" || in.Artist == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Title and artist are required",
		})
	}

	music, err := h.mediaService.AddMusic(in)
	if err != nil {
		return ingestionError(c, "music", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Music added successfully",
		"music":   music,
	})
}

// HandleDeleteVideo deletes a video record and its locally stored asset.
func (h *MediaHandler) HandleDeleteVideo(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Video not found",
		})
	}
	if err := h.mediaService.DeleteVideo(id); err != nil {
		return deletionError(c, "Video", err)
	}
	return c.JSON(fiber.Map{
		"message": "Video deleted successfully",
	})
}

// HandleDeleteMusic deletes a music record and its locally stored asset.
func (h *MediaHandler) HandleDeleteMusic(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Music not found",
		})
	}
	if err := h.mediaService.DeleteMusic(id); err != nil {
		return deletionError(c, "Music", err)
	}
	return c.JSON(fiber.Map{
		"message": "Music deleted successfully",
	})
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// openFormFile opens a multipart form file and wraps it as a service
// upload. The returned closer must be called after ingestion.
func openFormFile(c *fiber.Ctx, field string) (*services.FileUpload, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	var f multipart.File
	f, err = fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}
	upload := &services.FileUpload{
		Filename: fileHeader.Filename,
		Reader:   f,
	}
	return upload, func() { f.Close() }, nil
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func ingestionError(c *fiber.Ctx, kind string, err error) error {
	switch {
	case errors.Is(err, services.ErrNoData):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A " + kind + " file or url is required",
		})
	case errors.Is(err, storage.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid file name",
		})
	default:
		log.Printf("Error adding %s: %v", kind, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error adding " + kind,
		})
	}
}

func deletionError(c *fiber.Ctx, kind string, err error) error {
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": kind + " not found",
		})
	}
	log.Printf("Error deleting %s: %v", kind, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Error deleting " + kind,
	})
}
