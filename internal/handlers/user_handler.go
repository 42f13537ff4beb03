package handlers

import (
	"errors"
	"log"

	"github.com/Siddique-web/EchoPlay/internal/middleware"
	"github.com/Siddique-web/EchoPlay/internal/services"
	"github.com/Siddique-web/EchoPlay/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for the current user's profile.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the profile routes. The passed router is
// expected to already carry the authentication guard.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/user/profile", h.HandleGetProfile)
	router.Put("/user/profile", h.HandleUpdateProfile)
	router.Post("/user/profile-image", h.HandleUploadProfileImage)
}

// HandleGetProfile returns the authenticated user's record.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// UpdateProfileRequest carries the optional profile fields. Pointer
// fields distinguish "absent" from "set to empty".
type UpdateProfileRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=100"`
	ProfileImage *string `json:"profile_image" validate:"omitempty,max=500"`
}

// HandleUpdateProfile updates the authenticated user's display name
// and/or profile image locator.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	user, err := h.userService.UpdateProfile(middleware.CurrentUser(c), req.Name, req.ProfileImage)
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "No data provided",
			})
		}
		log.Printf("Error updating profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update profile",
		})
	}

	return c.JSON(user)
}

// Base64ImageRequest is the JSON fallback for clients that cannot send
// multipart bodies.
type Base64ImageRequest struct {
	Image string `json:"image"`
}

// HandleUploadProfileImage accepts either a multipart file under "file"
// or a JSON body with a base64 "image" and stores it under the user's
// stable profile image name.
func (h *UserHandler) HandleUploadProfileImage(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if err == nil {
		if fileHeader.Filename == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "No file selected",
			})
		}
		f, err := fileHeader.Open()
		if err != nil {
			log.Printf("Error opening uploaded profile image: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error uploading file",
			})
		}
		defer f.Close()

		locator, err := h.userService.SetProfileImageFile(user, fileHeader.Filename, f)
		if err != nil {
			return profileImageError(c, err)
		}
		return c.JSON(fiber.Map{
			"message":       "Profile image uploaded successfully",
			"profile_image": locator,
		})
	}

	var req Base64ImageRequest
	if err := c.BodyParser(&req); err != nil || req.Image == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No file provided",
		})
	}

	locator, err := h.userService.SetProfileImageBase64(user, req.Image)
	if err != nil {
		return profileImageError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":       "Profile image uploaded successfully",
		"profile_image": locator,
	})
}

func profileImageError(c *fiber.Ctx, err error) error {
	if errors.Is(err, storage.ErrValidation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid image",
		})
	}
	log.Printf("Error storing profile image: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Error uploading file",
	})
}
