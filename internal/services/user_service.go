package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/Siddique-web/EchoPlay/internal/models"
	"github.com/Siddique-web/EchoPlay/internal/repositories"
	"github.com/Siddique-web/EchoPlay/internal/storage"
)

// UserService handles profile reads and updates, including profile
// image ingestion through the local asset store.
type UserService struct {
	userRepo repositories.UserRepository
	store    *storage.LocalStore
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, store *storage.LocalStore) *UserService {
	return &UserService{
		userRepo: userRepo,
		store:    store,
	}
}

// UpdateProfile applies the provided optional fields to the user. Email
// and password hash are never touched through this path. ErrNoData is
// returned when the request carries nothing to update.
func (s *UserService) UpdateProfile(user *models.User, name, profileImage *string) (*models.User, error) {
	if name == nil && profileImage == nil {
		return nil, ErrNoData
	}
	if name != nil {
		user.Name = *name
	}
	if profileImage != nil {
		user.ProfileImage = *profileImage
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// SetProfileImageFile stores an uploaded image under the user's stable
// profile name (overwriting any prior image) and records the locator.
func (s *UserService) SetProfileImageFile(user *models.User, filename string, r io.Reader) (string, error) {
	locator, err := s.store.SaveProfileImage(user.ID, filename, r)
	if err != nil {
		return "", err
	}
	user.ProfileImage = locator
	if err := s.userRepo.Update(user); err != nil {
		return "", fmt.Errorf("failed to save profile image locator: %w", err)
	}
	return locator, nil
}

// SetProfileImageBase64 accepts a base64-encoded image, optionally
// wrapped in a data URL, decodes it and stores it as the user's profile
// image. JSON clients that cannot send multipart bodies use this path.
func (s *UserService) SetProfileImageBase64(user *models.User, data string) (string, error) {
	if strings.HasPrefix(data, "data:image") {
		if idx := strings.Index(data, ","); idx >= 0 {
			data = data[idx+1:]
		}
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("%w: malformed base64 image", storage.ErrValidation)
	}
	return s.SetProfileImageFile(user, "profile.jpg", bytes.NewReader(raw))
}
