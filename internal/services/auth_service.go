package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Siddique-web/EchoPlay/internal/models"
	"github.com/Siddique-web/EchoPlay/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 30 * 24 * time.Hour, // Token valid for 30 days
	}
}

// RegisterUser registers a new user, hashes their password, saves them to
// the database and issues a token for the fresh account.
func (s *AuthService) RegisterUser(email, password, name string) (*models.User, string, error) {
	if existingUser, err := s.userRepo.GetByEmail(email); err == nil && existingUser != nil {
		return nil, "", ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	if name == "" {
		// Default display name is the local part of the email.
		name = strings.SplitN(email, "@", 2)[0]
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
	}
	if err := s.userRepo.Create(user); err != nil {
		// A concurrent registration can slip past the lookup above and
		// lose to the unique index instead.
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginUser authenticates a user and returns the user plus a JWT token if
// successful. Unknown email and wrong password both come back as
// ErrInvalidCredentials so callers cannot probe which emails exist.
func (s *AuthService) LoginUser(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		// Covers both a mismatch and a malformed stored hash.
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GenerateToken issues a signed, self-contained token for the given user.
func (s *AuthService) GenerateToken(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":     time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the subject
// user ID. Expiry and malformedness are distinguished: an expired but
// correctly signed token fails with ErrExpiredToken, anything else with
// ErrMalformedToken.
func (s *AuthService) ValidateToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok {
			// Parse ORs the error bits together. A bad signature or
			// garbled token dominates: a token that is both forged and
			// expired must not pass as merely expired.
			if ve.Errors&(jwt.ValidationErrorMalformed|jwt.ValidationErrorUnverifiable|jwt.ValidationErrorSignatureInvalid) != 0 {
				return 0, ErrMalformedToken
			}
			if ve.Errors&jwt.ValidationErrorExpired != 0 {
				return 0, ErrExpiredToken
			}
		}
		return 0, ErrMalformedToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, ErrMalformedToken
	}

	// JSON numbers arrive as float64.
	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrMalformedToken
	}
	return uint(rawID), nil
}

// ResolveUser validates a token and resolves its subject to an existing
// user. A token whose subject no longer maps to a user fails the same
// way a malformed token does.
func (s *AuthService) ResolveUser(tokenString string) (*models.User, error) {
	userID, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrMalformedToken
	}
	return user, nil
}

// EnsureAdmin idempotently establishes the designated admin account:
// creates it when absent, flips the admin flag when present but not yet
// flagged, and does nothing when already correct. Fixed credentials are
// a deliberately weak bootstrap suitable only for closed deployments.
func (s *AuthService) EnsureAdmin(email, password string) error {
	admin, err := s.userRepo.GetByEmail(email)
	if err == nil && admin != nil {
		if admin.IsAdmin {
			return nil
		}
		admin.IsAdmin = true
		if err := s.userRepo.Update(admin); err != nil {
			return fmt.Errorf("failed to promote admin user: %w", err)
		}
		log.Printf("Promoted existing user %s to admin", email)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin = &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         "Admin User",
		IsAdmin:      true,
	}
	if err := s.userRepo.Create(admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	log.Printf("Admin user %s created", email)
	return nil
}
