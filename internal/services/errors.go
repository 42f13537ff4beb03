package services

import "errors"

// Sentinel errors shared across services. Handlers and middleware map
// these to HTTP statuses with errors.Is; the messages are safe to show
// to callers and never carry internal detail.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrExpiredToken       = errors.New("token expired")
	ErrMalformedToken     = errors.New("invalid token")
	ErrNotFound           = errors.New("not found")
	ErrNoData             = errors.New("no data provided")
)
