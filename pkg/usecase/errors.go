package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	ErrEmptyCommand     = errors.New("empty command")
	ErrLLMNotConfigured = errors.New("language model client is not configured")
	ErrMissingUser      = errors.New("no user identity available")
)
