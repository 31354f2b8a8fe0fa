package models

import "errors"

// Domain specific errors shared across handlers, services and adapters.
var (
	ErrNotFound           = errors.New("requested item not found")
	ErrConflict           = errors.New("item already exists or conflict")
	ErrUnauthenticated    = errors.New("authentication required or invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrServiceUnavailable = errors.New("external service unavailable")
	ErrStoreUnavailable   = errors.New("persistent store unavailable")
	ErrEmptyResponse      = errors.New("empty response from inference service")
	ErrUnrecognizedSpeech = errors.New("speech could not be recognized")
)
