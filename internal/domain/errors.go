package domain

import "errors"

// Sentinel error kinds. Callers discriminate with errors.Is; the HTTP
// layer maps each kind to a status code. Adapters must wrap provider
// failures into one of these instead of leaking raw client errors.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("forbidden")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Geocoding outcomes. ErrLocationNotFound is user-facing (the query
	// matched nothing); ErrGeocodingUnavailable means the provider call
	// itself failed.
	ErrLocationNotFound     = errors.New("location not recognized")
	ErrGeocodingUnavailable = errors.New("geocoding provider unavailable")

	// Upload outcomes.
	ErrFileTooLarge        = errors.New("file exceeds maximum size")
	ErrTooManyFiles        = errors.New("too many files")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrStorageUnavailable  = errors.New("image storage unavailable")

	ErrRepository = errors.New("repository failure")
)
