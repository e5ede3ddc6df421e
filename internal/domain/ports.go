package domain

import (
	"context"
	"time"
)

// UploadFile is one raw multipart file handed to the image storage
// adapter.
type UploadFile struct {
	OriginalName string
	ContentType  string
	Size         int64
	Data         []byte
}

// ImageStorage uploads property photos to an external object store.
// UploadBatch validates every file before any network call and keeps
// the result in input order. Delete is idempotent: removing an absent
// object is not an error.
type ImageStorage interface {
	UploadBatch(ctx context.Context, files []UploadFile) ([]Image, error)
	Delete(ctx context.Context, filename string) error
}

// Geocoder resolves a free-text location to a single best-match point.
// A query matching nothing yields ErrLocationNotFound; a provider
// failure yields ErrGeocodingUnavailable.
type Geocoder interface {
	Resolve(ctx context.Context, query string) (*Geometry, error)
}

// ListingCache is a read-through cache for the listing index.
type ListingCache interface {
	GetAll(ctx context.Context) ([]*Listing, error)
	SetAll(ctx context.Context, listings []*Listing) error
	Invalidate(ctx context.Context) error
}

// EventPublisher emits domain events. Publishing is best-effort;
// callers log failures and continue.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// SessionStore tracks active session tokens so logout can revoke a
// token before its signature expires.
type SessionStore interface {
	Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error
	// UserID returns ErrNotFound for unknown or revoked tokens.
	UserID(ctx context.Context, tokenID string) (string, error)
	Revoke(ctx context.Context, tokenID string) error
}

// Mailer sends transactional email. Failures are logged, never fatal.
type Mailer interface {
	SendWelcomeEmail(toEmail, firstName string) error
	SendListingCreatedEmail(toEmail, listingTitle string) error
}
