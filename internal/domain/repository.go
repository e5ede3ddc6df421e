package domain

import "context"

// ListingRepository is the persistence boundary for listings. The
// implementation enforces the image-count invariant [1,8] on every
// write; it never touches external image storage.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	Update(ctx context.Context, listing *Listing) error
	// Delete reports whether a document existed.
	Delete(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindAll(ctx context.Context) ([]*Listing, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*Listing, error)
	// PushReview appends a review reference to the listing.
	PushReview(ctx context.Context, listingID, reviewID string) error
	// PullReview atomically removes a review reference from the listing.
	PullReview(ctx context.Context, listingID, reviewID string) error
}

// ReviewRepository persists review documents.
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	FindByID(ctx context.Context, id string) (*Review, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Review, error)
	Delete(ctx context.Context, id string) error
	// DeleteByIDs removes a batch of reviews, returning how many existed.
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

// UserRepository persists users. Emails are stored lowercased and are
// unique.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*User, error)
}
