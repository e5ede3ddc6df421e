package usecase

import (
	"context"
	"fmt"
	"strings"

	natsadapter "github.com/SubhamSahu809/ProRental/internal/adapter/messaging/nats"
	"github.com/SubhamSahu809/ProRental/internal/domain"
	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"go.uber.org/zap"
)

// ListingInput carries the mutable listing fields for create and
// update. Image handling is separate: Files are new uploads,
// KeepImageURLs (update only) marks existing images to retain.
type ListingInput struct {
	Title            string
	Description      string
	Location         string
	Country          string
	Price            float64
	Bedrooms         float64
	Bathrooms        float64
	Area             float64
	Category         domain.ListingCategory
	PropertyCategory string
	Amenities        []string
	Files            []domain.UploadFile
	KeepImageURLs    []string
}

// ListingDetail is a listing with its reviews, review authors and
// owner populated, as returned by the show endpoint.
type ListingDetail struct {
	Listing *domain.Listing
	Owner   *domain.User
	Reviews []ReviewWithAuthor
}

// ReviewWithAuthor pairs a review with its author's public profile.
type ReviewWithAuthor struct {
	Review *domain.Review
	Author *domain.User
}

// ListingUsecase orchestrates the listing workflows: validation,
// geocoding, image upload reconciliation and persistence.
type ListingUsecase struct {
	repo     domain.ListingRepository
	reviews  domain.ReviewRepository
	users    domain.UserRepository
	storage  domain.ImageStorage
	geocoder domain.Geocoder
	cache    domain.ListingCache
	natsPub  domain.EventPublisher
	mailer   domain.Mailer
	logger   *logger.Logger
}

func NewListingUsecase(
	repo domain.ListingRepository,
	reviews domain.ReviewRepository,
	users domain.UserRepository,
	storage domain.ImageStorage,
	geocoder domain.Geocoder,
	cache domain.ListingCache,
	natsPub domain.EventPublisher,
	mailer domain.Mailer,
	log *logger.Logger,
) *ListingUsecase {
	return &ListingUsecase{
		repo:     repo,
		reviews:  reviews,
		users:    users,
		storage:  storage,
		geocoder: geocoder,
		cache:    cache,
		natsPub:  natsPub,
		mailer:   mailer,
		logger:   log.Named("ListingUsecase"),
	}
}

func validateListingFields(in ListingInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Country) == "" {
		return fmt.Errorf("%w: country is required", domain.ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if in.Bedrooms < 0 || in.Bathrooms < 0 || in.Area < 0 {
		return fmt.Errorf("%w: bedrooms, bathrooms and area must not be negative", domain.ErrInvalidInput)
	}
	if !domain.ValidCategory(in.Category) {
		return fmt.Errorf("%w: type must be %q or %q", domain.ErrInvalidInput, domain.CategoryBuy, domain.CategoryRent)
	}
	return nil
}

// CreateListing implements the create workflow: validate, geocode,
// upload the image batch, persist. Nothing is persisted unless every
// step succeeds; images uploaded before a downstream failure are
// compensated with a best-effort delete.
func (uc *ListingUsecase) CreateListing(ctx context.Context, ownerID string, in ListingInput) (*domain.Listing, error) {
	uc.logger.Info("Creating listing",
		zap.String("owner_id", ownerID),
		zap.String("title", in.Title),
		zap.Int("files", len(in.Files)))

	if len(in.Files) == 0 {
		return nil, fmt.Errorf("%w: at least one property image is required", domain.ErrInvalidInput)
	}
	if len(in.Files) > domain.MaxListingImages {
		return nil, fmt.Errorf("%w: got %d files, maximum is %d", domain.ErrTooManyFiles, len(in.Files), domain.MaxListingImages)
	}
	if err := validateListingFields(in); err != nil {
		return nil, err
	}

	geometry, err := uc.geocoder.Resolve(ctx, in.Location)
	if err != nil {
		uc.logger.Warn("Geocoding failed for create", zap.String("location", in.Location), zap.Error(err))
		return nil, err
	}

	images, err := uc.storage.UploadBatch(ctx, in.Files)
	if err != nil {
		// A mid-batch failure may have stored some objects already.
		uc.deleteImages(ctx, images)
		return nil, err
	}

	listing := &domain.Listing{
		Title:            in.Title,
		Description:      in.Description,
		Location:         in.Location,
		Country:          in.Country,
		Price:            in.Price,
		Bedrooms:         in.Bedrooms,
		Bathrooms:        in.Bathrooms,
		Area:             in.Area,
		Category:         in.Category,
		PropertyCategory: in.PropertyCategory,
		Amenities:        in.Amenities,
		Images:           images,
		Geometry:         *geometry,
		Owner:            ownerID,
	}

	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("Failed to persist listing, compensating uploaded images", zap.Error(err))
		uc.deleteImages(ctx, images)
		return nil, err
	}

	uc.invalidateCache(ctx)
	uc.publish(ctx, natsadapter.SubjectListingCreated, map[string]interface{}{
		"listing_id": listing.ID,
		"owner_id":   listing.Owner,
		"title":      listing.Title,
		"images":     len(listing.Images),
	})
	uc.notifyOwner(ctx, ownerID, listing.Title)

	uc.logger.Info("Listing created", zap.String("listing_id", listing.ID))
	return listing, nil
}

// UpdateListing reconciles the image set (kept ++ newly uploaded),
// best-effort deletes dropped images and applies the field patch.
// The stored coordinate is not recomputed even if the location text
// changed.
func (uc *ListingUsecase) UpdateListing(ctx context.Context, listingID, userID string, in ListingInput) (*domain.Listing, error) {
	uc.logger.Info("Updating listing",
		zap.String("listing_id", listingID),
		zap.String("user_id", userID),
		zap.Int("keep", len(in.KeepImageURLs)),
		zap.Int("new_files", len(in.Files)))

	listing, err := uc.repo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Owner != userID {
		uc.logger.Warn("Forbidden listing update",
			zap.String("listing_id", listingID),
			zap.String("owner", listing.Owner),
			zap.String("user_id", userID))
		return nil, domain.ErrForbidden
	}

	if err := validateListingFields(in); err != nil {
		return nil, err
	}

	keep := make(map[string]bool, len(in.KeepImageURLs))
	for _, url := range in.KeepImageURLs {
		keep[url] = true
	}

	// URLs in the keep set that match no existing image are silently
	// ignored.
	kept := make([]domain.Image, 0, len(listing.Images))
	dropped := make([]domain.Image, 0, len(listing.Images))
	for _, img := range listing.Images {
		if keep[img.URL] {
			kept = append(kept, img)
		} else {
			dropped = append(dropped, img)
		}
	}

	uploaded, err := uc.storage.UploadBatch(ctx, in.Files)
	if err != nil {
		uc.deleteImages(ctx, uploaded)
		return nil, err
	}

	final := append(kept, uploaded...)
	if len(final) == 0 {
		uc.deleteImages(ctx, uploaded)
		return nil, fmt.Errorf("%w: at least one image is required, keep existing or add new images", domain.ErrInvalidInput)
	}
	if len(final) > domain.MaxListingImages {
		uc.deleteImages(ctx, uploaded)
		return nil, fmt.Errorf("%w: a listing may have at most %d images", domain.ErrTooManyFiles, domain.MaxListingImages)
	}

	// Dropped images are removed from external storage exactly once;
	// individual failures never abort the update.
	uc.deleteImages(ctx, dropped)

	listing.Title = in.Title
	listing.Description = in.Description
	listing.Location = in.Location
	listing.Country = in.Country
	listing.Price = in.Price
	listing.Bedrooms = in.Bedrooms
	listing.Bathrooms = in.Bathrooms
	listing.Area = in.Area
	listing.Category = in.Category
	listing.PropertyCategory = in.PropertyCategory
	listing.Amenities = in.Amenities
	listing.Images = final

	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("Failed to persist listing update", zap.Error(err), zap.String("listing_id", listingID))
		return nil, err
	}

	uc.invalidateCache(ctx)
	uc.publish(ctx, natsadapter.SubjectListingUpdated, map[string]interface{}{
		"listing_id": listing.ID,
		"owner_id":   listing.Owner,
	})

	return listing, nil
}

// DeleteListing best-effort deletes every associated image exactly
// once, removes the row and cascades review documents.
func (uc *ListingUsecase) DeleteListing(ctx context.Context, listingID, userID string) error {
	listing, err := uc.repo.FindByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.Owner != userID {
		uc.logger.Warn("Forbidden listing delete",
			zap.String("listing_id", listingID),
			zap.String("owner", listing.Owner),
			zap.String("user_id", userID))
		return domain.ErrForbidden
	}

	uc.deleteImages(ctx, listing.Images)

	existed, err := uc.repo.Delete(ctx, listingID)
	if err != nil {
		return err
	}
	if !existed {
		return domain.ErrNotFound
	}

	if len(listing.Reviews) > 0 {
		if _, err := uc.reviews.DeleteByIDs(ctx, listing.Reviews); err != nil {
			uc.logger.Warn("Failed to cascade review deletion",
				zap.String("listing_id", listingID),
				zap.Int("reviews", len(listing.Reviews)),
				zap.Error(err))
		}
	}

	uc.invalidateCache(ctx)
	uc.publish(ctx, natsadapter.SubjectListingDeleted, map[string]interface{}{
		"listing_id": listingID,
		"owner_id":   listing.Owner,
	})

	uc.logger.Info("Listing deleted", zap.String("listing_id", listingID))
	return nil
}

// ListListings returns every listing, served from the cache when warm.
func (uc *ListingUsecase) ListListings(ctx context.Context) ([]*domain.Listing, error) {
	if cached, err := uc.cache.GetAll(ctx); err != nil {
		uc.logger.Warn("Listing cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	listings, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetAll(ctx, listings); err != nil {
		uc.logger.Warn("Listing cache write failed", zap.Error(err))
	}
	return listings, nil
}

// ListByOwner returns the caller's listings.
func (uc *ListingUsecase) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	return uc.repo.FindByOwner(ctx, ownerID)
}

// GetListing returns the raw listing without populated references.
func (uc *ListingUsecase) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	return uc.repo.FindByID(ctx, listingID)
}

// GetListingForEdit returns the raw listing after an ownership check.
func (uc *ListingUsecase) GetListingForEdit(ctx context.Context, listingID, userID string) (*domain.Listing, error) {
	listing, err := uc.repo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Owner != userID {
		return nil, domain.ErrForbidden
	}
	return listing, nil
}

// GetListingDetail returns a listing with owner, reviews and review
// authors populated.
func (uc *ListingUsecase) GetListingDetail(ctx context.Context, listingID string) (*ListingDetail, error) {
	listing, err := uc.repo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	detail := &ListingDetail{Listing: listing}

	owner, err := uc.users.FindByID(ctx, listing.Owner)
	if err != nil {
		uc.logger.Warn("Failed to populate listing owner",
			zap.String("listing_id", listingID),
			zap.String("owner_id", listing.Owner),
			zap.Error(err))
	} else {
		detail.Owner = owner
	}

	reviews, err := uc.reviews.FindByIDs(ctx, listing.Reviews)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]string, 0, len(reviews))
	seen := make(map[string]bool, len(reviews))
	for _, review := range reviews {
		if !seen[review.Author] {
			seen[review.Author] = true
			authorIDs = append(authorIDs, review.Author)
		}
	}

	authors, err := uc.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authorByID := make(map[string]*domain.User, len(authors))
	for _, author := range authors {
		authorByID[author.ID] = author
	}

	detail.Reviews = make([]ReviewWithAuthor, 0, len(reviews))
	for _, review := range reviews {
		detail.Reviews = append(detail.Reviews, ReviewWithAuthor{
			Review: review,
			Author: authorByID[review.Author],
		})
	}

	return detail, nil
}

// deleteImages removes external objects best-effort, each exactly
// once; failures are logged and never propagated.
func (uc *ListingUsecase) deleteImages(ctx context.Context, images []domain.Image) {
	for _, img := range images {
		if img.Filename == "" {
			continue
		}
		if err := uc.storage.Delete(ctx, img.Filename); err != nil {
			uc.logger.Warn("Failed to delete stored image",
				zap.String("filename", img.Filename),
				zap.Error(err))
		}
	}
}

func (uc *ListingUsecase) invalidateCache(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("Listing cache invalidation failed", zap.Error(err))
	}
}

func (uc *ListingUsecase) publish(ctx context.Context, subject string, data map[string]interface{}) {
	if err := uc.natsPub.Publish(ctx, subject, data); err != nil {
		uc.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}

func (uc *ListingUsecase) notifyOwner(ctx context.Context, ownerID, listingTitle string) {
	if uc.mailer == nil {
		return
	}
	owner, err := uc.users.FindByID(ctx, ownerID)
	if err != nil {
		uc.logger.Warn("Failed to load owner for notification", zap.String("owner_id", ownerID), zap.Error(err))
		return
	}
	if err := uc.mailer.SendListingCreatedEmail(owner.Email, listingTitle); err != nil {
		uc.logger.Warn("Failed to send listing created email", zap.String("owner_id", ownerID), zap.Error(err))
	}
}
