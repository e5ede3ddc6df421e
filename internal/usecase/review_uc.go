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

// ReviewUsecase implements the review workflows.
type ReviewUsecase struct {
	reviews  domain.ReviewRepository
	listings domain.ListingRepository
	natsPub  domain.EventPublisher
	logger   *logger.Logger
}

func NewReviewUsecase(reviews domain.ReviewRepository, listings domain.ListingRepository, natsPub domain.EventPublisher, log *logger.Logger) *ReviewUsecase {
	return &ReviewUsecase{
		reviews:  reviews,
		listings: listings,
		natsPub:  natsPub,
		logger:   log.Named("ReviewUsecase"),
	}
}

// CreateReview appends a review to an existing listing. The review
// document and the listing's reference are written in two steps.
func (uc *ReviewUsecase) CreateReview(ctx context.Context, listingID, authorID string, rating int, comment string) (*domain.Review, error) {
	uc.logger.Info("Creating review",
		zap.String("listing_id", listingID),
		zap.String("author_id", authorID),
		zap.Int("rating", rating))

	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(comment) == "" {
		return nil, fmt.Errorf("%w: comment is required", domain.ErrInvalidInput)
	}

	if _, err := uc.listings.FindByID(ctx, listingID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		Rating:  rating,
		Comment: comment,
		Author:  authorID,
	}
	if err := uc.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := uc.listings.PushReview(ctx, listingID, review.ID); err != nil {
		// The review document exists but the listing does not reference
		// it; remove the document so no dangling review survives.
		if delErr := uc.reviews.Delete(ctx, review.ID); delErr != nil {
			uc.logger.Warn("Failed to clean up unreferenced review",
				zap.String("review_id", review.ID),
				zap.Error(delErr))
		}
		return nil, err
	}

	uc.publish(ctx, natsadapter.SubjectReviewCreated, map[string]interface{}{
		"review_id":  review.ID,
		"listing_id": listingID,
		"author_id":  authorID,
		"rating":     rating,
	})

	uc.logger.Info("Review created", zap.String("review_id", review.ID))
	return review, nil
}

// DeleteReview pulls the reference out of the listing atomically, then
// deletes the review document. Only the author may delete a review.
func (uc *ReviewUsecase) DeleteReview(ctx context.Context, listingID, reviewID, requesterID string) error {
	review, err := uc.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.Author != requesterID {
		uc.logger.Warn("Forbidden review delete",
			zap.String("review_id", reviewID),
			zap.String("author", review.Author),
			zap.String("requester", requesterID))
		return domain.ErrForbidden
	}

	if err := uc.listings.PullReview(ctx, listingID, reviewID); err != nil {
		return err
	}
	if err := uc.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	uc.publish(ctx, natsadapter.SubjectReviewDeleted, map[string]interface{}{
		"review_id":  reviewID,
		"listing_id": listingID,
	})

	uc.logger.Info("Review deleted", zap.String("review_id", reviewID), zap.String("listing_id", listingID))
	return nil
}

func (uc *ReviewUsecase) publish(ctx context.Context, subject string, data map[string]interface{}) {
	if err := uc.natsPub.Publish(ctx, subject, data); err != nil {
		uc.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
