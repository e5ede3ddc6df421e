package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/SubhamSahu809/ProRental/internal/domain"
	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReviewUC() (*ReviewUsecase, *MockReviewRepository, *MockListingRepository, *MockEventPublisher) {
	reviews := new(MockReviewRepository)
	listings := new(MockListingRepository)
	natsPub := new(MockEventPublisher)
	uc := NewReviewUsecase(reviews, listings, natsPub, logger.NewNop())
	return uc, reviews, listings, natsPub
}

func TestReviewUsecase_CreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		uc, reviews, listings, natsPub := newReviewUC()

		listings.On("FindByID", ctx, "listing-1").Return(&domain.Listing{ID: "listing-1"}, nil).Once()
		reviews.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Review).ID = "rev-1"
		}).Return(nil).Once()
		listings.On("PushReview", ctx, "listing-1", "rev-1").Return(nil).Once()
		natsPub.On("Publish", ctx, "review.created", mock.Anything).Return(nil).Once()

		review, err := uc.CreateReview(ctx, "listing-1", "user-2", 4, "Great stay")

		assert.NoError(t, err)
		assert.Equal(t, "rev-1", review.ID)
		assert.Equal(t, "user-2", review.Author)
		reviews.AssertExpectations(t)
		listings.AssertExpectations(t)
	})

	t.Run("RatingOutOfRange", func(t *testing.T) {
		uc, reviews, listings, _ := newReviewUC()

		for _, rating := range []int{0, 6, -1} {
			_, err := uc.CreateReview(ctx, "listing-1", "user-2", rating, "hmm")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		}
		reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		listings.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("EmptyComment", func(t *testing.T) {
		uc, reviews, _, _ := newReviewUC()

		_, err := uc.CreateReview(ctx, "listing-1", "user-2", 3, "   ")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("UnknownListing", func(t *testing.T) {
		uc, reviews, listings, _ := newReviewUC()

		listings.On("FindByID", ctx, "nope").Return(nil, domain.ErrNotFound).Once()

		_, err := uc.CreateReview(ctx, "nope", "user-2", 4, "Great stay")

		assert.ErrorIs(t, err, domain.ErrNotFound)
		reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("PushFailureCleansUpOrphanReview", func(t *testing.T) {
		uc, reviews, listings, natsPub := newReviewUC()

		listings.On("FindByID", ctx, "listing-1").Return(&domain.Listing{ID: "listing-1"}, nil).Once()
		reviews.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Review).ID = "rev-1"
		}).Return(nil).Once()
		listings.On("PushReview", ctx, "listing-1", "rev-1").Return(errors.New("write failed")).Once()
		reviews.On("Delete", ctx, "rev-1").Return(nil).Once()

		_, err := uc.CreateReview(ctx, "listing-1", "user-2", 4, "Great stay")

		assert.Error(t, err)
		reviews.AssertExpectations(t)
		natsPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReviewUsecase_DeleteReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		uc, reviews, listings, natsPub := newReviewUC()

		reviews.On("FindByID", ctx, "rev-1").Return(&domain.Review{ID: "rev-1", Author: "user-2"}, nil).Once()
		listings.On("PullReview", ctx, "listing-1", "rev-1").Return(nil).Once()
		reviews.On("Delete", ctx, "rev-1").Return(nil).Once()
		natsPub.On("Publish", ctx, "review.deleted", mock.Anything).Return(nil).Once()

		err := uc.DeleteReview(ctx, "listing-1", "rev-1", "user-2")

		assert.NoError(t, err)
		reviews.AssertExpectations(t)
		listings.AssertExpectations(t)
	})

	t.Run("NonAuthorForbidden", func(t *testing.T) {
		uc, reviews, listings, _ := newReviewUC()

		reviews.On("FindByID", ctx, "rev-1").Return(&domain.Review{ID: "rev-1", Author: "user-2"}, nil).Once()

		err := uc.DeleteReview(ctx, "listing-1", "rev-1", "intruder")

		assert.ErrorIs(t, err, domain.ErrForbidden)
		listings.AssertNotCalled(t, "PullReview", mock.Anything, mock.Anything, mock.Anything)
		reviews.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("UnknownReview", func(t *testing.T) {
		uc, reviews, _, _ := newReviewUC()

		reviews.On("FindByID", ctx, "nope").Return(nil, domain.ErrNotFound).Once()

		err := uc.DeleteReview(ctx, "listing-1", "nope", "user-2")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
