package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SubhamSahu809/ProRental/internal/domain"
	"github.com/SubhamSahu809/ProRental/internal/middleware"
	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"github.com/SubhamSahu809/ProRental/internal/platform/metrics"
	"github.com/SubhamSahu809/ProRental/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// ReviewHandler serves the review endpoints nested under a listing.
type ReviewHandler struct {
	uc      *usecase.ReviewUsecase
	metrics *metrics.Manager
	logger  *logger.Logger
}

func NewReviewHandler(uc *usecase.ReviewUsecase, mm *metrics.Manager, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{uc: uc, metrics: mm, logger: log.Named("ReviewHandler")}
}

type createReviewRequest struct {
	Review struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	} `json:"review"`
}

// HandleCreate responds to POST /api/listings/{id}/reviews.
func (h *ReviewHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "id")
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: invalid JSON body", domain.ErrInvalidInput))
		return
	}

	review, err := h.uc.CreateReview(r.Context(), listingID, userID, req.Review.Rating, req.Review.Comment)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.metrics.ReviewsCreatedTotal.Inc()
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Review added successfully!",
		"review":  toReviewResponse(review, nil),
	})
}

// HandleDelete responds to DELETE /api/listings/{id}/reviews/{reviewId}.
func (h *ReviewHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "id")
	reviewID := chi.URLParam(r, "reviewId")
	userID, _ := middleware.UserIDFromContext(r.Context())

	if err := h.uc.DeleteReview(r.Context(), listingID, reviewID, userID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Review deleted successfully!"})
}
