package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/SubhamSahu809/ProRental/internal/adapter/storage/s3"
	"github.com/SubhamSahu809/ProRental/internal/domain"
	"github.com/SubhamSahu809/ProRental/internal/middleware"
	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"github.com/SubhamSahu809/ProRental/internal/platform/metrics"
	"github.com/SubhamSahu809/ProRental/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// maxMultipartMemory bounds in-memory multipart buffering; larger
// parts spill to temporary files.
const maxMultipartMemory = 16 << 20

// Multipart field names, kept identical to the original API.
const (
	fieldImages     = "listing[images]"
	fieldKeepImages = "listing[keepImages][]"
)

// ListingHandler serves the listing endpoints.
type ListingHandler struct {
	uc      *usecase.ListingUsecase
	metrics *metrics.Manager
	logger  *logger.Logger
}

func NewListingHandler(uc *usecase.ListingUsecase, mm *metrics.Manager, log *logger.Logger) *ListingHandler {
	return &ListingHandler{uc: uc, metrics: mm, logger: log.Named("ListingHandler")}
}

// HandleIndex responds to GET /api/listings.
func (h *ListingHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	listings, err := h.uc.ListListings(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingResponses(listings))
}

// HandleShow responds to GET /api/listings/{id} with reviews, review
// authors and owner populated.
func (h *ListingHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.uc.GetListingDetail(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := toListingResponse(detail.Listing)
	if detail.Owner != nil {
		resp.Owner = toUserResponse(detail.Owner)
	}
	reviews := make([]*reviewResponse, 0, len(detail.Reviews))
	for _, rw := range detail.Reviews {
		reviews = append(reviews, toReviewResponse(rw.Review, rw.Author))
	}
	resp.Reviews = reviews

	writeJSON(w, http.StatusOK, resp)
}

// HandleCreate responds to POST /api/listings (multipart form).
func (h *ListingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	input, err := parseListingForm(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	listing, err := h.uc.CreateListing(r.Context(), userID, *input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.metrics.ListingsCreatedTotal.Inc()
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "New Property Created!",
		"listing": toListingResponse(listing),
	})
}

// HandleEdit responds to GET /api/listings/{id}/edit with the raw
// listing for form prefill.
func (h *ListingHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID, _ := middleware.UserIDFromContext(r.Context())

	listing, err := h.uc.GetListingForEdit(r.Context(), id, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingResponse(listing))
}

// HandleUpdate responds to PUT /api/listings/{id} (multipart form with
// keepImages and optional new files).
func (h *ListingHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID, _ := middleware.UserIDFromContext(r.Context())

	input, err := parseListingForm(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	listing, err := h.uc.UpdateListing(r.Context(), id, userID, *input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.metrics.ListingUpdatesTotal.Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Property Details Updated!",
		"listing": toListingResponse(listing),
	})
}

// HandleDelete responds to DELETE /api/listings/{id}.
func (h *ListingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID, _ := middleware.UserIDFromContext(r.Context())

	if err := h.uc.DeleteListing(r.Context(), id, userID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.metrics.ListingDeletesTotal.Inc()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Property Deleted!"})
}

// HandleOwnerListings responds to GET /api/listings/owner/properties.
func (h *ListingHandler) HandleOwnerListings(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	listings, err := h.uc.ListByOwner(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingResponses(listings))
}

// parseListingForm decodes the bracketed multipart form into a
// ListingInput. File payloads are read fully here so the storage
// adapter can validate sizes before any network call.
func parseListingForm(r *http.Request) (*usecase.ListingInput, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, fmt.Errorf("%w: expected multipart form data: %v", domain.ErrInvalidInput, err)
	}

	field := func(name string) string {
		return strings.TrimSpace(r.FormValue("listing[" + name + "]"))
	}

	input := &usecase.ListingInput{
		Title:            field("title"),
		Description:      field("description"),
		Location:         field("location"),
		Country:          field("country"),
		Category:         domain.ListingCategory(field("type")),
		PropertyCategory: field("propertyCategory"),
	}

	var err error
	if input.Price, err = parseFormNumber(field("price"), "price"); err != nil {
		return nil, err
	}
	if input.Bedrooms, err = parseFormNumber(field("bedrooms"), "bedrooms"); err != nil {
		return nil, err
	}
	if input.Bathrooms, err = parseFormNumber(field("bathrooms"), "bathrooms"); err != nil {
		return nil, err
	}
	if input.Area, err = parseFormNumber(field("area"), "area"); err != nil {
		return nil, err
	}

	input.Amenities = parseAmenities(r.Form["listing[amenities]"])

	if form := r.MultipartForm; form != nil {
		input.KeepImageURLs = append(form.Value[fieldKeepImages], form.Value["listing[keepImages]"]...)

		for _, fh := range form.File[fieldImages] {
			file, err := fh.Open()
			if err != nil {
				return nil, fmt.Errorf("%w: failed to read uploaded file %q: %v", domain.ErrInvalidInput, fh.Filename, err)
			}
			// Cap the read just past the limit so oversized files are
			// detected without buffering them whole.
			data, err := io.ReadAll(io.LimitReader(file, s3.MaxFileSize+1))
			file.Close()
			if err != nil {
				return nil, fmt.Errorf("%w: failed to read uploaded file %q: %v", domain.ErrInvalidInput, fh.Filename, err)
			}

			input.Files = append(input.Files, domain.UploadFile{
				OriginalName: fh.Filename,
				ContentType:  fh.Header.Get("Content-Type"),
				Size:         int64(len(data)),
				Data:         data,
			})
		}
	}

	return input, nil
}

func parseFormNumber(value, name string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, name)
	}
	return n, nil
}

// parseAmenities accepts either repeated form values or a single
// JSON-encoded array, the two shapes the frontend sends. A malformed
// JSON string degrades to an empty list.
func parseAmenities(values []string) []string {
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var parsed []string
		if err := json.Unmarshal([]byte(values[0]), &parsed); err != nil {
			return []string{}
		}
		return parsed
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
