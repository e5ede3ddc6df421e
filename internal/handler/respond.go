package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/SubhamSahu809/ProRental/internal/domain"
	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"go.uber.org/zap"
)

// writeJSON writes the payload with the given status.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps a domain error kind to an HTTP status and writes
// the standard {"error": "..."} body. Kinds are matched with
// errors.Is; message text is never inspected.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong!"

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		message = "Property does not exist!"
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
		message = "You are not allowed to perform this action."
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
		message = "Not authenticated"
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid email or password"
	case errors.Is(err, domain.ErrEmailTaken):
		status = http.StatusBadRequest
		message = "A user with the given email is already registered"
	case errors.Is(err, domain.ErrFileTooLarge):
		status = http.StatusRequestEntityTooLarge
		message = "File size too large. Maximum size is 5MB."
	case errors.Is(err, domain.ErrUnsupportedFileType):
		status = http.StatusUnsupportedMediaType
		message = "Only image files (jpeg, jpg, png, gif, webp) are allowed."
	case errors.Is(err, domain.ErrTooManyFiles):
		status = http.StatusBadRequest
		message = "Too many images. Maximum 8 images allowed."
	case errors.Is(err, domain.ErrLocationNotFound):
		status = http.StatusBadRequest
		message = "Could not find the specified location. Please provide a more specific address."
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrGeocodingUnavailable):
		status = http.StatusInternalServerError
		message = "Failed to geocode location. Please check the location and try again."
	case errors.Is(err, domain.ErrStorageUnavailable):
		status = http.StatusInternalServerError
		message = "Failed to upload image to cloud storage. Please try again."
	}

	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Int("status", status), zap.Error(err))
	} else {
		log.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}

	writeJSON(w, status, map[string]string{"error": message})
}

// Wire representations. The field names keep compatibility with the
// frontend: the category enum travels as "type" and the primary image
// is duplicated under "image".

type userResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

type reviewResponse struct {
	ID        string        `json:"id"`
	Rating    int           `json:"rating"`
	Comment   string        `json:"comment"`
	Author    interface{}   `json:"author"`
	CreatedAt time.Time     `json:"createdAt"`
}

func toReviewResponse(r *domain.Review, author *domain.User) *reviewResponse {
	resp := &reviewResponse{
		ID:        r.ID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	if author != nil {
		resp.Author = toUserResponse(author)
	} else {
		resp.Author = r.Author
	}
	return resp
}

type listingResponse struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Location         string          `json:"location"`
	Country          string          `json:"country"`
	Price            float64         `json:"price"`
	Bedrooms         float64         `json:"bedrooms,omitempty"`
	Bathrooms        float64         `json:"bathrooms,omitempty"`
	Area             float64         `json:"area,omitempty"`
	Type             string          `json:"type,omitempty"`
	PropertyCategory string          `json:"propertyCategory,omitempty"`
	Amenities        []string        `json:"amenities"`
	Image            domain.Image    `json:"image"`
	Images           []domain.Image  `json:"images"`
	Geometry         domain.Geometry `json:"geometry"`
	Owner            interface{}     `json:"owner"`
	Reviews          interface{}     `json:"reviews"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func toListingResponse(l *domain.Listing) *listingResponse {
	amenities := l.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return &listingResponse{
		ID:               l.ID,
		Title:            l.Title,
		Description:      l.Description,
		Location:         l.Location,
		Country:          l.Country,
		Price:            l.Price,
		Bedrooms:         l.Bedrooms,
		Bathrooms:        l.Bathrooms,
		Area:             l.Area,
		Type:             string(l.Category),
		PropertyCategory: l.PropertyCategory,
		Amenities:        amenities,
		Image:            l.PrimaryImage(),
		Images:           l.Images,
		Geometry:         l.Geometry,
		Owner:            l.Owner,
		Reviews:          l.Reviews,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

func toListingResponses(listings []*domain.Listing) []*listingResponse {
	out := make([]*listingResponse, len(listings))
	for i, l := range listings {
		out[i] = toListingResponse(l)
	}
	return out
}
