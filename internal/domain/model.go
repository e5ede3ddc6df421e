package domain

import "time"

// ListingCategory says whether a property is offered for sale or for rent.
type ListingCategory string

const (
	CategoryBuy  ListingCategory = "buy"
	CategoryRent ListingCategory = "rent"
)

// ValidCategory reports whether c is one of the known categories.
// An empty category is allowed; the original system treats it as unset.
func ValidCategory(c ListingCategory) bool {
	return c == "" || c == CategoryBuy || c == CategoryRent
}

// Image is a single externally hosted property photo. Filename is the
// provider-side object key and is what Delete operates on; OriginalName
// is informational only.
type Image struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName,omitempty"`
}

// Geometry is a GeoJSON point produced by geocoding. Coordinates are
// [longitude, latitude].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// MaxListingImages bounds the image set of a single listing.
const (
	MinListingImages = 1
	MaxListingImages = 8
)

// Listing is a property record. Images always holds between 1 and 8
// entries once persisted; Images[0] is the primary image shown in list
// views. Owner is immutable after creation.
type Listing struct {
	ID               string
	Title            string
	Description      string
	Location         string
	Country          string
	Price            float64
	Bedrooms         float64
	Bathrooms        float64
	Area             float64
	Category         ListingCategory
	PropertyCategory string
	Amenities        []string
	Images           []Image
	Geometry         Geometry
	Owner            string
	Reviews          []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PrimaryImage returns Images[0], the image used in list views.
func (l *Listing) PrimaryImage() Image {
	if len(l.Images) == 0 {
		return Image{}
	}
	return l.Images[0]
}

// Review is a rating left by a user against a listing. Rating is
// always within [1,5].
type Review struct {
	ID        string
	Rating    int
	Comment   string
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User is the identity referenced by Listing.Owner and Review.Author.
// Password holds the bcrypt hash, never the plain credential.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
