package mongodb

import (
	"fmt"
	"time"

	"github.com/SubhamSahu809/ProRental/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Persistence documents. Domain entities use hex-string ids; the
// mapping functions translate to and from ObjectIDs at this boundary.

type imageDocument struct {
	URL          string `bson:"url"`
	Filename     string `bson:"filename"`
	OriginalName string `bson:"original_name,omitempty"`
}

type geometryDocument struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

type listingDocument struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty"`
	Title            string               `bson:"title"`
	Description      string               `bson:"description"`
	Location         string               `bson:"location"`
	Country          string               `bson:"country"`
	Price            float64              `bson:"price"`
	Bedrooms         float64              `bson:"bedrooms,omitempty"`
	Bathrooms        float64              `bson:"bathrooms,omitempty"`
	Area             float64              `bson:"area,omitempty"`
	Category         string               `bson:"category,omitempty"`
	PropertyCategory string               `bson:"property_category,omitempty"`
	Amenities        []string             `bson:"amenities,omitempty"`
	Images           []imageDocument      `bson:"images"`
	Geometry         geometryDocument     `bson:"geometry"`
	Owner            primitive.ObjectID   `bson:"owner"`
	Reviews          []primitive.ObjectID `bson:"reviews,omitempty"`
	CreatedAt        time.Time            `bson:"created_at"`
	UpdatedAt        time.Time            `bson:"updated_at"`
}

type reviewDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment"`
	Author    primitive.ObjectID `bson:"author"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"first_name"`
	LastName  string             `bson:"last_name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func objectIDFromHex(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", domain.ErrInvalidInput, id)
	}
	return oid, nil
}

func fromDomainListing(l *domain.Listing) (*listingDocument, error) {
	doc := &listingDocument{
		Title:            l.Title,
		Description:      l.Description,
		Location:         l.Location,
		Country:          l.Country,
		Price:            l.Price,
		Bedrooms:         l.Bedrooms,
		Bathrooms:        l.Bathrooms,
		Area:             l.Area,
		Category:         string(l.Category),
		PropertyCategory: l.PropertyCategory,
		Amenities:        l.Amenities,
		Geometry:         geometryDocument{Type: l.Geometry.Type, Coordinates: l.Geometry.Coordinates},
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}

	if l.ID != "" {
		oid, err := objectIDFromHex(l.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = oid
	}

	owner, err := objectIDFromHex(l.Owner)
	if err != nil {
		return nil, err
	}
	doc.Owner = owner

	doc.Images = make([]imageDocument, 0, len(l.Images))
	for _, img := range l.Images {
		doc.Images = append(doc.Images, imageDocument{URL: img.URL, Filename: img.Filename, OriginalName: img.OriginalName})
	}

	for _, rid := range l.Reviews {
		oid, err := objectIDFromHex(rid)
		if err != nil {
			return nil, err
		}
		doc.Reviews = append(doc.Reviews, oid)
	}

	return doc, nil
}

func (d *listingDocument) toDomain() *domain.Listing {
	l := &domain.Listing{
		ID:               d.ID.Hex(),
		Title:            d.Title,
		Description:      d.Description,
		Location:         d.Location,
		Country:          d.Country,
		Price:            d.Price,
		Bedrooms:         d.Bedrooms,
		Bathrooms:        d.Bathrooms,
		Area:             d.Area,
		Category:         domain.ListingCategory(d.Category),
		PropertyCategory: d.PropertyCategory,
		Amenities:        d.Amenities,
		Geometry:         domain.Geometry{Type: d.Geometry.Type, Coordinates: d.Geometry.Coordinates},
		Owner:            d.Owner.Hex(),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}

	l.Images = make([]domain.Image, 0, len(d.Images))
	for _, img := range d.Images {
		l.Images = append(l.Images, domain.Image{URL: img.URL, Filename: img.Filename, OriginalName: img.OriginalName})
	}

	for _, oid := range d.Reviews {
		l.Reviews = append(l.Reviews, oid.Hex())
	}

	return l
}

func fromDomainReview(r *domain.Review) (*reviewDocument, error) {
	doc := &reviewDocument{
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if r.ID != "" {
		oid, err := objectIDFromHex(r.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = oid
	}

	author, err := objectIDFromHex(r.Author)
	if err != nil {
		return nil, err
	}
	doc.Author = author

	return doc, nil
}

func (d *reviewDocument) toDomain() *domain.Review {
	return &domain.Review{
		ID:        d.ID.Hex(),
		Rating:    d.Rating,
		Comment:   d.Comment,
		Author:    d.Author.Hex(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func fromDomainUser(u *domain.User) (*userDocument, error) {
	doc := &userDocument{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}

	if u.ID != "" {
		oid, err := objectIDFromHex(u.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = oid
	}

	return doc, nil
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:        d.ID.Hex(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
