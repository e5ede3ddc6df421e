package mongodb

import (
	"testing"

	"github.com/SubhamSahu809/ProRental/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListingDocumentMapping(t *testing.T) {
	owner := primitive.NewObjectID()
	review := primitive.NewObjectID()

	listing := &domain.Listing{
		Title:    "Lakeview Cabin",
		Location: "Lake Bled, Slovenia",
		Country:  "Slovenia",
		Price:    120,
		Category: domain.CategoryRent,
		Owner:    owner.Hex(),
		Reviews:  []string{review.Hex()},
		Images: []domain.Image{
			{URL: "http://minio/properties/a.jpg", Filename: "properties/a.jpg", OriginalName: "front.jpg"},
		},
		Geometry: domain.Geometry{Type: "Point", Coordinates: []float64{14.1, 46.36}},
	}

	doc, err := fromDomainListing(listing)
	require.NoError(t, err)
	assert.Equal(t, owner, doc.Owner)
	require.Len(t, doc.Reviews, 1)
	assert.Equal(t, review, doc.Reviews[0])

	doc.ID = primitive.NewObjectID()
	back := doc.toDomain()
	assert.Equal(t, doc.ID.Hex(), back.ID)
	assert.Equal(t, listing.Owner, back.Owner)
	assert.Equal(t, listing.Reviews, back.Reviews)
	assert.Equal(t, listing.Images, back.Images)
	assert.Equal(t, listing.Geometry, back.Geometry)
	assert.Equal(t, listing.Category, back.Category)
}

func TestObjectIDFromHexRejectsGarbage(t *testing.T) {
	_, err := objectIDFromHex("not-a-hex-id")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	listing := &domain.Listing{Title: "x", Owner: "garbage"}
	_, err = fromDomainListing(listing)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
