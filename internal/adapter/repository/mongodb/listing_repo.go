package mongodb

import (
	"errors"
	"fmt"
	"time"

	"context"

	"github.com/SubhamSahu809/ProRental/internal/domain"
	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const listingCollectionName = "listings"

// ListingRepository implements domain.ListingRepository using MongoDB.
type ListingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewListingRepository creates the repository and ensures its indexes.
func NewListingRepository(db *mongo.Database, log *logger.Logger) (*ListingRepository, error) {
	collection := db.Collection(listingCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Indexes may already exist; not fatal for startup.
		log.Warn("Failed to ensure indexes for listings collection", zap.Error(err))
	}

	return &ListingRepository{
		collection: collection,
		logger:     log.Named("ListingRepository"),
	}, nil
}

// validateImages enforces the [1,8] image invariant at the persistence
// boundary regardless of what callers pass in.
func validateImages(images []domain.Image) error {
	if len(images) < domain.MinListingImages {
		return fmt.Errorf("%w: a listing requires at least one image", domain.ErrInvalidInput)
	}
	if len(images) > domain.MaxListingImages {
		return fmt.Errorf("%w: a listing may have at most %d images", domain.ErrInvalidInput, domain.MaxListingImages)
	}
	return nil
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	if err := validateImages(listing.Images); err != nil {
		return err
	}

	doc, err := fromDomainListing(listing)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert listing", zap.Error(err))
		return fmt.Errorf("%w: insert listing: %v", domain.ErrRepository, err)
	}

	listing.ID = doc.ID.Hex()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	r.logger.Info("Listing created", zap.String("listing_id", listing.ID), zap.Int("images", len(listing.Images)))
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	if err := validateImages(listing.Images); err != nil {
		return err
	}

	doc, err := fromDomainListing(listing)
	if err != nil {
		return err
	}
	doc.UpdatedAt = time.Now().UTC()
	listing.UpdatedAt = doc.UpdatedAt

	update := bson.M{"$set": bson.M{
		"title":             doc.Title,
		"description":       doc.Description,
		"location":          doc.Location,
		"country":           doc.Country,
		"price":             doc.Price,
		"bedrooms":          doc.Bedrooms,
		"bathrooms":         doc.Bathrooms,
		"area":              doc.Area,
		"category":          doc.Category,
		"property_category": doc.PropertyCategory,
		"amenities":         doc.Amenities,
		"images":            doc.Images,
		"geometry":          doc.Geometry,
		"updated_at":        doc.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		r.logger.Error("Failed to update listing", zap.Error(err), zap.String("listing_id", listing.ID))
		return fmt.Errorf("%w: update listing: %v", domain.ErrRepository, err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return false, err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("Failed to delete listing", zap.Error(err), zap.String("listing_id", id))
		return false, fmt.Errorf("%w: delete listing: %v", domain.ErrRepository, err)
	}
	return result.DeletedCount > 0, nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var doc listingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to find listing by id", zap.Error(err), zap.String("listing_id", id))
		return nil, fmt.Errorf("%w: find listing: %v", domain.ErrRepository, err)
	}
	return doc.toDomain(), nil
}

func (r *ListingRepository) FindAll(ctx context.Context) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{})
}

func (r *ListingRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	oid, err := objectIDFromHex(ownerID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"owner": oid})
}

func (r *ListingRepository) find(ctx context.Context, filter bson.M) ([]*domain.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to query listings", zap.Error(err))
		return nil, fmt.Errorf("%w: find listings: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode listings: %v", domain.ErrRepository, err)
	}

	listings := make([]*domain.Listing, len(docs))
	for i, doc := range docs {
		listings[i] = doc.toDomain()
	}
	return listings, nil
}

func (r *ListingRepository) PushReview(ctx context.Context, listingID, reviewID string) error {
	lid, err := objectIDFromHex(listingID)
	if err != nil {
		return err
	}
	rid, err := objectIDFromHex(reviewID)
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": lid}, bson.M{
		"$push": bson.M{"reviews": rid},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("%w: push review: %v", domain.ErrRepository, err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) PullReview(ctx context.Context, listingID, reviewID string) error {
	lid, err := objectIDFromHex(listingID)
	if err != nil {
		return err
	}
	rid, err := objectIDFromHex(reviewID)
	if err != nil {
		return err
	}

	// $pull keeps the reference removal atomic on the document, no
	// read-modify-write cycle.
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": lid}, bson.M{
		"$pull": bson.M{"reviews": rid},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("%w: pull review: %v", domain.ErrRepository, err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
