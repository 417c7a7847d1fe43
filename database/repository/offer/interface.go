package offerRepo

import (
	"context"
	"errors"

	"eventbook/database"
	"eventbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrOfferNotFound is returned when a requested venue/offer id is unknown.
var ErrOfferNotFound = errors.New("offer not found")

// OfferRepository reads venue and package-offer pricing. Records are read-only
// to the engine.
type OfferRepository interface {
	// GetByIDs returns the offers in the order requested. Every id must exist.
	GetByIDs(ctx context.Context, ids []string) ([]models.PricedItem, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoOfferRepo struct {
	coll *mongo.Collection
}

// NewMongoOfferRepo constructs a new MongoDB OfferRepository.
func NewMongoOfferRepo() OfferRepository {
	return &mongoOfferRepo{coll: database.DB().Collection("offers")}
}
