package offerRepo

import (
	"context"
	"fmt"
	"time"

	"eventbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoOfferRepo) GetByIDs(ctx context.Context, ids []string) ([]models.PricedItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offers: %w", err)
	}
	defer cursor.Close(ctx)

	var found []models.PricedItem
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("error decoding offers: %w", err)
	}
	return orderByIDs(found, ids)
}

// orderByIDs returns items in the order of ids; an id listed twice yields the
// item twice.
func orderByIDs(found []models.PricedItem, ids []string) ([]models.PricedItem, error) {
	byID := make(map[string]models.PricedItem, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}
	out := make([]models.PricedItem, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrOfferNotFound, id)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *mongoOfferRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create offer indexes: %w", err)
	}
	return nil
}
