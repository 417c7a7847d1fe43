package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoCatalogRepo) GetPackageComponents(ctx context.Context, packageID string) ([]models.CatalogComponent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pkg Package
	opts := options.FindOne().SetProjection(bson.M{"id": 1, "tiers.components": 1})
	err := r.coll.FindOne(ctx, bson.M{"id": packageID}, opts).Decode(&pkg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, packageID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch package %s: %w", packageID, err)
	}
	return pkg.Components(), nil
}

// Components flattens the tiers in order without deduplicating.
func (p Package) Components() []models.CatalogComponent {
	var out []models.CatalogComponent
	for _, tier := range p.Tiers {
		out = append(out, tier.Components...)
	}
	return out
}

func (r *mongoCatalogRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create package indexes: %w", err)
	}
	return nil
}
