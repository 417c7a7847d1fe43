package catalogRepo

import (
	"context"
	"errors"

	"eventbook/database"
	"eventbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrPackageNotFound is returned when no package has the requested id.
var ErrPackageNotFound = errors.New("package not found")

// PackageTier groups the components a package offers at one tier.
type PackageTier struct {
	Name       string                    `bson:"name" json:"name"`
	Components []models.CatalogComponent `bson:"components" json:"components"`
}

// Package is an event package as stored in the catalog.
type Package struct {
	ID    string        `bson:"id" json:"id"`
	Name  string        `bson:"name" json:"name"`
	Tiers []PackageTier `bson:"tiers" json:"tiers"`
}

// CatalogRepository reads package component lists.
type CatalogRepository interface {
	// GetPackageComponents returns every component across the package's tiers in
	// catalog order. The same component may appear under several tiers.
	GetPackageComponents(ctx context.Context, packageID string) ([]models.CatalogComponent, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoCatalogRepo struct {
	coll *mongo.Collection
}

// NewMongoCatalogRepo constructs a new MongoDB CatalogRepository.
func NewMongoCatalogRepo() CatalogRepository {
	return &mongoCatalogRepo{coll: database.DB().Collection("packages")}
}
