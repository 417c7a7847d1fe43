package bondRepo

import (
	"context"
	"errors"

	"eventbook/database"
	"eventbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrBondNotFound is returned when no bond has the requested id.
	ErrBondNotFound = errors.New("cash bond not found")
	// ErrStaleBond is returned when the stored status changed since it was read.
	ErrStaleBond = errors.New("cash bond was modified concurrently")
)

// BondRepository persists cash bonds.
type BondRepository interface {
	Create(ctx context.Context, bond *models.CashBond) error
	GetByID(ctx context.Context, id string) (*models.CashBond, error)
	// UpdateStatus stores bond only if the stored status still equals from.
	UpdateStatus(ctx context.Context, bond *models.CashBond, from models.BondStatus) error
	EnsureIndexes(ctx context.Context) error
}

type mongoBondRepo struct {
	coll *mongo.Collection
}

// NewMongoBondRepo constructs a new MongoDB BondRepository.
func NewMongoBondRepo() BondRepository {
	return &mongoBondRepo{coll: database.DB().Collection("cash_bonds")}
}
