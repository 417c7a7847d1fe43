package bondRepo

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

func (r *mongoBondRepo) Create(ctx context.Context, bond *models.CashBond) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, bond); err != nil {
		return fmt.Errorf("failed to insert cash bond: %w", err)
	}
	return nil
}

func (r *mongoBondRepo) GetByID(ctx context.Context, id string) (*models.CashBond, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bond models.CashBond
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&bond)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ErrBondNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cash bond %s: %w", id, err)
	}
	return &bond, nil
}

func (r *mongoBondRepo) UpdateStatus(ctx context.Context, bond *models.CashBond, from models.BondStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bond.ID, "status": from}
	update := bson.M{"$set": bson.M{
		"status":            bond.Status,
		"damageAmount":      bond.DamageAmount,
		"damageDescription": bond.DamageDescription,
		"updatedAt":         bond.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update cash bond %s: %w", bond.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", ErrStaleBond, bond.ID)
	}
	return nil
}

func (r *mongoBondRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "bookingRef", Value: 1}},
			Options: options.Index().SetName("booking_ref_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create cash bond indexes: %w", err)
	}
	return nil
}
