package eventRepo

import (
	"context"
	"fmt"
	"time"

	"eventbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByDateRange relies on ISO dates sorting lexically. Records whose date
// sorts inside the range but does not parse (such as "2024-02-30") are
// returned for the classifier to report; records with a missing or
// non-ISO date never match the filter and are left to CountMalformed.
func (r *mongoEventRepo) GetByDateRange(ctx context.Context, start, end models.Date) ([]models.EventOccurrence, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date": bson.M{
			"$gte": start.String(),
			"$lte": end.String(),
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.EventOccurrence
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding events: %w", err)
	}
	return events, nil
}

func (r *mongoEventRepo) Create(ctx context.Context, ev *models.EventOccurrence) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, ev); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the events collection.
func (r *mongoEventRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("date_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create event indexes: %w", err)
	}
	return nil
}

// isoDatePattern matches the YYYY-MM-DD shape the range filter depends on.
const isoDatePattern = `^\d{4}-\d{2}-\d{2}$`

// CountMalformed counts stored events whose date is missing or not in
// YYYY-MM-DD form. Such records are invisible to GetByDateRange.
func (r *mongoEventRepo) CountMalformed(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": bson.M{"$not": primitive.Regex{Pattern: isoDatePattern}}}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count malformed events: %w", err)
	}
	return n, nil
}
