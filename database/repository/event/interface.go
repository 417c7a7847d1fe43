package eventRepo

import (
	"context"

	"eventbook/database"
	"eventbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// EventRepository reads booked events for availability classification.
type EventRepository interface {
	// GetByDateRange returns events dated within [start, end], inclusive.
	GetByDateRange(ctx context.Context, start, end models.Date) ([]models.EventOccurrence, error)
	Create(ctx context.Context, ev *models.EventOccurrence) error
	// CountMalformed counts events whose date cannot match a range query.
	CountMalformed(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoEventRepo struct {
	coll *mongo.Collection
}

// NewMongoEventRepo constructs a new MongoDB EventRepository.
func NewMongoEventRepo() EventRepository {
	return &mongoEventRepo{coll: database.DB().Collection("events")}
}
