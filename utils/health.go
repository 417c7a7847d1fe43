package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

func (h HealthStatus) OK() bool {
	return h.Mongo && h.Redis
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

func setHealthStatus(h HealthStatus) {
	mu.Lock()
	currentHealth = h
	mu.Unlock()
}

// StartHealthMonitor pings the stores once immediately and then every
// interval until ctx is cancelled.
func StartHealthMonitor(ctx context.Context, redisClient *redis.Client, mongoClient *mongo.Client, interval time.Duration) {
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		setHealthStatus(HealthStatus{
			Mongo:     mongoClient != nil && mongoClient.Ping(pingCtx, nil) == nil,
			Redis:     redisClient != nil && redisClient.Ping(pingCtx).Err() == nil,
			CheckedAt: time.Now(),
		})
	}

	check()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				check()
			}
		}
	}()
}
