package repository

import (
	"context"
	"errors"
	"time"

	"health-dashboard-be/internal/entities"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// MetricQuery filters a user's metrics. Zero values mean "no bound".
type MetricQuery struct {
	From      *time.Time
	To        *time.Time
	Limit     int
	Ascending bool // oldest first; default is newest first
}

// HealthMetricRepository stores one metric record per user per day
type HealthMetricRepository interface {
	// Upsert merges the present fields of m into the (user, day) record,
	// creating it if needed, and returns the stored record.
	Upsert(ctx context.Context, m *entities.HealthMetric) (*entities.HealthMetric, error)
	List(ctx context.Context, userID string, q MetricQuery) ([]entities.HealthMetric, error)
	Latest(ctx context.Context, userID string) (*entities.HealthMetric, error)
}

// AIInsightRepository is an append-only log of AI interactions
type AIInsightRepository interface {
	Create(ctx context.Context, insight *entities.AIInsight) (*entities.AIInsight, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]entities.AIInsight, error)
}
