package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"health-dashboard-be/internal/entities"
	"health-dashboard-be/internal/models"
	"health-dashboard-be/internal/repository"
	"health-dashboard-be/internal/scoring"
)

const (
	DefaultMetricLimit = 30
	MaxMetricLimit     = 365
	DefaultWindowDays  = 30
)

// AlertPublisher delivers risk alerts to a user's live connections
type AlertPublisher interface {
	Publish(userID string, alert models.RiskAlert)
}

// HealthService defines the interface for metric recording and retrieval
type HealthService interface {
	List(ctx context.Context, userID string, q repository.MetricQuery) ([]scoring.NormalizedMetric, error)
	Save(ctx context.Context, userID string, req *models.HealthMetricRequest) (*models.SaveMetricResponse, error)
	GenerateDummy(ctx context.Context, userID string, days int) ([]scoring.NormalizedMetric, error)
	Stats(ctx context.Context, userID string, days int) (*models.HealthStats, error)
}

type healthService struct {
	metrics   repository.HealthMetricRepository
	publisher AlertPublisher
	logger    zerolog.Logger
	now       func() time.Time
	intn      scoring.IntN
}

// NewHealthService creates a health service. publisher may be nil.
func NewHealthService(metrics repository.HealthMetricRepository, publisher AlertPublisher, logger zerolog.Logger) HealthService {
	return &healthService{
		metrics:   metrics,
		publisher: publisher,
		logger:    logger.With().Str("component", "health").Logger(),
		now:       time.Now,
		intn:      rand.IntN,
	}
}

func (s *healthService) List(ctx context.Context, userID string, q repository.MetricQuery) ([]scoring.NormalizedMetric, error) {
	q.Limit = ClampLimit(q.Limit, DefaultMetricLimit, MaxMetricLimit)
	metrics, err := s.metrics.List(ctx, userID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list health metrics: %w", err)
	}
	return scoring.NormalizeAll(metrics), nil
}

// Save merges today's submission into the stored record and scores the result.
func (s *healthService) Save(ctx context.Context, userID string, req *models.HealthMetricRequest) (*models.SaveMetricResponse, error) {
	stored, err := s.metrics.Upsert(ctx, req.ToEntity(userID, s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to save health metric: %w", err)
	}

	risk := scoring.Assess(*stored)
	if len(risk.Factors) > 0 && s.publisher != nil {
		s.publisher.Publish(userID, models.RiskAlert{
			Kind:      models.AlertKindRisk,
			RiskScore: risk.RiskScore,
			RiskLevel: scoring.RiskLevel(risk.RiskScore),
			Factors:   risk.Factors,
			Date:      stored.Date,
		})
	}

	return &models.SaveMetricResponse{
		Success: true,
		Message: "Health metrics saved successfully",
		Metric:  scoring.Normalize(*stored),
		Risk:    risk,
	}, nil
}

// GenerateDummy fills the last days days with plausible readings.
func (s *healthService) GenerateDummy(ctx context.Context, userID string, days int) ([]scoring.NormalizedMetric, error) {
	days = min(max(days, 1), scoring.MaxDummyDays)

	generated := scoring.DummyMetrics(userID, days, s.now(), s.intn)
	stored := make([]entities.HealthMetric, 0, len(generated))
	for i := range generated {
		m, err := s.metrics.Upsert(ctx, &generated[i])
		if err != nil {
			return nil, fmt.Errorf("failed to save dummy metrics: %w", err)
		}
		stored = append(stored, *m)
	}

	s.logger.Info().Str("user_id", userID).Int("days", days).Msg("Generated dummy health data")
	return scoring.NormalizeAll(stored), nil
}

// Stats averages each reading over the records of the last days days.
func (s *healthService) Stats(ctx context.Context, userID string, days int) (*models.HealthStats, error) {
	days = ClampLimit(days, DefaultWindowDays, MaxMetricLimit)
	from := entities.Day(s.now()).AddDate(0, 0, -(days - 1))

	metrics, err := s.metrics.List(ctx, userID, repository.MetricQuery{From: &from, Ascending: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load health metrics: %w", err)
	}

	var hr, steps, sleep, sugar, weight, sys, dia mean
	for _, m := range metrics {
		if m.HeartRate != nil {
			hr.add(float64(*m.HeartRate))
		}
		if m.Steps != nil {
			steps.add(float64(*m.Steps))
		}
		if m.SleepHours != nil {
			sleep.add(*m.SleepHours)
		}
		if m.SugarLevel != nil {
			sugar.add(*m.SugarLevel)
		}
		if m.Weight != nil {
			weight.add(*m.Weight)
		}
		if v := m.Systolic(); v != nil {
			sys.add(*v)
		}
		if v := m.Diastolic(); v != nil {
			dia.add(*v)
		}
	}

	return &models.HealthStats{
		AvgHeartRate: hr.value(),
		AvgSteps:     steps.value(),
		AvgSleep:     sleep.value(),
		AvgSugar:     sugar.value(),
		AvgWeight:    weight.value(),
		AvgSystolic:  sys.value(),
		AvgDiastolic: dia.value(),
		TotalDays:    len(metrics),
	}, nil
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.n++
}

func (m *mean) value() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}

// ClampLimit returns def for non-positive n and caps n at upper.
func ClampLimit(n, def, upper int) int {
	if n <= 0 {
		return def
	}
	return min(n, upper)
}
