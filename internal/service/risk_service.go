package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"health-dashboard-be/internal/ai"
	"health-dashboard-be/internal/cache"
	"health-dashboard-be/internal/entities"
	"health-dashboard-be/internal/models"
	"health-dashboard-be/internal/repository"
	"health-dashboard-be/internal/scoring"
)

// ErrNoHealthData is returned when a user has no metric records.
var ErrNoHealthData = errors.New("no health data available")

const (
	riskHistoryLimit = 30
	analysisQuery    = "Health analysis request"
)

// RiskService defines the interface for risk scoring and AI analysis
type RiskService interface {
	Current(ctx context.Context, userID string) (*models.RiskResponse, error)
	Analyze(ctx context.Context, userID string) (*models.AnalysisResponse, error)
}

type riskService struct {
	advisor  ai.Advisor
	metrics  repository.HealthMetricRepository
	insights repository.AIInsightRepository
	cache    cache.Cache // optional
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewRiskService creates a risk service. c may be nil to disable caching.
func NewRiskService(advisor ai.Advisor, metrics repository.HealthMetricRepository, insights repository.AIInsightRepository, c cache.Cache, cacheTTL time.Duration, logger zerolog.Logger) RiskService {
	return &riskService{
		advisor:  advisor,
		metrics:  metrics,
		insights: insights,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "risk").Logger(),
		now:      time.Now,
	}
}

// Current scores the latest record and blends in an AI prediction when one
// is available.
func (s *riskService) Current(ctx context.Context, userID string) (*models.RiskResponse, error) {
	latest, err := s.metrics.Latest(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &models.RiskResponse{
			Success:   true,
			RiskScore: 0,
			RiskLevel: scoring.LevelLow,
			Message:   "No health data available",
			Factors:   []string{},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest metric: %w", err)
	}

	rule := scoring.Assess(*latest)
	prediction := s.prediction(ctx, userID, latest)

	final := rule.RiskScore
	if prediction != nil && prediction.OverallRiskScore != nil {
		final = scoring.Blend(rule.RiskScore, *prediction.OverallRiskScore)
	}

	return &models.RiskResponse{
		Success:        true,
		RiskScore:      final,
		RiskLevel:      scoring.RiskLevel(final),
		RuleBasedScore: &rule.RiskScore,
		Factors:        rule.Factors,
		AIInsights:     prediction,
		LatestMetric:   models.NewLatestMetric(latest),
	}, nil
}

// prediction returns nil when the AI backend fails; the rule score stands alone.
func (s *riskService) prediction(ctx context.Context, userID string, latest *entities.HealthMetric) *ai.RiskPrediction {
	key := cache.AIKey("risk", userID, latest.UpdatedAt)
	var cached ai.RiskPrediction
	if s.lookup(ctx, key, &cached) {
		return &cached
	}

	history, err := s.metrics.List(ctx, userID, repository.MetricQuery{Limit: riskHistoryLimit})
	if err != nil || len(history) == 0 {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("No history for AI risk prediction")
		return nil
	}

	prediction, err := s.advisor.PredictRisk(ctx, history)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("AI risk prediction failed, using rule-based only")
		return nil
	}
	s.store(ctx, key, prediction)
	return prediction
}

// Analyze asks for advice on the latest record and logs it as a preventive insight.
func (s *riskService) Analyze(ctx context.Context, userID string) (*models.AnalysisResponse, error) {
	latest, err := s.metrics.Latest(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoHealthData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest metric: %w", err)
	}

	key := cache.AIKey("advice", userID, latest.UpdatedAt)
	advice := &ai.HealthAdvice{}
	if !s.lookup(ctx, key, advice) {
		if advice, err = s.advisor.GenerateHealthAdvice(ctx, []entities.HealthMetric{*latest}); err != nil {
			return nil, err
		}
		s.store(ctx, key, advice)
	}

	score := advice.RiskScore
	insight := &entities.AIInsight{
		UserID:     userID,
		Query:      analysisQuery,
		AIResponse: advice.Advice,
		Category:   entities.CategoryPreventive,
		RiskScore:  &score,
		Metadata: map[string]any{
			"recommendations": advice.Recommendations,
			"alerts":          advice.Alerts,
			"trend":           advice.Trend,
		},
	}
	if _, err := s.insights.Create(ctx, insight); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to save AI insight")
	}

	return &models.AnalysisResponse{
		Success:   true,
		Analysis:  advice,
		Timestamp: s.now().UTC(),
	}, nil
}

// Cache errors are treated as misses.
func (s *riskService) lookup(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	if err := s.cache.GetJSON(ctx, key, dest); err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Debug().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}
	return true
}

func (s *riskService) store(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, v, s.cacheTTL); err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("Cache write failed")
	}
}
