package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"health-dashboard-be/internal/ai"
	"health-dashboard-be/internal/entities"
	"health-dashboard-be/internal/models"
	"health-dashboard-be/internal/repository"
)

const (
	chatContextMetrics  = 7
	chatContextInsights = 5
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// ChatService defines the interface for the health assistant
type ChatService interface {
	// Chat answers query. An empty userID is an anonymous chat: no context
	// is loaded and nothing is recorded.
	Chat(ctx context.Context, userID, query string) (*models.ChatResponse, error)
	History(ctx context.Context, userID string, limit int) ([]models.ChatHistoryItem, error)
}

type chatService struct {
	advisor  ai.Advisor
	metrics  repository.HealthMetricRepository
	insights repository.AIInsightRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewChatService(advisor ai.Advisor, metrics repository.HealthMetricRepository, insights repository.AIInsightRepository, logger zerolog.Logger) ChatService {
	return &chatService{
		advisor:  advisor,
		metrics:  metrics,
		insights: insights,
		logger:   logger.With().Str("component", "chat").Logger(),
		now:      time.Now,
	}
}

func (s *chatService) Chat(ctx context.Context, userID, query string) (*models.ChatResponse, error) {
	var uc *ai.ChatContext
	if userID != "" {
		var err error
		if uc, err = s.loadContext(ctx, userID); err != nil {
			return nil, err
		}
	}

	answer, err := s.advisor.Chat(ctx, query, uc)
	if err != nil {
		return nil, err
	}

	category := Categorize(query)
	if userID != "" {
		s.record(ctx, userID, query, answer, category, uc)
	}

	return &models.ChatResponse{
		Success:   true,
		Response:  answer,
		Category:  category,
		Timestamp: s.now().UTC(),
	}, nil
}

func (s *chatService) History(ctx context.Context, userID string, limit int) ([]models.ChatHistoryItem, error) {
	insights, err := s.insights.ListRecent(ctx, userID, ClampLimit(limit, DefaultHistoryLimit, MaxHistoryLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	return models.NewChatHistory(insights), nil
}

func (s *chatService) loadContext(ctx context.Context, userID string) (*ai.ChatContext, error) {
	metrics, err := s.metrics.List(ctx, userID, repository.MetricQuery{Limit: chatContextMetrics})
	if err != nil {
		return nil, fmt.Errorf("failed to load chat context: %w", err)
	}
	recent, err := s.insights.ListRecent(ctx, userID, chatContextInsights)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat context: %w", err)
	}

	uc := &ai.ChatContext{
		RecentMetrics: ai.Summarize(metrics),
		ChatHistory:   make([]ai.ChatTurn, 0, len(recent)),
	}
	for _, in := range recent {
		uc.ChatHistory = append(uc.ChatHistory, ai.ChatTurn{
			Query:     in.Query,
			Response:  in.AIResponse,
			Timestamp: in.CreatedAt,
		})
	}
	return uc, nil
}

// record stores the exchange. A failed write never fails the chat.
func (s *chatService) record(ctx context.Context, userID, query, answer, category string, uc *ai.ChatContext) {
	insight := &entities.AIInsight{
		UserID:     userID,
		Query:      query,
		AIResponse: answer,
		Category:   category,
		Metadata: map[string]any{
			"healthContext": uc.RecentMetrics,
			"chatContext":   uc.ChatHistory,
		},
	}
	if _, err := s.insights.Create(ctx, insight); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to save AI insight")
	}
}

var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{entities.CategoryNutrition, []string{"diet", "food", "nutrition"}},
	{entities.CategoryExercise, []string{"exercise", "workout", "activity"}},
	{entities.CategoryPreventive, []string{"prevention", "risk"}},
	{entities.CategoryDiagnostic, []string{"symptom", "diagnosis"}},
	{entities.CategoryLifestyle, []string{"lifestyle", "habit"}},
}

// Categorize files a query under the first category with a matching keyword.
func Categorize(query string) string {
	q := strings.ToLower(query)
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(q, kw) {
				return c.category
			}
		}
	}
	return entities.CategoryGeneral
}
