package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"health-dashboard-be/internal/entities"
)

type aiInsightRepository struct {
	db *sql.DB
}

// NewAIInsightRepository creates a PostgreSQL insight repository
func NewAIInsightRepository(db *sql.DB) AIInsightRepository {
	return &aiInsightRepository{db: db}
}

// Create appends an insight
func (r *aiInsightRepository) Create(ctx context.Context, insight *entities.AIInsight) (*entities.AIInsight, error) {
	if !entities.ValidCategory(insight.Category) {
		return nil, fmt.Errorf("failed to create AI insight: unknown category %q", insight.Category)
	}
	metadata, err := encodeMetadata(insight.Metadata)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO ai_insights (user_id, query, ai_response, category, risk_score, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	saved := *insight
	err = r.db.QueryRowContext(ctx, query,
		insight.UserID,
		insight.Query,
		insight.AIResponse,
		insight.Category,
		insight.RiskScore,
		metadata,
	).Scan(&saved.ID, &saved.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI insight: %w", err)
	}
	return &saved, nil
}

// ListRecent returns the newest insights first
func (r *aiInsightRepository) ListRecent(ctx context.Context, userID string, limit int) ([]entities.AIInsight, error) {
	query := `
		SELECT id, user_id, query, ai_response, category, risk_score, metadata, created_at
		FROM ai_insights
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list AI insights: %w", err)
	}
	defer rows.Close()

	insights := []entities.AIInsight{}
	for rows.Next() {
		var (
			in       entities.AIInsight
			metadata []byte
		)
		if err := rows.Scan(&in.ID, &in.UserID, &in.Query, &in.AIResponse, &in.Category, &in.RiskScore, &metadata, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan AI insight: %w", err)
		}
		if in.Metadata, err = decodeMetadata(metadata); err != nil {
			return nil, err
		}
		insights = append(insights, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate AI insights: %w", err)
	}
	return insights, nil
}

// encodeMetadata renders metadata for the JSONB column; nil becomes {}.
func encodeMetadata(m map[string]any) (string, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode insight metadata: %w", err)
	}
	return string(b), nil
}

func decodeMetadata(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode insight metadata: %w", err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}
