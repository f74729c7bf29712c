package models

import (
	"time"

	"health-dashboard-be/internal/entities"
)

type ChatRequest struct {
	Query string `json:"query" binding:"required,min=1,max=1000"`
}

type ChatResponse struct {
	Success   bool      `json:"success"`
	Response  string    `json:"response"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatHistoryItem is an insight without its stored context
type ChatHistoryItem struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	AIResponse string    `json:"aiResponse"`
	Category   string    `json:"category"`
	RiskScore  *int      `json:"riskScore,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ChatHistoryResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	History []ChatHistoryItem `json:"history"`
}

func NewChatHistory(insights []entities.AIInsight) []ChatHistoryItem {
	out := make([]ChatHistoryItem, 0, len(insights))
	for _, in := range insights {
		out = append(out, ChatHistoryItem{
			ID:         in.ID,
			Query:      in.Query,
			AIResponse: in.AIResponse,
			Category:   in.Category,
			RiskScore:  in.RiskScore,
			CreatedAt:  in.CreatedAt,
		})
	}
	return out
}
