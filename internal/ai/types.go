package ai

import (
	"context"
	"encoding/json"
	"time"

	"health-dashboard-be/internal/entities"
)

// Task tells a backend which kind of output the prompt asks for.
type Task string

const (
	TaskHealthAdvice   Task = "health_advice"
	TaskChat           Task = "chat"
	TaskRiskPrediction Task = "risk_prediction"
)

type GenerateRequest struct {
	Task       Task   `json:"task"`
	Prompt     string `json:"prompt"`
	Structured bool   `json:"structured"`
}

type GenerateResponse struct {
	Output json.RawMessage `json:"output"`
}

// Backend is an inference engine the client can delegate to.
type Backend interface {
	Name() string
	Ping(ctx context.Context) error
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// Advisor is the AI surface used by the services.
type Advisor interface {
	GenerateHealthAdvice(ctx context.Context, metrics []entities.HealthMetric) (*HealthAdvice, error)
	Chat(ctx context.Context, query string, uc *ChatContext) (string, error)
	PredictRisk(ctx context.Context, history []entities.HealthMetric) (*RiskPrediction, error)
}

type Alert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type HealthAdvice struct {
	Advice          string   `json:"advice"`
	RiskScore       int      `json:"riskScore"`
	Recommendations []string `json:"recommendations"`
	Alerts          []Alert  `json:"alerts"`
	Trend           string   `json:"trend,omitempty"`
}

type RiskFactor struct {
	Factor      string `json:"factor"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

type Predictions struct {
	NextWeek  string `json:"nextWeek"`
	NextMonth string `json:"nextMonth"`
}

// RiskPrediction is the model's view of a metric history.
// OverallRiskScore is nil when the model did not commit to a number.
type RiskPrediction struct {
	OverallRiskScore  *int         `json:"overallRiskScore,omitempty"`
	RiskFactors       []RiskFactor `json:"riskFactors"`
	Predictions       Predictions  `json:"predictions"`
	PreventiveActions []string     `json:"preventiveActions"`
}

// MetricSummary is the part of a metric that is shared with the model.
type MetricSummary struct {
	Date          time.Time               `json:"date"`
	HeartRate     *int                    `json:"heartRate,omitempty"`
	Steps         *int                    `json:"steps,omitempty"`
	SleepHours    *float64                `json:"sleepHours,omitempty"`
	SugarLevel    *float64                `json:"sugarLevel,omitempty"`
	BloodPressure *entities.BloodPressure `json:"bloodPressure,omitempty"`
	Weight        *float64                `json:"weight,omitempty"`
}

type ChatTurn struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatContext is the user history attached to a chat prompt.
type ChatContext struct {
	RecentMetrics []MetricSummary `json:"recentMetrics"`
	ChatHistory   []ChatTurn      `json:"chatHistory"`
}

// Summarize strips identifiers and notes from metrics before they reach a prompt.
func Summarize(metrics []entities.HealthMetric) []MetricSummary {
	out := make([]MetricSummary, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, MetricSummary{
			Date:          m.Date,
			HeartRate:     m.HeartRate,
			Steps:         m.Steps,
			SleepHours:    m.SleepHours,
			SugarLevel:    m.SugarLevel,
			BloodPressure: m.BloodPressure,
			Weight:        m.Weight,
		})
	}
	return out
}
