package ai

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"
)

const mockChatReply = "I'm here to help with your preventive health questions. Based on your query, I recommend maintaining a balanced diet, regular exercise, and adequate sleep. For specific medical concerns, please consult with a healthcare professional."

// MockBackend answers every task with canned output. It is the fallback when
// no real inference backend is reachable.
type MockBackend struct {
	latency time.Duration
	intn    func(n int) int
}

// NewMockBackend creates a mock that waits latency before answering.
func NewMockBackend(latency time.Duration) *MockBackend {
	return &MockBackend{latency: latency, intn: rand.IntN}
}

// WithRand replaces the random source used for scores.
func (m *MockBackend) WithRand(intn func(n int) int) *MockBackend {
	m.intn = intn
	return m
}

func (m *MockBackend) Name() string { return "mock" }

func (m *MockBackend) Ping(ctx context.Context) error { return ctx.Err() }

func (m *MockBackend) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if m.latency > 0 {
		timer := time.NewTimer(m.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	var output any
	switch req.Task {
	case TaskHealthAdvice:
		output = HealthAdvice{
			Advice:    "Based on your health metrics, you're maintaining a generally healthy lifestyle. Continue monitoring your heart rate and ensure you get adequate sleep. Consider increasing daily steps to reach 10,000 for optimal cardiovascular health.",
			RiskScore: 20 + m.intn(40),
			Recommendations: []string{
				"Maintain regular exercise routine",
				"Ensure 7-9 hours of sleep nightly",
				"Monitor blood sugar levels regularly",
			},
			Alerts: []Alert{},
			Trend:  "stable",
		}
	case TaskRiskPrediction:
		score := 30 + m.intn(30)
		output = RiskPrediction{
			OverallRiskScore: &score,
			RiskFactors: []RiskFactor{{
				Factor:      "Physical Activity",
				Severity:    "medium",
				Description: "Step count is below recommended levels",
			}},
			Predictions: Predictions{
				NextWeek:  "Metrics expected to remain stable with current routine",
				NextMonth: "Consider increasing physical activity to improve cardiovascular health",
			},
			PreventiveActions: []string{
				"Aim for 10,000 steps daily",
				"Maintain consistent sleep schedule",
			},
		}
	default:
		output = mockChatReply
	}

	raw, err := json.Marshal(output)
	if err != nil {
		return nil, err
	}
	return &GenerateResponse{Output: raw}, nil
}
