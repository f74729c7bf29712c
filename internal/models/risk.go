package models

import (
	"time"

	"health-dashboard-be/internal/ai"
	"health-dashboard-be/internal/entities"
)

// LatestMetric is the snapshot the risk score was computed from
type LatestMetric struct {
	Date          time.Time               `json:"date"`
	HeartRate     *int                    `json:"heartRate,omitempty"`
	Steps         *int                    `json:"steps,omitempty"`
	SleepHours    *float64                `json:"sleepHours,omitempty"`
	SugarLevel    *float64                `json:"sugarLevel,omitempty"`
	BloodPressure *entities.BloodPressure `json:"bloodPressure,omitempty"`
}

func NewLatestMetric(m *entities.HealthMetric) *LatestMetric {
	return &LatestMetric{
		Date:          m.Date,
		HeartRate:     m.HeartRate,
		Steps:         m.Steps,
		SleepHours:    m.SleepHours,
		SugarLevel:    m.SugarLevel,
		BloodPressure: m.BloodPressure,
	}
}

type RiskResponse struct {
	Success        bool               `json:"success"`
	RiskScore      int                `json:"riskScore"`
	RiskLevel      string             `json:"riskLevel"`
	RuleBasedScore *int               `json:"ruleBasedScore,omitempty"`
	Message        string             `json:"message,omitempty"`
	Factors        []string           `json:"factors"`
	AIInsights     *ai.RiskPrediction `json:"aiInsights"`
	LatestMetric   *LatestMetric      `json:"latestMetric,omitempty"`
}

type AnalysisResponse struct {
	Success   bool             `json:"success"`
	Analysis  *ai.HealthAdvice `json:"analysis"`
	Timestamp time.Time        `json:"timestamp"`
}
