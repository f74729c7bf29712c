package models

import "health-dashboard-be/internal/scoring"

type MetricsResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message,omitempty"`
	Count   int                        `json:"count"`
	Metrics []scoring.NormalizedMetric `json:"metrics"`
}

type SaveMetricResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Metric  scoring.NormalizedMetric `json:"metric"`
	Risk    scoring.Assessment       `json:"risk"`
}

// HealthStats are averages over the readings present in the window
type HealthStats struct {
	AvgHeartRate float64 `json:"avgHeartRate"`
	AvgSteps     float64 `json:"avgSteps"`
	AvgSleep     float64 `json:"avgSleep"`
	AvgSugar     float64 `json:"avgSugar"`
	AvgWeight    float64 `json:"avgWeight"`
	AvgSystolic  float64 `json:"avgSystolic"`
	AvgDiastolic float64 `json:"avgDiastolic"`
	TotalDays    int     `json:"totalDays"`
}

type StatsResponse struct {
	Success bool        `json:"success"`
	Days    int         `json:"days"`
	Stats   HealthStats `json:"stats"`
}
