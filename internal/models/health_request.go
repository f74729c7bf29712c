package models

import (
	"time"

	"health-dashboard-be/internal/entities"
)

type BloodPressureRequest struct {
	Systolic  *float64 `json:"systolic" binding:"omitempty,min=50,max=250"`
	Diastolic *float64 `json:"diastolic" binding:"omitempty,min=30,max=150"`
}

// HealthMetricRequest is a day's submission. Omitted fields keep any value
// already recorded for the day.
type HealthMetricRequest struct {
	HeartRate     *int                  `json:"heartRate" binding:"omitempty,min=30,max=220"`
	Steps         *int                  `json:"steps" binding:"omitempty,min=0"`
	SleepHours    *float64              `json:"sleepHours" binding:"omitempty,min=0,max=24"`
	SugarLevel    *float64              `json:"sugarLevel" binding:"omitempty,min=0,max=500"`
	BloodPressure *BloodPressureRequest `json:"bloodPressure" binding:"omitempty"`
	Weight        *float64              `json:"weight" binding:"omitempty,min=0"`
	Notes         *string               `json:"notes" binding:"omitempty,max=500"`
}

// ToEntity builds the metric for userID on the given day.
func (r *HealthMetricRequest) ToEntity(userID string, day time.Time) *entities.HealthMetric {
	m := &entities.HealthMetric{
		UserID:     userID,
		Date:       entities.Day(day),
		HeartRate:  r.HeartRate,
		Steps:      r.Steps,
		SleepHours: r.SleepHours,
		SugarLevel: r.SugarLevel,
		Weight:     r.Weight,
		Notes:      r.Notes,
	}
	if r.BloodPressure != nil && (r.BloodPressure.Systolic != nil || r.BloodPressure.Diastolic != nil) {
		m.BloodPressure = &entities.BloodPressure{
			Systolic:  r.BloodPressure.Systolic,
			Diastolic: r.BloodPressure.Diastolic,
		}
	}
	return m
}
