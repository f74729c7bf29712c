package entities

import "time"

// BloodPressure holds a single reading in mmHg. Either side may be missing.
type BloodPressure struct {
	Systolic  *float64 `json:"systolic,omitempty" bson:"systolic,omitempty"`
	Diastolic *float64 `json:"diastolic,omitempty" bson:"diastolic,omitempty"`
}

// HealthMetric is one user's readings for one UTC calendar day.
// Nil fields were never reported for that day.
type HealthMetric struct {
	ID            string         `json:"id" bson:"_id"`
	UserID        string         `json:"userId" bson:"user_id"`
	Date          time.Time      `json:"date" bson:"date"`
	HeartRate     *int           `json:"heartRate,omitempty" bson:"heart_rate,omitempty"`
	Steps         *int           `json:"steps,omitempty" bson:"steps,omitempty"`
	SleepHours    *float64       `json:"sleepHours,omitempty" bson:"sleep_hours,omitempty"`
	SugarLevel    *float64       `json:"sugarLevel,omitempty" bson:"sugar_level,omitempty"`
	BloodPressure *BloodPressure `json:"bloodPressure,omitempty" bson:"blood_pressure,omitempty"`
	Weight        *float64       `json:"weight,omitempty" bson:"weight,omitempty"`
	Notes         *string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" bson:"updated_at"`
}

// Systolic returns the systolic reading, if any.
func (m *HealthMetric) Systolic() *float64 {
	if m.BloodPressure == nil {
		return nil
	}
	return m.BloodPressure.Systolic
}

// Diastolic returns the diastolic reading, if any.
func (m *HealthMetric) Diastolic() *float64 {
	if m.BloodPressure == nil {
		return nil
	}
	return m.BloodPressure.Diastolic
}

// Day truncates t to midnight UTC, the key metrics are stored under.
func Day(t time.Time) time.Time {
	y, mo, d := t.UTC().Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
