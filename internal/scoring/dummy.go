package scoring

import (
	"math"
	"time"

	"health-dashboard-be/internal/entities"
)

const MaxDummyDays = 365

// IntN returns a pseudo-random number in [0, n).
type IntN func(n int) int

// DummyMetrics generates days of plausible readings, one per day going back
// from today (inclusive). days is clamped to [1, MaxDummyDays].
func DummyMetrics(userID string, days int, today time.Time, intn IntN) []entities.HealthMetric {
	if days < 1 {
		days = 1
	}
	if days > MaxDummyDays {
		days = MaxDummyDays
	}
	day := entities.Day(today)

	out := make([]entities.HealthMetric, 0, days)
	for i := 0; i < days; i++ {
		heartRate := 60 + intn(40)
		steps := 3000 + intn(8000)
		sleep := tenths(6, 3, intn)
		sugar := float64(85 + intn(30))
		systolic := float64(110 + intn(20))
		diastolic := float64(70 + intn(15))
		weight := tenths(65, 10, intn)

		out = append(out, entities.HealthMetric{
			UserID:     userID,
			Date:       day.AddDate(0, 0, -i),
			HeartRate:  &heartRate,
			Steps:      &steps,
			SleepHours: &sleep,
			SugarLevel: &sugar,
			BloodPressure: &entities.BloodPressure{
				Systolic:  &systolic,
				Diastolic: &diastolic,
			},
			Weight: &weight,
		})
	}
	return out
}

// tenths returns a value in [base, base+span] with one decimal place.
func tenths(base, span int, intn IntN) float64 {
	v := float64(base) + float64(intn(span*10+1))/10
	return math.Round(v*10) / 10
}
