package scoring

import "health-dashboard-be/internal/entities"

// Risk factor labels
const (
	FactorHeartRate     = "Abnormal heart rate"
	FactorActivity      = "Low physical activity"
	FactorSleep         = "Insufficient sleep"
	FactorBloodSugar    = "Abnormal blood sugar levels"
	FactorBloodPressure = "High blood pressure"
)

const MaxRiskScore = 100

// Assessment is the rule-based risk for a single metric record.
type Assessment struct {
	RiskScore int      `json:"riskScore"`
	Factors   []string `json:"factors"`
}

// Assess sums a fixed penalty for every abnormal reading in m, capped at 100.
func Assess(m entities.HealthMetric) Assessment {
	a := Assessment{Factors: []string{}}

	if m.HeartRate != nil && (*m.HeartRate < 50 || *m.HeartRate > 120) {
		a.add(20, FactorHeartRate)
	}
	if m.Steps != nil && *m.Steps < 5000 {
		a.add(15, FactorActivity)
	}
	if m.SleepHours != nil && *m.SleepHours < 6 {
		a.add(20, FactorSleep)
	}
	if m.SugarLevel != nil && (*m.SugarLevel < 70 || *m.SugarLevel > 125) {
		a.add(25, FactorBloodSugar)
	}
	sys, dia := m.Systolic(), m.Diastolic()
	if (sys != nil && *sys >= 140) || (dia != nil && *dia >= 90) {
		a.add(20, FactorBloodPressure)
	}

	if a.RiskScore > MaxRiskScore {
		a.RiskScore = MaxRiskScore
	}
	return a
}

func (a *Assessment) add(points int, factor string) {
	a.RiskScore += points
	a.Factors = append(a.Factors, factor)
}

// Risk levels
const (
	LevelLow      = "low"
	LevelModerate = "moderate"
	LevelHigh     = "high"
	LevelCritical = "critical"
)

// RiskLevel buckets a 0-100 score.
func RiskLevel(score int) string {
	switch {
	case score < 30:
		return LevelLow
	case score < 60:
		return LevelModerate
	case score < 80:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// Blend averages the rule-based score with an AI score, rounding half up.
func Blend(rule, ai int) int {
	return (rule + ai + 1) / 2
}
