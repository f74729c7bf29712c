package scoring

import "health-dashboard-be/internal/entities"

// Status values assigned by Normalize
const (
	StatusLow       = "low"
	StatusNormal    = "normal"
	StatusElevated  = "elevated"
	StatusModerate  = "moderate"
	StatusExcellent = "excellent"

	StatusInsufficient = "insufficient"
	StatusOptimal      = "optimal"
	StatusExcessive    = "excessive"

	StatusPrediabetic = "prediabetic"
	StatusDiabetic    = "diabetic"

	StatusHighStage1 = "high_stage1"
	StatusHighStage2 = "high_stage2"
)

// NormalizedMetric is a metric with a status bucket per present reading.
// The embedded metric fields are flattened next to the statuses in JSON.
type NormalizedMetric struct {
	entities.HealthMetric
	HeartRateStatus string `json:"heartRateStatus,omitempty"`
	StepsStatus     string `json:"stepsStatus,omitempty"`
	SleepStatus     string `json:"sleepStatus,omitempty"`
	SugarStatus     string `json:"sugarStatus,omitempty"`
	BPStatus        string `json:"bpStatus,omitempty"`
}

// Normalize classifies each present reading of m.
func Normalize(m entities.HealthMetric) NormalizedMetric {
	n := NormalizedMetric{HealthMetric: m}

	if m.HeartRate != nil {
		n.HeartRateStatus = HeartRateStatus(*m.HeartRate)
	}
	if m.Steps != nil {
		n.StepsStatus = StepsStatus(*m.Steps)
	}
	if m.SleepHours != nil {
		n.SleepStatus = SleepStatus(*m.SleepHours)
	}
	if m.SugarLevel != nil {
		n.SugarStatus = SugarStatus(*m.SugarLevel)
	}
	n.BPStatus = BloodPressureStatus(m.Systolic(), m.Diastolic())

	return n
}

// NormalizeAll applies Normalize to every metric, preserving order.
func NormalizeAll(metrics []entities.HealthMetric) []NormalizedMetric {
	out := make([]NormalizedMetric, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, Normalize(m))
	}
	return out
}

// HeartRateStatus classifies a resting heart rate in bpm.
func HeartRateStatus(bpm int) string {
	switch {
	case bpm < 60:
		return StatusLow
	case bpm > 100:
		return StatusElevated
	default:
		return StatusNormal
	}
}

// StepsStatus classifies a daily step count.
func StepsStatus(steps int) string {
	switch {
	case steps < 5000:
		return StatusLow
	case steps < 10000:
		return StatusModerate
	default:
		return StatusExcellent
	}
}

// SleepStatus classifies a night's sleep in hours.
func SleepStatus(hours float64) string {
	switch {
	case hours < 6:
		return StatusInsufficient
	case hours <= 9:
		return StatusOptimal
	default:
		return StatusExcessive
	}
}

// SugarStatus classifies a blood sugar reading in mg/dL.
func SugarStatus(mgdl float64) string {
	switch {
	case mgdl < 70:
		return StatusLow
	case mgdl <= 100:
		return StatusNormal
	case mgdl <= 125:
		return StatusPrediabetic
	default:
		return StatusDiabetic
	}
}

// BloodPressureStatus stages a reading using the 120/80, 130/80 and 140/90
// cutoffs. The worse of the two components decides; a missing component is
// ignored and an empty string means nothing was measured.
func BloodPressureStatus(systolic, diastolic *float64) string {
	if systolic == nil && diastolic == nil {
		return ""
	}
	sys, dia := 0.0, 0.0
	if systolic != nil {
		sys = *systolic
	}
	if diastolic != nil {
		dia = *diastolic
	}

	switch {
	case sys >= 140 || dia >= 90:
		return StatusHighStage2
	case sys >= 130 || dia >= 80:
		return StatusHighStage1
	case sys >= 120:
		return StatusElevated
	default:
		return StatusNormal
	}
}
