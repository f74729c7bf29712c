package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"health-dashboard-be/internal/entities"
)

var csvHeader = []string{
	"Date",
	"Heart Rate (bpm)",
	"Steps",
	"Sleep (hours)",
	"Blood Sugar (mg/dL)",
	"BP Systolic",
	"BP Diastolic",
	"Weight (kg)",
}

// writeCSV emits one row per metric. Absent readings are empty cells.
func writeCSV(w io.Writer, metrics []entities.HealthMetric) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, m := range metrics {
		row := []string{
			m.Date.Format(dateLayout),
			formatInt(m.HeartRate),
			formatInt(m.Steps),
			formatFloat(m.SleepHours),
			formatFloat(m.SugarLevel),
			formatFloat(m.Systolic()),
			formatFloat(m.Diastolic()),
			formatFloat(m.Weight),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
