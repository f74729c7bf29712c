package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"

	"health-dashboard-be/internal/ai"
	"health-dashboard-be/internal/entities"
	"health-dashboard-be/internal/scoring"
)

const (
	pageMargin  = 15.0
	lineHeight  = 6.0
	qrImageName = "dashboard-qr"
	qrSizePx    = 256
	qrSizeMM    = 35.0
)

type pdfContent struct {
	GeneratedAt  time.Time
	From, To     time.Time
	Metrics      []entities.HealthMetric // oldest first
	Insights     []entities.AIInsight
	Advice       *ai.HealthAdvice // nil when the AI backend failed
	Risk         *scoring.Assessment
	DashboardURL string
}

var tableColumns = []struct {
	title string
	width float64
}{
	{"Date", 26}, {"HR", 18}, {"Steps", 22}, {"Sleep", 18},
	{"Sugar", 20}, {"BP", 28}, {"Weight", 20}, {"Risk", 18},
}

func renderPDF(w io.Writer, c pdfContent) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Health Report", false)
	pdf.SetCreator("health-dashboard", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Health Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("Generated: %s", c.GeneratedAt.Format("2006-01-02 15:04 MST")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("Period: %s to %s", c.From.Format(dateLayout), c.To.Format(dateLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	heading(pdf, "Executive Summary")
	switch {
	case len(c.Metrics) == 0:
		pdf.MultiCell(0, lineHeight, "No metrics were recorded in this period.", "", "L", false)
	case c.Advice == nil:
		pdf.MultiCell(0, lineHeight, "AI analysis is currently unavailable. Rule-based scoring is shown below.", "", "L", false)
	default:
		pdf.MultiCell(0, lineHeight, tr(c.Advice.Advice), "", "L", false)
	}
	if c.Risk != nil {
		pdf.Ln(2)
		line := fmt.Sprintf("Rule-based risk score: %d/100 (%s)", c.Risk.RiskScore, scoring.RiskLevel(c.Risk.RiskScore))
		pdf.MultiCell(0, lineHeight, line, "", "L", false)
		for _, f := range c.Risk.Factors {
			pdf.MultiCell(0, lineHeight, "- "+f, "", "L", false)
		}
	}
	if c.Advice != nil {
		pdf.MultiCell(0, lineHeight, fmt.Sprintf("AI risk score: %d/100", c.Advice.RiskScore), "", "L", false)
	}
	pdf.Ln(4)

	heading(pdf, "Metrics Overview")
	if len(c.Metrics) == 0 {
		pdf.MultiCell(0, lineHeight, "No metrics available for this period.", "", "L", false)
	} else {
		avg := averages(c.Metrics)
		for _, line := range []string{
			fmt.Sprintf("Average Heart Rate: %.1f bpm", avg.heartRate),
			fmt.Sprintf("Average Steps: %.0f steps/day", avg.steps),
			fmt.Sprintf("Average Sleep: %.1f hours/night", avg.sleep),
			fmt.Sprintf("Average Blood Sugar: %.1f mg/dL", avg.sugar),
		} {
			pdf.CellFormat(0, lineHeight, line, "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
		metricTable(pdf, c.Metrics)
	}
	pdf.Ln(4)

	if c.Advice != nil && len(c.Advice.Recommendations) > 0 {
		heading(pdf, "Recommendations")
		for _, rec := range c.Advice.Recommendations {
			pdf.MultiCell(0, lineHeight, tr("- "+rec), "", "L", false)
		}
		pdf.Ln(4)
	}

	if len(c.Insights) > 0 {
		heading(pdf, "Recent AI Insights")
		for _, in := range c.Insights {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.MultiCell(0, lineHeight, tr(fmt.Sprintf("%s [%s] %s", in.CreatedAt.Format(dateLayout), in.Category, in.Query)), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, lineHeight, tr(truncate(in.AIResponse, 400)), "", "L", false)
			pdf.Ln(1)
		}
		pdf.Ln(3)
	}

	if c.DashboardURL != "" {
		if err := dashboardQR(pdf, c.DashboardURL); err != nil {
			return err
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func heading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, title, "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 11)
}

func metricTable(pdf *fpdf.Fpdf, metrics []entities.HealthMetric) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 236, 245)
	for _, col := range tableColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, m := range metrics {
		bp := ""
		if sys, dia := m.Systolic(), m.Diastolic(); sys != nil && dia != nil {
			bp = fmt.Sprintf("%.0f/%.0f", *sys, *dia)
		}
		cells := []string{
			m.Date.Format(dateLayout),
			formatInt(m.HeartRate),
			formatInt(m.Steps),
			formatFloat(m.SleepHours),
			formatFloat(m.SugarLevel),
			bp,
			formatFloat(m.Weight),
			fmt.Sprint(scoring.Assess(m).RiskScore),
		}
		for i, col := range tableColumns {
			pdf.CellFormat(col.width, 6, cells[i], "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetFont("Helvetica", "", 11)
}

func dashboardQR(pdf *fpdf.Fpdf, url string) error {
	png, err := qrcode.Encode(url, qrcode.Medium, qrSizePx)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	heading(pdf, "Open your dashboard")
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(png))
	pdf.ImageOptions(qrImageName, pdf.GetX(), pdf.GetY(), qrSizeMM, qrSizeMM, true, opts, 0, url)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, lineHeight, url, "", 1, "L", false, 0, url)
	return nil
}

type metricAverages struct {
	heartRate, steps, sleep, sugar float64
}

func averages(metrics []entities.HealthMetric) metricAverages {
	var sums metricAverages
	var n [4]int
	for _, m := range metrics {
		if m.HeartRate != nil {
			sums.heartRate += float64(*m.HeartRate)
			n[0]++
		}
		if m.Steps != nil {
			sums.steps += float64(*m.Steps)
			n[1]++
		}
		if m.SleepHours != nil {
			sums.sleep += *m.SleepHours
			n[2]++
		}
		if m.SugarLevel != nil {
			sums.sugar += *m.SugarLevel
			n[3]++
		}
	}
	div := func(sum float64, count int) float64 {
		if count == 0 {
			return 0
		}
		return sum / float64(count)
	}
	return metricAverages{
		heartRate: div(sums.heartRate, n[0]),
		steps:     div(sums.steps, n[1]),
		sleep:     div(sums.sleep, n[2]),
		sugar:     div(sums.sugar, n[3]),
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
