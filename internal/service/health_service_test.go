package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"health-dashboard-be/internal/entities"
	"health-dashboard-be/internal/models"
	"health-dashboard-be/internal/repository"
	"health-dashboard-be/internal/repository/mocks"
	"health-dashboard-be/internal/scoring"
)

type recordingPublisher struct {
	userID string
	alerts []models.RiskAlert
}

func (p *recordingPublisher) Publish(userID string, alert models.RiskAlert) {
	p.userID = userID
	p.alerts = append(p.alerts, alert)
}

var fixedNow = time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

func newTestHealthService(t *testing.T) (*healthService, *mocks.MockHealthMetricRepository, *recordingPublisher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockHealthMetricRepository(ctrl)
	pub := &recordingPublisher{}
	svc := NewHealthService(repo, pub, zerolog.Nop()).(*healthService)
	svc.now = func() time.Time { return fixedNow }
	svc.intn = func(n int) int { return 0 }
	return svc, repo, pub
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func echoUpsert(_ context.Context, m *entities.HealthMetric) (*entities.HealthMetric, error) {
	return m, nil
}

func TestSaveScoresStoredRecordAndPublishesAlert(t *testing.T) {
	svc, repo, pub := newTestHealthService(t)

	repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *entities.HealthMetric) (*entities.HealthMetric, error) {
		if !m.Date.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("expected today's date, got %s", m.Date)
		}
		// The stored record already had a low step count for today.
		merged := *m
		merged.Steps = intPtr(3000)
		return &merged, nil
	})

	resp, err := svc.Save(context.Background(), "u-1", &models.HealthMetricRequest{HeartRate: intPtr(70)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Risk.RiskScore != 15 || len(resp.Risk.Factors) != 1 || resp.Risk.Factors[0] != scoring.FactorActivity {
		t.Fatalf("unexpected risk: %+v", resp.Risk)
	}
	if resp.Metric.StepsStatus == "" {
		t.Fatal("expected normalized metric")
	}
	if pub.userID != "u-1" || len(pub.alerts) != 1 || pub.alerts[0].Kind != models.AlertKindRisk {
		t.Fatalf("unexpected alerts: %+v", pub.alerts)
	}
}

func TestSaveWithoutFactorsDoesNotPublish(t *testing.T) {
	svc, repo, pub := newTestHealthService(t)
	repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(echoUpsert)

	resp, err := svc.Save(context.Background(), "u-1", &models.HealthMetricRequest{
		HeartRate:  intPtr(70),
		Steps:      intPtr(9000),
		SleepHours: floatPtr(8),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Risk.RiskScore != 0 || len(resp.Risk.Factors) != 0 {
		t.Fatalf("unexpected risk: %+v", resp.Risk)
	}
	if len(pub.alerts) != 0 {
		t.Fatalf("expected no alerts, got %+v", pub.alerts)
	}
}

func TestGenerateDummyClampsDays(t *testing.T) {
	svc, repo, _ := newTestHealthService(t)
	repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(echoUpsert).Times(scoring.MaxDummyDays)

	metrics, err := svc.GenerateDummy(context.Background(), "u-1", 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(metrics) != scoring.MaxDummyDays {
		t.Fatalf("expected %d metrics, got %d", scoring.MaxDummyDays, len(metrics))
	}

	repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(echoUpsert).Times(1)
	if metrics, err = svc.GenerateDummy(context.Background(), "u-1", -4); err != nil || len(metrics) != 1 {
		t.Fatalf("expected one metric, got %d (%v)", len(metrics), err)
	}
}

func TestStatsAveragesPresentValues(t *testing.T) {
	svc, repo, _ := newTestHealthService(t)

	repo.EXPECT().List(gomock.Any(), "u-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, q repository.MetricQuery) ([]entities.HealthMetric, error) {
			want := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
			if q.From == nil || !q.From.Equal(want) {
				t.Fatalf("expected window from %s, got %v", want, q.From)
			}
			return []entities.HealthMetric{
				{HeartRate: intPtr(60), Steps: intPtr(4000)},
				{HeartRate: intPtr(80), BloodPressure: &entities.BloodPressure{Systolic: floatPtr(120)}},
				{SleepHours: floatPtr(7)},
			}, nil
		})

	stats, err := svc.Stats(context.Background(), "u-1", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.AvgHeartRate != 70 || stats.AvgSteps != 4000 || stats.AvgSleep != 7 {
		t.Fatalf("unexpected averages: %+v", stats)
	}
	if stats.AvgSystolic != 120 || stats.AvgDiastolic != 0 || stats.AvgSugar != 0 {
		t.Fatalf("unexpected averages: %+v", stats)
	}
	if stats.TotalDays != 3 {
		t.Fatalf("expected 3 days, got %d", stats.TotalDays)
	}
}

func TestListAppliesDefaultLimit(t *testing.T) {
	svc, repo, _ := newTestHealthService(t)
	repo.EXPECT().List(gomock.Any(), "u-1", repository.MetricQuery{Limit: DefaultMetricLimit}).Return(nil, nil)
	repo.EXPECT().List(gomock.Any(), "u-1", repository.MetricQuery{Limit: MaxMetricLimit}).Return(nil, nil)

	if _, err := svc.List(context.Background(), "u-1", repository.MetricQuery{}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.List(context.Background(), "u-1", repository.MetricQuery{Limit: 5000}); err != nil {
		t.Fatal(err)
	}
}
