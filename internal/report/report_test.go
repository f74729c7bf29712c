package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"health-dashboard-be/internal/ai"
	aimocks "health-dashboard-be/internal/ai/mocks"
	"health-dashboard-be/internal/entities"
	"health-dashboard-be/internal/repository"
	"health-dashboard-be/internal/repository/mocks"
)

type recordingScheduler struct {
	paths []string
	after time.Duration
}

func (r *recordingScheduler) ScheduleRemoval(_ context.Context, path string, after time.Duration) error {
	r.paths = append(r.paths, path)
	r.after = after
	return nil
}

type recordingArchiver struct {
	userID string
	paths  []string
	err    error
}

func (r *recordingArchiver) Archive(_ context.Context, userID, path, _ string) error {
	r.userID = userID
	r.paths = append(r.paths, path)
	return r.err
}

var reportNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc       *Service
	metrics   *mocks.MockHealthMetricRepository
	insights  *mocks.MockAIInsightRepository
	advisor   *aimocks.MockAdvisor
	scheduler *recordingScheduler
	archiver  *recordingArchiver
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := fixture{
		metrics:   mocks.NewMockHealthMetricRepository(ctrl),
		insights:  mocks.NewMockAIInsightRepository(ctrl),
		advisor:   aimocks.NewMockAdvisor(ctrl),
		scheduler: &recordingScheduler{},
		archiver:  &recordingArchiver{},
	}
	f.svc = NewService(f.metrics, f.insights, f.advisor, f.scheduler, f.archiver, Options{
		Dir:          t.TempDir(),
		CleanupDelay: 5 * time.Second,
		FrontendURL:  "http://localhost:3000",
	}, zerolog.Nop())
	f.svc.now = func() time.Time { return reportNow }
	return f
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func sampleMetrics() []entities.HealthMetric {
	return []entities.HealthMetric{
		{Date: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), HeartRate: intPtr(70), Steps: intPtr(8000)},
		{
			Date:          time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			HeartRate:     intPtr(45),
			SleepHours:    floatPtr(6.5),
			BloodPressure: &entities.BloodPressure{Systolic: floatPtr(150), Diastolic: floatPtr(95)},
		},
	}
}

func TestPDFWritesDocumentAndArchives(t *testing.T) {
	f := newFixture(t)
	metrics := sampleMetrics()

	f.metrics.EXPECT().List(gomock.Any(), "u-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, q repository.MetricQuery) ([]entities.HealthMetric, error) {
			want := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
			if q.From == nil || !q.From.Equal(want) || !q.Ascending {
				t.Fatalf("unexpected query: %+v", q)
			}
			return metrics, nil
		})
	f.insights.EXPECT().ListRecent(gomock.Any(), "u-1", reportInsights).Return([]entities.AIInsight{
		{Query: "How is my sleep?", AIResponse: "Fine.", Category: entities.CategoryGeneral, CreatedAt: reportNow},
	}, nil)
	f.advisor.EXPECT().GenerateHealthAdvice(gomock.Any(), []entities.HealthMetric{metrics[1]}).
		Return(&ai.HealthAdvice{Advice: "Watch your blood pressure.", RiskScore: 55, Recommendations: []string{"Cut salt"}}, nil)

	file, err := f.svc.PDF(context.Background(), "u-1", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.ContentType != ContentTypePDF || !strings.HasPrefix(file.Name, "health-report-u-1-") || !strings.HasSuffix(file.Name, ".pdf") {
		t.Fatalf("unexpected file: %+v", file)
	}
	data, err := os.ReadFile(file.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("not a pdf: %q", data[:min(len(data), 16)])
	}
	if f.archiver.userID != "u-1" || len(f.archiver.paths) != 1 {
		t.Fatalf("expected report to be archived, got %+v", f.archiver)
	}
}

func TestPDFSurvivesAIFailureAndEmptyWindow(t *testing.T) {
	f := newFixture(t)
	f.archiver.err = errors.New("s3 down")

	f.metrics.EXPECT().List(gomock.Any(), "u-1", gomock.Any()).Return(sampleMetrics(), nil)
	f.insights.EXPECT().ListRecent(gomock.Any(), "u-1", gomock.Any()).Return(nil, nil)
	f.advisor.EXPECT().GenerateHealthAdvice(gomock.Any(), gomock.Any()).Return(nil, errors.New("backend down"))

	if _, err := f.svc.PDF(context.Background(), "u-1", 30); err != nil {
		t.Fatalf("expected report despite AI failure, got %v", err)
	}

	f.metrics.EXPECT().List(gomock.Any(), "u-2", gomock.Any()).Return(nil, nil)
	f.insights.EXPECT().ListRecent(gomock.Any(), "u-2", gomock.Any()).Return(nil, nil)
	if _, err := f.svc.PDF(context.Background(), "u-2", 30); err != nil {
		t.Fatalf("expected report for empty window, got %v", err)
	}
}

func TestPDFPropagatesLoadError(t *testing.T) {
	f := newFixture(t)
	f.metrics.EXPECT().List(gomock.Any(), "u-1", gomock.Any()).Return(nil, errors.New("db down"))
	f.insights.EXPECT().ListRecent(gomock.Any(), "u-1", gomock.Any()).Return(nil, nil).AnyTimes()

	if _, err := f.svc.PDF(context.Background(), "u-1", 30); err == nil {
		t.Fatal("expected error")
	}
}

func TestCSV(t *testing.T) {
	f := newFixture(t)
	f.metrics.EXPECT().List(gomock.Any(), "../u 1", gomock.Any()).Return(sampleMetrics(), nil)

	file, err := f.svc.CSV(context.Background(), "../u 1", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(file.Path) != f.svc.opts.Dir || strings.Contains(file.Name, "/") {
		t.Fatalf("file escaped the report directory: %s", file.Path)
	}

	data, err := os.ReadFile(file.Path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", data)
	}
	if lines[0] != "Date,Heart Rate (bpm),Steps,Sleep (hours),Blood Sugar (mg/dL),BP Systolic,BP Diastolic,Weight (kg)" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if lines[1] != "2024-03-09,70,8000,,,,," {
		t.Fatalf("unexpected row: %s", lines[1])
	}
	if lines[2] != "2024-03-10,45,,6.5,,150,95," {
		t.Fatalf("unexpected row: %s", lines[2])
	}
}

func TestCSVWithoutData(t *testing.T) {
	f := newFixture(t)
	f.metrics.EXPECT().List(gomock.Any(), "u-1", gomock.Any()).Return(nil, nil)

	if _, err := f.svc.CSV(context.Background(), "u-1", 30); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestReleaseSchedulesCleanup(t *testing.T) {
	f := newFixture(t)
	f.svc.Release(context.Background(), &File{Path: "/tmp/x.pdf"})

	if len(f.scheduler.paths) != 1 || f.scheduler.after != 5*time.Second {
		t.Fatalf("unexpected schedule: %+v", f.scheduler)
	}
}

func TestRemoveRefusesForeignPaths(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(t.TempDir(), "health-report-x.pdf")
	if err := os.WriteFile(outside, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := Remove(dir, outside); !errors.Is(err, ErrOutsideDir) {
		t.Fatalf("expected ErrOutsideDir, got %v", err)
	}
	if err := Remove(dir, filepath.Join(dir, "..", "health-report-x.pdf")); !errors.Is(err, ErrOutsideDir) {
		t.Fatalf("expected ErrOutsideDir for traversal, got %v", err)
	}
	if err := Remove(dir, filepath.Join(dir, "notes.txt")); !errors.Is(err, ErrOutsideDir) {
		t.Fatalf("expected ErrOutsideDir for non-report file, got %v", err)
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("foreign file was touched: %v", err)
	}

	// Already removed files are fine.
	if err := Remove(dir, filepath.Join(dir, "health-report-gone.csv")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTimerSchedulerRemovesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "health-report-u-1-1.csv")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewTimerScheduler(dir, zerolog.Nop())
	if err := s.ScheduleRemoval(context.Background(), path, 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("file was not removed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
