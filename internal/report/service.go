package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"health-dashboard-be/internal/ai"
	"health-dashboard-be/internal/entities"
	"health-dashboard-be/internal/repository"
	"health-dashboard-be/internal/scoring"
)

// ErrNoData is returned when a CSV is requested for an empty window.
var ErrNoData = errors.New("no health data available")

const (
	filePrefix     = "health-report-"
	dateLayout     = "2006-01-02"
	reportInsights = 10

	ContentTypePDF = "application/pdf"
	ContentTypeCSV = "text/csv"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Archiver keeps a copy of each generated report.
type Archiver interface {
	Archive(ctx context.Context, userID, path, contentType string) error
}

// File is a generated report waiting to be served.
type File struct {
	Path        string
	Name        string
	ContentType string
}

type Options struct {
	Dir          string
	CleanupDelay time.Duration
	FrontendURL  string
}

type Service struct {
	metrics   repository.HealthMetricRepository
	insights  repository.AIInsightRepository
	advisor   ai.Advisor
	scheduler Scheduler
	archiver  Archiver // optional
	opts      Options
	logger    zerolog.Logger
	now       func() time.Time
}

func NewService(
	metrics repository.HealthMetricRepository,
	insights repository.AIInsightRepository,
	advisor ai.Advisor,
	scheduler Scheduler,
	archiver Archiver,
	opts Options,
	logger zerolog.Logger,
) *Service {
	return &Service{
		metrics:   metrics,
		insights:  insights,
		advisor:   advisor,
		scheduler: scheduler,
		archiver:  archiver,
		opts:      opts,
		logger:    logger.With().Str("component", "report").Logger(),
		now:       time.Now,
	}
}

// PDF renders the report for the last days days. Empty windows still
// produce a document.
func (s *Service) PDF(ctx context.Context, userID string, days int) (*File, error) {
	now := s.now().UTC()
	from := windowStart(now, days)

	var (
		metrics  []entities.HealthMetric
		insights []entities.AIInsight
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		metrics, err = s.metrics.List(gctx, userID, repository.MetricQuery{From: &from, Ascending: true})
		return err
	})
	g.Go(func() error {
		var err error
		insights, err = s.insights.ListRecent(gctx, userID, reportInsights)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load report data: %w", err)
	}

	content := pdfContent{
		GeneratedAt: now,
		From:        from,
		To:          entities.Day(now),
		Metrics:     metrics,
		Insights:    insights,
	}
	if s.opts.FrontendURL != "" {
		content.DashboardURL = s.opts.FrontendURL + "/dashboard"
	}
	if len(metrics) > 0 {
		latest := metrics[len(metrics)-1]
		risk := scoring.Assess(latest)
		content.Risk = &risk

		advice, err := s.advisor.GenerateHealthAdvice(ctx, []entities.HealthMetric{latest})
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to generate AI analysis for report")
		} else {
			content.Advice = advice
		}
	}

	var buf bytes.Buffer
	if err := renderPDF(&buf, content); err != nil {
		return nil, err
	}
	return s.write(ctx, userID, "pdf", ContentTypePDF, &buf)
}

// CSV exports the metrics of the last days days, oldest first.
func (s *Service) CSV(ctx context.Context, userID string, days int) (*File, error) {
	from := windowStart(s.now().UTC(), days)
	metrics, err := s.metrics.List(ctx, userID, repository.MetricQuery{From: &from, Ascending: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load report data: %w", err)
	}
	if len(metrics) == 0 {
		return nil, ErrNoData
	}

	var buf bytes.Buffer
	if err := writeCSV(&buf, metrics); err != nil {
		return nil, err
	}
	return s.write(ctx, userID, "csv", ContentTypeCSV, &buf)
}

// Release schedules removal of f once it has been served.
func (s *Service) Release(ctx context.Context, f *File) {
	if err := s.scheduler.ScheduleRemoval(ctx, f.Path, s.opts.CleanupDelay); err != nil {
		s.logger.Warn().Err(err).Str("path", f.Path).Msg("Failed to schedule report cleanup")
	}
}

func (s *Service) write(ctx context.Context, userID, ext, contentType string, body io.Reader) (*File, error) {
	if err := os.MkdirAll(s.opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	name := fmt.Sprintf("%s%s-%d.%s", filePrefix, unsafeFileChars.ReplaceAllString(userID, "_"), s.now().UnixMilli(), ext)
	path := filepath.Join(s.opts.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write report file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to write report file: %w", err)
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, userID, path, contentType); err != nil {
			s.logger.Warn().Err(err).Str("file", name).Msg("Failed to archive report")
		}
	}

	s.logger.Info().Str("user_id", userID).Str("file", name).Msg("Report generated")
	return &File{Path: path, Name: name, ContentType: contentType}, nil
}

// windowStart is the first day of a window of days days ending today.
func windowStart(now time.Time, days int) time.Time {
	if days <= 0 {
		days = 30
	}
	return entities.Day(now).AddDate(0, 0, -(days - 1))
}
