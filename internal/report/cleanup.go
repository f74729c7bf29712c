package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var ErrOutsideDir = errors.New("path is outside the report directory")

// Scheduler deletes a generated report file some time after it was served.
type Scheduler interface {
	ScheduleRemoval(ctx context.Context, path string, after time.Duration) error
}

// Remove deletes path, refusing anything that does not live directly in dir.
// A file that is already gone is not an error.
func Remove(dir, path string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if filepath.Dir(absPath) != absDir || !strings.HasPrefix(filepath.Base(absPath), filePrefix) {
		return fmt.Errorf("%w: %s", ErrOutsideDir, path)
	}
	if err := os.Remove(absPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove report: %w", err)
	}
	return nil
}

// TimerScheduler removes files from an in-process timer. Pending removals
// are lost if the process exits.
type TimerScheduler struct {
	dir    string
	logger zerolog.Logger
}

func NewTimerScheduler(dir string, logger zerolog.Logger) *TimerScheduler {
	return &TimerScheduler{dir: dir, logger: logger.With().Str("component", "report-cleanup").Logger()}
}

func (s *TimerScheduler) ScheduleRemoval(_ context.Context, path string, after time.Duration) error {
	time.AfterFunc(after, func() {
		if err := Remove(s.dir, path); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to clean up report file")
			return
		}
		s.logger.Debug().Str("path", path).Msg("Report file removed")
	})
	return nil
}
