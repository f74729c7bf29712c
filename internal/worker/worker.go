package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"health-dashboard-be/internal/report"
)

const concurrency = 2

// asynqLoggerAdapter wraps zerolog.Logger to implement asynq.Logger interface
type asynqLoggerAdapter struct {
	logger zerolog.Logger
}

func (a *asynqLoggerAdapter) Debug(args ...interface{}) {
	a.logger.Debug().Msg(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Info(args ...interface{}) {
	a.logger.Info().Msg(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Warn(args ...interface{}) {
	a.logger.Warn().Msg(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Error(args ...interface{}) {
	a.logger.Error().Msg(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Fatal(args ...interface{}) {
	a.logger.Error().Msg(fmt.Sprint(args...))
	panic(fmt.Sprint(args...))
}

// Start runs the embedded worker in non-blocking mode and returns a stop
// function for shutdown coordination.
func Start(redisURL, reportDir string, logger zerolog.Logger) (stop func(), err error) {
	redisOpt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	logger = logger.With().Str("component", "worker").Logger()

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency:     concurrency,
			ShutdownTimeout: 10 * time.Second,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error().Err(err).Str("task", task.Type()).Msg("Task failed")
			}),
			Logger: &asynqLoggerAdapter{logger: logger},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskReportCleanup, handleReportCleanup(logger, reportDir))

	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("failed to start worker: %w", err)
	}
	logger.Info().Int("concurrency", concurrency).Msg("Worker started")
	return srv.Shutdown, nil
}

// handleReportCleanup deletes a served report. Paths outside the report
// directory are rejected without retry.
func handleReportCleanup(logger zerolog.Logger, dir string) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload reportCleanupPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid payload: %w", asynq.SkipRetry)
		}

		if err := report.Remove(dir, payload.Path); err != nil {
			if errors.Is(err, report.ErrOutsideDir) {
				logger.Error().Str("path", payload.Path).Msg("Refusing to remove file outside report directory")
				return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
			}
			return err
		}

		logger.Debug().Str("path", payload.Path).Msg("Report file removed")
		return nil
	}
}
