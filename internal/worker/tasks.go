package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Task type constants
const (
	TaskReportCleanup = "report:cleanup"
)

type reportCleanupPayload struct {
	Path string `json:"path"`
}

// TaskScheduler enqueues delayed report removals on Redis so they survive
// a restart of the API process.
type TaskScheduler struct {
	client *asynq.Client
}

func NewTaskScheduler(redisURL string) (*TaskScheduler, error) {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return &TaskScheduler{client: asynq.NewClient(opt)}, nil
}

// NewReportCleanupTask builds the task that deletes path.
func NewReportCleanupTask(path string) (*asynq.Task, error) {
	payload, err := json.Marshal(reportCleanupPayload{Path: path})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(
		TaskReportCleanup,
		payload,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	), nil
}

// ScheduleRemoval enqueues the deletion of path to run after the delay.
func (s *TaskScheduler) ScheduleRemoval(ctx context.Context, path string, after time.Duration) error {
	task, err := NewReportCleanupTask(path)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, asynq.ProcessIn(after)); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", TaskReportCleanup, err)
	}
	return nil
}

func (s *TaskScheduler) Close() error {
	return s.client.Close()
}
