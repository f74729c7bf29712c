package worker

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

func TestReportCleanupTaskPayload(t *testing.T) {
	task, err := NewReportCleanupTask("temp/health-report-u-1-1.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if task.Type() != TaskReportCleanup {
		t.Fatalf("unexpected task type %s", task.Type())
	}
	if !strings.Contains(string(task.Payload()), `"path":"temp/health-report-u-1-1.pdf"`) {
		t.Fatalf("unexpected payload %s", task.Payload())
	}
}

func TestHandleReportCleanupRemovesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "health-report-u-1-1.pdf")
	if err := os.WriteFile(path, []byte("%PDF"), 0o600); err != nil {
		t.Fatal(err)
	}
	task, err := NewReportCleanupTask(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := handleReportCleanup(zerolog.Nop(), dir)(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected file to be removed, stat err = %v", err)
	}
}

func TestHandleReportCleanupRejectsForeignPath(t *testing.T) {
	task, err := NewReportCleanupTask("/etc/passwd")
	if err != nil {
		t.Fatal(err)
	}

	err = handleReportCleanup(zerolog.Nop(), t.TempDir())(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestHandleReportCleanupRejectsBadPayload(t *testing.T) {
	task := asynq.NewTask(TaskReportCleanup, []byte("{"))

	err := handleReportCleanup(zerolog.Nop(), t.TempDir())(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestAsynqLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := &asynqLoggerAdapter{logger: zerolog.New(&buf)}

	adapter.Warn("queue ", "default", " is slow")

	if !strings.Contains(buf.String(), `"message":"queue default is slow"`) {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}
