package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"health-dashboard-be/internal/database"
	"health-dashboard-be/internal/entities"
)

// openTestDB connects to DATABASE_URL and migrates it. Tests that need it
// are skipped when no database is configured.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewConnection(ctx, url, database.RetryPolicy{Attempts: 1, Delay: time.Second}, zerolog.Nop())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.RunMigrations(ctx, db, zerolog.Nop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestPostgresMetricUpsertMergesSameDay(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewHealthMetricRepository(db)

	userID := "it-" + uuid.NewString()
	t.Cleanup(func() { db.Exec(`DELETE FROM health_metrics WHERE user_id = $1`, userID) })

	heartRate, steps := 72, 9000
	systolic := 128.0
	notes := "morning run"
	morning := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 10, 21, 30, 0, 0, time.UTC)

	first, err := repo.Upsert(ctx, &entities.HealthMetric{UserID: userID, Date: morning, HeartRate: &heartRate, Notes: &notes})
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.Upsert(ctx, &entities.HealthMetric{
		UserID:        userID,
		Date:          evening,
		Steps:         &steps,
		BloodPressure: &entities.BloodPressure{Systolic: &systolic},
	})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same row, got %s and %s", first.ID, second.ID)
	}

	metrics, err := repo.List(ctx, userID, MetricQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(metrics) != 1 {
		t.Fatalf("expected one record for the day, got %d", len(metrics))
	}
	m := metrics[0]
	if m.HeartRate == nil || *m.HeartRate != 72 || m.Steps == nil || *m.Steps != 9000 {
		t.Fatalf("expected both submissions merged, got %+v", m)
	}
	if m.Notes == nil || *m.Notes != notes {
		t.Fatalf("absent notes must keep the stored value, got %v", m.Notes)
	}
	if m.Systolic() == nil || *m.Systolic() != 128 || m.Diastolic() != nil {
		t.Fatalf("unexpected blood pressure: %+v", m.BloodPressure)
	}
	if !m.Date.Equal(entities.Day(morning)) {
		t.Fatalf("expected day key %s, got %s", entities.Day(morning), m.Date)
	}
}

func TestPostgresMetricListAndLatest(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewHealthMetricRepository(db)

	userID := "it-" + uuid.NewString()
	t.Cleanup(func() { db.Exec(`DELETE FROM health_metrics WHERE user_id = $1`, userID) })

	if _, err := repo.Latest(ctx, userID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		steps := 1000 * (i + 1)
		if _, err := repo.Upsert(ctx, &entities.HealthMetric{UserID: userID, Date: start.AddDate(0, 0, i), Steps: &steps}); err != nil {
			t.Fatal(err)
		}
	}

	from, to := start.AddDate(0, 0, 1), start.AddDate(0, 0, 3)
	window, err := repo.List(ctx, userID, MetricQuery{From: &from, To: &to, Ascending: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(window) != 3 || *window[0].Steps != 2000 || *window[2].Steps != 4000 {
		t.Fatalf("unexpected window: %+v", window)
	}

	newest, err := repo.List(ctx, userID, MetricQuery{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(newest) != 2 || *newest[0].Steps != 5000 {
		t.Fatalf("expected newest first, got %+v", newest)
	}

	latest, err := repo.Latest(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if latest.ID != newest[0].ID {
		t.Fatalf("expected latest %s, got %s", newest[0].ID, latest.ID)
	}
}

func TestPostgresUserRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	email := "it-" + uuid.NewString() + "@health.test"
	t.Cleanup(func() { db.Exec(`DELETE FROM users WHERE email = $1`, email) })

	created, err := repo.Create(ctx, &entities.User{Name: "Jane", Email: email, PasswordHash: "hash"})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.LastLoginAt != nil {
		t.Fatalf("unexpected user: %+v", created)
	}

	if _, err := repo.Create(ctx, &entities.User{Name: "Jane", Email: email, PasswordHash: "hash"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	byEmail, err := repo.FindByEmail(ctx, email)
	if err != nil || byEmail.ID != created.ID {
		t.Fatalf("FindByEmail: %+v %v", byEmail, err)
	}

	at := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	if err := repo.UpdateLastLogin(ctx, created.ID, at); err != nil {
		t.Fatal(err)
	}
	byID, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if byID.LastLoginAt == nil || !byID.LastLoginAt.Equal(at) {
		t.Fatalf("expected last login %s, got %v", at, byID.LastLoginAt)
	}

	missing := uuid.NewString()
	if _, err := repo.FindByID(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateLastLogin(ctx, missing, at); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresInsightRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewAIInsightRepository(db)

	userID := "it-" + uuid.NewString()
	t.Cleanup(func() { db.Exec(`DELETE FROM ai_insights WHERE user_id = $1`, userID) })

	score := 42
	if _, err := repo.Create(ctx, &entities.AIInsight{UserID: userID, Query: "hi", AIResponse: "hello", Category: entities.CategoryGeneral}); err != nil {
		t.Fatal(err)
	}
	saved, err := repo.Create(ctx, &entities.AIInsight{
		UserID:     userID,
		Query:      "analyze",
		AIResponse: "looks fine",
		Category:   entities.CategoryPreventive,
		RiskScore:  &score,
		Metadata:   map[string]any{"trend": "stable"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID == "" || saved.CreatedAt.IsZero() {
		t.Fatalf("expected generated id and timestamp: %+v", saved)
	}

	insights, err := repo.ListRecent(ctx, userID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(insights) != 2 || insights[0].ID != saved.ID {
		t.Fatalf("expected newest first, got %+v", insights)
	}
	if insights[0].RiskScore == nil || *insights[0].RiskScore != 42 || insights[0].Metadata["trend"] != "stable" {
		t.Fatalf("unexpected round trip: %+v", insights[0])
	}
	if insights[1].RiskScore != nil || insights[1].Metadata != nil {
		t.Fatalf("expected empty score and metadata, got %+v", insights[1])
	}
}
