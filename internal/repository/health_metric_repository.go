package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"health-dashboard-be/internal/entities"
)

const dateLayout = "2006-01-02"

const metricColumns = `id, user_id, recorded_on, heart_rate, steps, sleep_hours, sugar_level,
	bp_systolic, bp_diastolic, weight, notes, created_at, updated_at`

type healthMetricRepository struct {
	db *sql.DB
}

// NewHealthMetricRepository creates a PostgreSQL metric repository
func NewHealthMetricRepository(db *sql.DB) HealthMetricRepository {
	return &healthMetricRepository{db: db}
}

// Upsert inserts the day's record or merges the non-null values into it
func (r *healthMetricRepository) Upsert(ctx context.Context, m *entities.HealthMetric) (*entities.HealthMetric, error) {
	query := `
		INSERT INTO health_metrics (user_id, recorded_on, heart_rate, steps, sleep_hours, sugar_level,
			bp_systolic, bp_diastolic, weight, notes)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, recorded_on) DO UPDATE SET
			heart_rate   = COALESCE(EXCLUDED.heart_rate, health_metrics.heart_rate),
			steps        = COALESCE(EXCLUDED.steps, health_metrics.steps),
			sleep_hours  = COALESCE(EXCLUDED.sleep_hours, health_metrics.sleep_hours),
			sugar_level  = COALESCE(EXCLUDED.sugar_level, health_metrics.sugar_level),
			bp_systolic  = COALESCE(EXCLUDED.bp_systolic, health_metrics.bp_systolic),
			bp_diastolic = COALESCE(EXCLUDED.bp_diastolic, health_metrics.bp_diastolic),
			weight       = COALESCE(EXCLUDED.weight, health_metrics.weight),
			notes        = COALESCE(EXCLUDED.notes, health_metrics.notes),
			updated_at   = NOW()
		RETURNING ` + metricColumns

	row := r.db.QueryRowContext(ctx, query,
		m.UserID,
		entities.Day(m.Date).Format(dateLayout),
		m.HeartRate,
		m.Steps,
		m.SleepHours,
		m.SugarLevel,
		m.Systolic(),
		m.Diastolic(),
		m.Weight,
		m.Notes,
	)

	saved, err := scanMetric(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert health metric: %w", err)
	}
	return saved, nil
}

// List returns the user's metrics within the query bounds
func (r *healthMetricRepository) List(ctx context.Context, userID string, q MetricQuery) ([]entities.HealthMetric, error) {
	query, args := metricListQuery(userID, q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list health metrics: %w", err)
	}
	defer rows.Close()

	metrics := []entities.HealthMetric{}
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan health metric: %w", err)
		}
		metrics = append(metrics, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate health metrics: %w", err)
	}
	return metrics, nil
}

// Latest returns the most recent day on record
func (r *healthMetricRepository) Latest(ctx context.Context, userID string) (*entities.HealthMetric, error) {
	query := `SELECT ` + metricColumns + ` FROM health_metrics WHERE user_id = $1 ORDER BY recorded_on DESC LIMIT 1`

	m, err := scanMetric(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest health metric: %w", err)
	}
	return m, nil
}

// metricListQuery numbers placeholders in the order the bounds are appended.
func metricListQuery(userID string, q MetricQuery) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + metricColumns + ` FROM health_metrics WHERE user_id = $1`)
	args := []interface{}{userID}

	if q.From != nil {
		args = append(args, entities.Day(*q.From).Format(dateLayout))
		fmt.Fprintf(&sb, ` AND recorded_on >= $%d::date`, len(args))
	}
	if q.To != nil {
		args = append(args, entities.Day(*q.To).Format(dateLayout))
		fmt.Fprintf(&sb, ` AND recorded_on <= $%d::date`, len(args))
	}
	if q.Ascending {
		sb.WriteString(` ORDER BY recorded_on ASC`)
	} else {
		sb.WriteString(` ORDER BY recorded_on DESC`)
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}
	return sb.String(), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMetric(row rowScanner) (*entities.HealthMetric, error) {
	var (
		m         entities.HealthMetric
		systolic  *float64
		diastolic *float64
	)
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Date,
		&m.HeartRate,
		&m.Steps,
		&m.SleepHours,
		&m.SugarLevel,
		&systolic,
		&diastolic,
		&m.Weight,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Date = entities.Day(m.Date)
	if systolic != nil || diastolic != nil {
		m.BloodPressure = &entities.BloodPressure{Systolic: systolic, Diastolic: diastolic}
	}
	return &m, nil
}
