package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"health-dashboard-be/internal/database"
	"health-dashboard-be/internal/entities"
)

func collection(db *mongo.Database, name string) *mongo.Collection {
	// Nested documents (insight metadata) decode as maps, not ordered slices.
	return db.Collection(name, options.Collection().SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true}))
}

// Mongo stores times with millisecond precision
func mongoNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a MongoDB user repository
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: collection(db, database.UsersCollection)}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	now := mongoNow()
	doc := *user
	doc.ID = uuid.NewString()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &doc, nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*entities.User, error) {
	var user entities.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *mongoUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_login_at": at.UTC(), "updated_at": mongoNow()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoHealthMetricRepository struct {
	coll *mongo.Collection
}

// NewMongoHealthMetricRepository creates a MongoDB metric repository
func NewMongoHealthMetricRepository(db *mongo.Database) HealthMetricRepository {
	return &mongoHealthMetricRepository{coll: collection(db, database.HealthMetricsCollection)}
}

// metricUpsert builds the filter and update for a merge upsert of m.
// Only present readings are $set so earlier values for the day survive.
func metricUpsert(m *entities.HealthMetric, now time.Time, newID string) (bson.M, bson.M) {
	filter := bson.M{"user_id": m.UserID, "date": entities.Day(m.Date)}

	set := bson.M{"updated_at": now}
	if m.HeartRate != nil {
		set["heart_rate"] = *m.HeartRate
	}
	if m.Steps != nil {
		set["steps"] = *m.Steps
	}
	if m.SleepHours != nil {
		set["sleep_hours"] = *m.SleepHours
	}
	if m.SugarLevel != nil {
		set["sugar_level"] = *m.SugarLevel
	}
	if sys := m.Systolic(); sys != nil {
		set["blood_pressure.systolic"] = *sys
	}
	if dia := m.Diastolic(); dia != nil {
		set["blood_pressure.diastolic"] = *dia
	}
	if m.Weight != nil {
		set["weight"] = *m.Weight
	}
	if m.Notes != nil {
		set["notes"] = *m.Notes
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"_id": newID, "created_at": now},
	}
	return filter, update
}

func (r *mongoHealthMetricRepository) Upsert(ctx context.Context, m *entities.HealthMetric) (*entities.HealthMetric, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved entities.HealthMetric
	var err error
	// A concurrent insert of the same day can lose the unique-index race once;
	// the second attempt then matches the winner's document.
	for attempt := 0; attempt < 2; attempt++ {
		filter, update := metricUpsert(m, mongoNow(), uuid.NewString())
		err = r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved)
		if err == nil || !mongo.IsDuplicateKeyError(err) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert health metric: %w", err)
	}
	saved.Date = entities.Day(saved.Date)
	return &saved, nil
}

func (r *mongoHealthMetricRepository) List(ctx context.Context, userID string, q MetricQuery) ([]entities.HealthMetric, error) {
	filter := bson.M{"user_id": userID}
	dateRange := bson.M{}
	if q.From != nil {
		dateRange["$gte"] = entities.Day(*q.From)
	}
	if q.To != nil {
		dateRange["$lte"] = entities.Day(*q.To)
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	order := -1
	if q.Ascending {
		order = 1
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: order}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list health metrics: %w", err)
	}
	metrics := []entities.HealthMetric{}
	if err := cursor.All(ctx, &metrics); err != nil {
		return nil, fmt.Errorf("failed to decode health metrics: %w", err)
	}
	for i := range metrics {
		metrics[i].Date = entities.Day(metrics[i].Date)
	}
	return metrics, nil
}

func (r *mongoHealthMetricRepository) Latest(ctx context.Context, userID string) (*entities.HealthMetric, error) {
	metrics, err := r.List(ctx, userID, MetricQuery{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(metrics) == 0 {
		return nil, ErrNotFound
	}
	return &metrics[0], nil
}

type mongoAIInsightRepository struct {
	coll *mongo.Collection
}

// NewMongoAIInsightRepository creates a MongoDB insight repository
func NewMongoAIInsightRepository(db *mongo.Database) AIInsightRepository {
	return &mongoAIInsightRepository{coll: collection(db, database.AIInsightsCollection)}
}

func (r *mongoAIInsightRepository) Create(ctx context.Context, insight *entities.AIInsight) (*entities.AIInsight, error) {
	if !entities.ValidCategory(insight.Category) {
		return nil, fmt.Errorf("failed to create AI insight: unknown category %q", insight.Category)
	}
	doc := *insight
	doc.ID = uuid.NewString()
	doc.CreatedAt = mongoNow()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create AI insight: %w", err)
	}
	return &doc, nil
}

func (r *mongoAIInsightRepository) ListRecent(ctx context.Context, userID string, limit int) ([]entities.AIInsight, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list AI insights: %w", err)
	}
	insights := []entities.AIInsight{}
	if err := cursor.All(ctx, &insights); err != nil {
		return nil, fmt.Errorf("failed to decode AI insights: %w", err)
	}
	return insights, nil
}
