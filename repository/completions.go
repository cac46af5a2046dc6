package repository

import (
	"context"
	"errors"
	"main/model"
	"main/utils"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertOutcome reports which branch an upsert took. Both are successful
// outcomes; callers surface them for observability, never as errors.
type UpsertOutcome string

const (
	OutcomeCreated UpsertOutcome = "created"
	OutcomeUpdated UpsertOutcome = "updated"
)

type CompletionsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for completion records
func GetCompletionsRepo(client *mongo.Client) *CompletionsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("COMPLETIONS_COLLECTION")
	return &CompletionsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// EnsureIndexes creates the unique index on the natural key. The index is
// what makes concurrent upserts for the same occurrence safe: mongo
// serializes them instead of creating duplicates.
func (r *CompletionsRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.MongoCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "todo_id", Value: 1},
			{Key: "scheduled_date", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// UpsertByKey writes a completion record keyed by (user, todo, scheduled
// date): updates completed_at if a record exists, inserts otherwise.
// Idempotent under repeated identical calls.
func (r *CompletionsRepo) UpsertByKey(ctx context.Context, rec *model.CompletionRecord, now time.Time) (UpsertOutcome, error) {
	timer := utils.TrackDBOperation("upsert", "completions")
	defer timer.ObserveDuration()

	if rec.UserID == "" || rec.TodoID == "" {
		utils.TrackError("database", "missing_completion_key")
		return "", errors.New("user ID and todo ID are required")
	}
	if rec.ScheduledDate.IsZero() {
		utils.TrackError("database", "missing_scheduled_date")
		return "", errors.New("scheduled date is required")
	}

	filter := bson.M{
		"user_id":        rec.UserID,
		"todo_id":        rec.TodoID,
		"scheduled_date": model.DateOnly(rec.ScheduledDate),
	}

	update := bson.M{
		"$set": bson.M{
			"completed_at": rec.CompletedAt,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{
			"_id":        uuid.New().String(),
			"created_at": now,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		utils.TrackError("database", "completion_upsert_failed")
		return "", err
	}

	if result.UpsertedCount > 0 {
		return OutcomeCreated, nil
	}
	return OutcomeUpdated, nil
}

// ListByTodo returns every completion record for one todo.
func (r *CompletionsRepo) ListByTodo(ctx context.Context, userID, todoID string) ([]*model.CompletionRecord, error) {
	timer := utils.TrackDBOperation("find", "completions")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{
		"user_id": userID,
		"todo_id": todoID,
	})
	if err != nil {
		utils.TrackError("database", "completion_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.CompletionRecord
	if err = cursor.All(ctx, &records); err != nil {
		utils.TrackError("database", "completion_decode_failed")
		return nil, err
	}
	return records, nil
}

// ListInRange returns a user's completion records with scheduled dates in
// [start, end] inclusive.
func (r *CompletionsRepo) ListInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.CompletionRecord, error) {
	timer := utils.TrackDBOperation("find", "completions")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{
		"user_id": userID,
		"scheduled_date": bson.M{
			"$gte": model.DateOnly(start),
			"$lte": model.DateOnly(end),
		},
	})
	if err != nil {
		utils.TrackError("database", "completion_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.CompletionRecord
	if err = cursor.All(ctx, &records); err != nil {
		utils.TrackError("database", "completion_decode_failed")
		return nil, err
	}
	return records, nil
}

// CountCompleted counts finished occurrences of one todo, the number checked
// against a pattern's occurrence cap.
func (r *CompletionsRepo) CountCompleted(ctx context.Context, userID, todoID string) (int, error) {
	timer := utils.TrackDBOperation("count", "completions")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"user_id":      userID,
		"todo_id":      todoID,
		"completed_at": bson.M{"$ne": nil},
	})
	if err != nil {
		utils.TrackError("database", "completion_count_failed")
		return 0, err
	}
	return int(count), nil
}

// CountMissedBefore counts scheduled occurrences across all users that were
// never completed and whose day is before the given date. Used by the sweep
// job to keep the missed-occurrence gauge current.
func (r *CompletionsRepo) CountMissedBefore(ctx context.Context, today time.Time) (int, error) {
	timer := utils.TrackDBOperation("count", "completions")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"completed_at":   nil,
		"scheduled_date": bson.M{"$lt": model.DateOnly(today)},
	})
	if err != nil {
		utils.TrackError("database", "missed_count_failed")
		return 0, err
	}
	return int(count), nil
}
