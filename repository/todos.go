package repository

import (
	"context"
	"errors"
	"main/model"
	"main/utils"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type TodosRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for todos
func GetTodosRepo(client *mongo.Client) *TodosRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("TODOS_COLLECTION")
	return &TodosRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Add a new todo (following the model) into the database
func (r *TodosRepo) CreateTodo(ctx context.Context, todo *model.Todo) error {
	timer := utils.TrackDBOperation("insert", "todos")
	defer timer.ObserveDuration()

	if todo.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, todo)
	if err != nil {
		utils.TrackError("database", "todo_creation_failed")
		return err
	}
	return nil
}

// Retrieves a single todo scoped to its owner
func (r *TodosRepo) GetTodoByID(ctx context.Context, userID, todoID string) (*model.Todo, error) {
	timer := utils.TrackDBOperation("find", "todos")
	defer timer.ObserveDuration()

	var todo model.Todo
	err := r.MongoCollection.FindOne(ctx, bson.M{
		"_id":     todoID,
		"user_id": userID,
	}).Decode(&todo)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		utils.TrackError("database", "todo_fetch_failed")
		return nil, err
	}
	return &todo, nil
}

// Retrieves all todos based on the User ID
func (r *TodosRepo) GetUserTodos(ctx context.Context, userID string) ([]*model.Todo, error) {
	timer := utils.TrackDBOperation("find", "todos")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "todo_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var todos []*model.Todo
	if err = cursor.All(ctx, &todos); err != nil {
		utils.TrackError("database", "todo_decode_failed")
		return nil, err
	}
	return todos, nil
}

// UpdateSchedule advances a recurring todo to its next occurrence: new due
// date, new reminder, bumped completion counter, completion flag reset.
func (r *TodosRepo) UpdateSchedule(ctx context.Context, userID, todoID string, due, reminder time.Time, completedOccurrences int) error {
	timer := utils.TrackDBOperation("update", "todos")
	defer timer.ObserveDuration()

	set := bson.M{
		"due_date":              due,
		"complete":              false,
		"completed_occurrences": completedOccurrences,
		"updated_at":            time.Now(),
	}
	if !reminder.IsZero() {
		set["reminder_at"] = reminder
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{
		"_id":     todoID,
		"user_id": userID,
	}, bson.M{"$set": set})
	if err != nil {
		utils.TrackError("database", "todo_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "todo_not_found")
		return errors.New("todo not found")
	}
	return nil
}

// MarkSeriesEnded closes out a recurring todo whose pattern has expired.
func (r *TodosRepo) MarkSeriesEnded(ctx context.Context, userID, todoID string, completedOccurrences int) error {
	timer := utils.TrackDBOperation("update", "todos")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{
		"_id":     todoID,
		"user_id": userID,
	}, bson.M{"$set": bson.M{
		"complete":              true,
		"series_ended":          true,
		"completed_occurrences": completedOccurrences,
		"updated_at":            time.Now(),
	}})
	if err != nil {
		utils.TrackError("database", "todo_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "todo_not_found")
		return errors.New("todo not found")
	}
	return nil
}

// ListCompletedRegular returns non-recurring todos completed in the given
// window, for the regular-completions column of the daily breakdown.
func (r *TodosRepo) ListCompletedRegular(ctx context.Context, userID string, start, end time.Time) ([]*model.Todo, error) {
	timer := utils.TrackDBOperation("find", "todos")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{
		"user_id":      userID,
		"complete":     true,
		"is_recurring": bson.M{"$ne": true},
		"updated_at": bson.M{
			"$gte": model.DateOnly(start),
			"$lt":  model.DateOnly(end).AddDate(0, 0, 1),
		},
	})
	if err != nil {
		utils.TrackError("database", "todo_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var todos []*model.Todo
	if err = cursor.All(ctx, &todos); err != nil {
		utils.TrackError("database", "todo_decode_failed")
		return nil, err
	}
	return todos, nil
}

// GetRecurringTodos returns a user's active recurring todos.
func (r *TodosRepo) GetRecurringTodos(ctx context.Context, userID string) ([]*model.Todo, error) {
	timer := utils.TrackDBOperation("find", "todos")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{
		"user_id":      userID,
		"is_recurring": true,
		"series_ended": bson.M{"$ne": true},
	})
	if err != nil {
		utils.TrackError("database", "todo_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var todos []*model.Todo
	if err = cursor.All(ctx, &todos); err != nil {
		utils.TrackError("database", "todo_decode_failed")
		return nil, err
	}
	return todos, nil
}
