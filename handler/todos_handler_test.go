package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"main/model"

	"github.com/gin-gonic/gin"
)

type fakeTodoDirectory struct {
	created []*model.Todo
	todos   []*model.Todo
}

func (f *fakeTodoDirectory) CreateTodo(_ context.Context, todo *model.Todo) error {
	f.created = append(f.created, todo)
	return nil
}

func (f *fakeTodoDirectory) GetUserTodos(_ context.Context, userID string) ([]*model.Todo, error) {
	return f.todos, nil
}

func (f *fakeTodoDirectory) GetRecurringTodos(_ context.Context, userID string) ([]*model.Todo, error) {
	var out []*model.Todo
	for _, todo := range f.todos {
		if todo.IsRecurring {
			out = append(out, todo)
		}
	}
	return out, nil
}

func newTodosRouter(dir TodoDirectory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewTodosHandler(dir)
	api := router.Group("/api", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	})
	api.POST("/todos", h.CreateTodo)
	api.GET("/todos", h.ListTodos)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateTodoNormalizesPattern(t *testing.T) {
	dir := &fakeTodoDirectory{}
	router := newTodosRouter(dir)

	w := postJSON(t, router, "/api/todos", map[string]interface{}{
		"todo_name": "water the plants",
		"due_date":  time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC).Format(time.RFC3339),
		"recurrence": map[string]interface{}{
			"type": "DAILY",
		},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(dir.created) != 1 {
		t.Fatalf("expected 1 stored todo, got %d", len(dir.created))
	}

	todo := dir.created[0]
	if !todo.IsRecurring || todo.Recurrence == nil {
		t.Fatal("todo not stored as recurring")
	}
	if todo.Recurrence.Interval != 1 {
		t.Fatalf("expected normalized interval 1, got %d", todo.Recurrence.Interval)
	}
	if todo.Recurrence.NotifyAt != model.DefaultNotifyAt {
		t.Fatalf("expected default notify time, got %q", todo.Recurrence.NotifyAt)
	}
	if todo.UserID != "user-1" || todo.TodoID == "" {
		t.Fatalf("todo missing identity fields: %+v", todo)
	}
}

func TestCreateTodoRejectsBadPattern(t *testing.T) {
	dir := &fakeTodoDirectory{}
	router := newTodosRouter(dir)

	w := postJSON(t, router, "/api/todos", map[string]interface{}{
		"todo_name": "water the plants",
		"due_date":  time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC).Format(time.RFC3339),
		"recurrence": map[string]interface{}{
			"type":         "DAILY",
			"days_of_week": []int{9},
		},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(dir.created) != 0 {
		t.Fatal("invalid todo should not be stored")
	}
}

func TestCreateTodoRecurringNeedsDueDate(t *testing.T) {
	dir := &fakeTodoDirectory{}
	router := newTodosRouter(dir)

	w := postJSON(t, router, "/api/todos", map[string]interface{}{
		"todo_name": "water the plants",
		"recurrence": map[string]interface{}{
			"type": "WEEKLY",
		},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListTodosRecurringFilter(t *testing.T) {
	dir := &fakeTodoDirectory{todos: []*model.Todo{
		{TodoID: "a", UserID: "user-1", TodoName: "one-off"},
		{TodoID: "b", UserID: "user-1", TodoName: "repeating", IsRecurring: true},
	}}
	router := newTodosRouter(dir)

	req := httptest.NewRequest(http.MethodGet, "/api/todos?recurring=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data []*model.Todo `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].TodoID != "b" {
		t.Fatalf("expected only the recurring todo, got %+v", resp.Data)
	}
}
