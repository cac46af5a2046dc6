package handler

import (
	"context"
	"log"
	"time"

	"main/dto"
	"main/model"
	"main/recurrence"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TodoDirectory is the repository slice the todo endpoints need.
type TodoDirectory interface {
	CreateTodo(ctx context.Context, todo *model.Todo) error
	GetUserTodos(ctx context.Context, userID string) ([]*model.Todo, error)
	GetRecurringTodos(ctx context.Context, userID string) ([]*model.Todo, error)
}

type TodosHandler struct {
	todos TodoDirectory
}

func NewTodosHandler(todos TodoDirectory) *TodosHandler {
	return &TodosHandler{todos: todos}
}

// CreateTodo registers a todo, optionally recurring. A recurrence pattern is
// validated and normalized before it is stored, and a recurring todo must
// carry a due date to anchor its schedule.
func (h *TodosHandler) CreateTodo(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid identity")
		return
	}

	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Todo name is required")
		return
	}

	now := time.Now()
	todo := &model.Todo{
		TodoID:      uuid.New().String(),
		UserID:      userID.(string),
		TodoName:    req.TodoName,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.DueDate != nil {
		todo.DueDate = *req.DueDate
	}
	if req.ReminderAt != nil {
		todo.ReminderAt = *req.ReminderAt
	}

	resp := dto.TodoResponse{Todo: todo}
	if req.Recurrence != nil {
		if err := req.Recurrence.Validate(); err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		if todo.DueDate.IsZero() {
			utils.BadRequest(c, "A recurring todo needs a due date")
			return
		}
		pattern := req.Recurrence.Normalized()
		todo.IsRecurring = true
		todo.Recurrence = &pattern
		resp.RecurrenceText = recurrence.FormatPattern(pattern)
	}

	if err := h.todos.CreateTodo(c.Request.Context(), todo); err != nil {
		log.Printf("Error creating todo for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to create todo")
		return
	}

	utils.Created(c, resp)
}

// ListTodos returns the caller's todos; ?recurring=true narrows the list to
// active recurring ones.
func (h *TodosHandler) ListTodos(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid identity")
		return
	}

	var (
		todos []*model.Todo
		err   error
	)
	if c.Query("recurring") == "true" {
		todos, err = h.todos.GetRecurringTodos(c.Request.Context(), userID.(string))
	} else {
		todos, err = h.todos.GetUserTodos(c.Request.Context(), userID.(string))
	}
	if err != nil {
		log.Printf("Error listing todos for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to list todos")
		return
	}

	if todos == nil {
		todos = []*model.Todo{}
	}
	utils.Success(c, todos)
}
