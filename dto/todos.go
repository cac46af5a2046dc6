package dto

import (
	"time"

	"main/model"
)

type CreateTodoRequest struct {
	TodoName    string                   `json:"todo_name" binding:"required"`
	Description string                   `json:"description"`
	DueDate     *time.Time               `json:"due_date"`
	ReminderAt  *time.Time               `json:"reminder_at"`
	Recurrence  *model.RecurrencePattern `json:"recurrence"`
}

type TodoResponse struct {
	Todo           *model.Todo `json:"todo"`
	RecurrenceText string      `json:"recurrence_text,omitempty"`
}

type NextNotificationResponse struct {
	NextNotifyTime *time.Time `json:"next_notify_time"`
}
