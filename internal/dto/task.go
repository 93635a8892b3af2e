package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/task-notes-api/internal/models"
	"github.com/yukikurage/task-notes-api/internal/utils"
)

// CreateTaskRequest is the body of POST /api/tasks. Status and priority are
// left loosely typed and parsed by the validation layer.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      any    `json:"status"`
	Priority    any    `json:"priority"`
}

// EditTaskRequest is the body of PATCH /api/tasks/:id
type EditTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// StatusRequest is the body of PATCH /api/tasks/:id/status
type StatusRequest struct {
	Status any `json:"status"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	Summary     *string             `json:"summary"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TaskListResponse represents a page of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// MutationResponse is returned by every successful mutation
type MutationResponse struct {
	Success bool      `json:"success"`
	ID      uuid.UUID `json:"id"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Summary:     task.Summary,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, params utils.PaginationParams) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return TaskListResponse{
		Tasks:      items,
		Pagination: params.Response(),
	}
}
