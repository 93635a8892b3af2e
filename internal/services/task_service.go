package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yukikurage/task-notes-api/internal/auth"
	"github.com/yukikurage/task-notes-api/internal/logger"
	"github.com/yukikurage/task-notes-api/internal/models"
	"github.com/yukikurage/task-notes-api/internal/repository"
	"github.com/yukikurage/task-notes-api/internal/result"
	"github.com/yukikurage/task-notes-api/internal/utils"
	"github.com/yukikurage/task-notes-api/internal/validation"
	"gorm.io/gorm"
)

// TaskService handles task mutations and owner-scoped reads.
type TaskService struct {
	taskRepo repository.TaskRepository
	log      *logger.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, log *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		log:      log.With("service", "TaskService"),
	}
}

// CreateTaskInput carries raw form values; status and priority are parsed by validation.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      any
	Priority    any
}

// ListTasks returns the caller's tasks, newest first.
func (s *TaskService) ListTasks(ctx context.Context, actor auth.Actor, params utils.PaginationParams) ([]models.Task, error) {
	ownerID, err := auth.RequireUser(actor)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListOwned(ctx, ownerID, params)
	if err != nil {
		s.log.Error("failed to list tasks", "user_id", ownerID, "error", err)
		return nil, result.Wrap(result.KindPersistence, fmt.Errorf("failed to list tasks: %w", err))
	}
	return tasks, nil
}

// GetTask returns one of the caller's tasks.
func (s *TaskService) GetTask(ctx context.Context, actor auth.Actor, taskID uuid.UUID) (*models.Task, error) {
	ownerID, err := auth.RequireUser(actor)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindOwned(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, result.ErrNotFoundOrForbidden
		}
		s.log.Error("failed to find task", "user_id", ownerID, "task_id", taskID, "error", err)
		return nil, result.Wrap(result.KindPersistence, fmt.Errorf("failed to find task: %w", err))
	}
	return task, nil
}

// CreateTask validates input and stores a new task owned by the caller.
func (s *TaskService) CreateTask(ctx context.Context, actor auth.Actor, input CreateTaskInput) result.Result {
	ownerID, err := auth.RequireUser(actor)
	if err != nil {
		return result.Fail(err)
	}

	fields, err := validation.ValidateTaskInput(input.Title, input.Description, input.Status, input.Priority)
	if err != nil {
		return result.Fail(err)
	}

	task := &models.Task{
		OwnerID:     ownerID,
		Title:       fields.Title,
		Description: fields.Description,
		Status:      fields.Status,
		Priority:    fields.Priority,
	}

	if err := s.taskRepo.Create(detach(ctx), task); err != nil {
		s.log.Error("failed to create task", "user_id", ownerID, "error", err)
		return result.Fail(result.Wrap(result.KindPersistence, err))
	}

	return result.Success(task.ID)
}

// EditTaskContent replaces title and description and clears any summary in
// the same statement.
func (s *TaskService) EditTaskContent(ctx context.Context, actor auth.Actor, taskID uuid.UUID, title, description string) result.Result {
	ownerID, err := auth.RequireUser(actor)
	if err != nil {
		return result.Fail(err)
	}

	content, err := validation.ValidateTaskEdit(title, description)
	if err != nil {
		return result.Fail(err)
	}

	n, err := s.taskRepo.UpdateOwned(detach(ctx), taskID, ownerID, map[string]any{
		"title":       content.Title,
		"description": content.Description,
		"summary":     nil,
	})
	if err := s.checkAffected("edit task", ownerID, taskID, n, err); err != nil {
		return result.Fail(err)
	}

	return result.Success(taskID)
}

// TransitionStatus moves a task to any of the four statuses.
func (s *TaskService) TransitionStatus(ctx context.Context, actor auth.Actor, taskID uuid.UUID, status any) result.Result {
	ownerID, err := auth.RequireUser(actor)
	if err != nil {
		return result.Fail(err)
	}

	newStatus, err := validation.ParseStatus(status)
	if err != nil {
		return result.Fail(err)
	}

	n, err := s.taskRepo.UpdateOwned(detach(ctx), taskID, ownerID, map[string]any{
		"status": newStatus,
	})
	if err := s.checkAffected("update task status", ownerID, taskID, n, err); err != nil {
		return result.Fail(err)
	}

	return result.Success(taskID)
}

// DeleteTask removes a task. Deleting a missing or foreign task fails with
// NOT_FOUND_OR_FORBIDDEN, including a repeated delete.
func (s *TaskService) DeleteTask(ctx context.Context, actor auth.Actor, taskID uuid.UUID) result.Result {
	ownerID, err := auth.RequireUser(actor)
	if err != nil {
		return result.Fail(err)
	}

	n, err := s.taskRepo.DeleteOwned(detach(ctx), taskID, ownerID)
	if err := s.checkAffected("delete task", ownerID, taskID, n, err); err != nil {
		return result.Fail(err)
	}

	return result.Success(taskID)
}

func (s *TaskService) checkAffected(op string, ownerID, taskID uuid.UUID, n int64, err error) error {
	if err != nil {
		s.log.Error("failed to "+op, "user_id", ownerID, "task_id", taskID, "error", err)
		return result.Wrap(result.KindPersistence, err)
	}
	if n == 0 {
		return result.ErrNotFoundOrForbidden
	}
	return nil
}

// detach keeps request values but drops cancellation: once a mutation reaches
// the store it runs to completion even if the caller goes away.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
