package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/task-notes-api/internal/models"
	"github.com/yukikurage/task-notes-api/internal/utils"
)

// Every method that reads or writes an existing row takes the owner id and
// includes it in the row predicate.

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a new task
	Create(ctx context.Context, task *models.Task) error

	// FindOwned finds a task by id and owner. Returns gorm.ErrRecordNotFound on no match.
	FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*models.Task, error)

	// ListOwned lists the owner's tasks, newest first
	ListOwned(ctx context.Context, ownerID uuid.UUID, params utils.PaginationParams) ([]models.Task, error)

	// UpdateOwned applies values to the matching row in one statement and reports rows affected
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, values map[string]any) (int64, error)

	// DeleteOwned deletes the matching row and reports rows affected
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error)
}

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*models.Note, error)
	ListOwned(ctx context.Context, ownerID uuid.UUID, params utils.PaginationParams) ([]models.Note, error)
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, values map[string]any) (int64, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
