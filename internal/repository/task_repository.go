package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/task-notes-api/internal/database"
	"github.com/yukikurage/task-notes-api/internal/models"
	"github.com/yukikurage/task-notes-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindOwned finds a task by id and owner
func (r *GormTaskRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(ownerID)).
		Where("id = ?", id).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListOwned lists the owner's tasks, newest first
func (r *GormTaskRepository) ListOwned(ctx context.Context, ownerID uuid.UUID, params utils.PaginationParams) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(ownerID), database.NewestFirst, database.Paginate(params)).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateOwned applies values to the matching row
func (r *GormTaskRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, values map[string]any) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Scopes(database.OwnedBy(ownerID)).
		Where("id = ?", id).
		Updates(values)
	return tx.RowsAffected, tx.Error
}

// DeleteOwned deletes the matching row
func (r *GormTaskRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(ownerID)).
		Where("id = ?", id).
		Delete(&models.Task{})
	return tx.RowsAffected, tx.Error
}
