package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/task-notes-api/internal/database"
	"github.com/yukikurage/task-notes-api/internal/models"
	"github.com/yukikurage/task-notes-api/internal/utils"
	"gorm.io/gorm"
)

// GormNoteRepository is a GORM implementation of NoteRepository
type GormNoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &GormNoteRepository{db: db}
}

func (r *GormNoteRepository) Create(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *GormNoteRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*models.Note, error) {
	var note models.Note
	if err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(ownerID)).
		Where("id = ?", id).
		First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *GormNoteRepository) ListOwned(ctx context.Context, ownerID uuid.UUID, params utils.PaginationParams) ([]models.Note, error) {
	notes := []models.Note{}
	if err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(ownerID), database.NewestFirst, database.Paginate(params)).
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *GormNoteRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, values map[string]any) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Note{}).
		Scopes(database.OwnedBy(ownerID)).
		Where("id = ?", id).
		Updates(values)
	return tx.RowsAffected, tx.Error
}

func (r *GormNoteRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(ownerID)).
		Where("id = ?", id).
		Delete(&models.Note{})
	return tx.RowsAffected, tx.Error
}
