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

// NoteService provides business logic for notes.
type NoteService struct {
	noteRepo repository.NoteRepository
	log      *logger.Logger
}

// NewNoteService creates a new NoteService.
func NewNoteService(noteRepo repository.NoteRepository, log *logger.Logger) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		log:      log.With("service", "NoteService"),
	}
}

// ListNotes returns the caller's notes, newest first.
func (s *NoteService) ListNotes(ctx context.Context, actor auth.Actor, params utils.PaginationParams) ([]models.Note, error) {
	ownerID, err := auth.RequireUser(actor)
	if err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.ListOwned(ctx, ownerID, params)
	if err != nil {
		s.log.Error("failed to list notes", "user_id", ownerID, "error", err)
		return nil, result.Wrap(result.KindPersistence, fmt.Errorf("failed to list notes: %w", err))
	}
	return notes, nil
}

// GetNote returns one of the caller's notes.
func (s *NoteService) GetNote(ctx context.Context, actor auth.Actor, noteID uuid.UUID) (*models.Note, error) {
	ownerID, err := auth.RequireUser(actor)
	if err != nil {
		return nil, err
	}

	note, err := s.noteRepo.FindOwned(ctx, noteID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, result.ErrNotFoundOrForbidden
		}
		s.log.Error("failed to find note", "user_id", ownerID, "note_id", noteID, "error", err)
		return nil, result.Wrap(result.KindPersistence, fmt.Errorf("failed to find note: %w", err))
	}
	return note, nil
}

// CreateNote stores a new note owned by the caller.
func (s *NoteService) CreateNote(ctx context.Context, actor auth.Actor, content string, isTechnical bool) result.Result {
	ownerID, err := auth.RequireUser(actor)
	if err != nil {
		return result.Fail(err)
	}

	trimmed, err := validation.ValidateNoteInput(content)
	if err != nil {
		return result.Fail(err)
	}

	note := &models.Note{
		OwnerID:     ownerID,
		Content:     trimmed,
		IsTechnical: isTechnical,
	}
	if err := s.noteRepo.Create(detach(ctx), note); err != nil {
		s.log.Error("failed to create note", "user_id", ownerID, "error", err)
		return result.Fail(result.Wrap(result.KindPersistence, err))
	}

	return result.Success(note.ID)
}

// EditNote replaces both content and the technical flag.
func (s *NoteService) EditNote(ctx context.Context, actor auth.Actor, noteID uuid.UUID, content string, isTechnical bool) result.Result {
	ownerID, err := auth.RequireUser(actor)
	if err != nil {
		return result.Fail(err)
	}

	trimmed, err := validation.ValidateNoteInput(content)
	if err != nil {
		return result.Fail(err)
	}

	// A map so that is_technical=false is written too.
	n, err := s.noteRepo.UpdateOwned(detach(ctx), noteID, ownerID, map[string]any{
		"content":      trimmed,
		"is_technical": isTechnical,
	})
	if err := s.checkAffected("edit note", ownerID, noteID, n, err); err != nil {
		return result.Fail(err)
	}

	return result.Success(noteID)
}

// DeleteNote removes a note owned by the caller.
func (s *NoteService) DeleteNote(ctx context.Context, actor auth.Actor, noteID uuid.UUID) result.Result {
	ownerID, err := auth.RequireUser(actor)
	if err != nil {
		return result.Fail(err)
	}

	n, err := s.noteRepo.DeleteOwned(detach(ctx), noteID, ownerID)
	if err := s.checkAffected("delete note", ownerID, noteID, n, err); err != nil {
		return result.Fail(err)
	}

	return result.Success(noteID)
}

func (s *NoteService) checkAffected(op string, ownerID, noteID uuid.UUID, n int64, err error) error {
	if err != nil {
		s.log.Error("failed to "+op, "user_id", ownerID, "note_id", noteID, "error", err)
		return result.Wrap(result.KindPersistence, err)
	}
	if n == 0 {
		return result.ErrNotFoundOrForbidden
	}
	return nil
}
