package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/task-notes-api/internal/models"
	"github.com/yukikurage/task-notes-api/internal/utils"
)

// NoteRequest is the body of POST /api/notes and PUT /api/notes/:id
type NoteRequest struct {
	Content     string `json:"content"`
	IsTechnical bool   `json:"is_technical"`
}

type NoteDTO struct {
	ID          uuid.UUID `json:"id"`
	Content     string    `json:"content"`
	IsTechnical bool      `json:"is_technical"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type NoteListResponse struct {
	Notes      []NoteDTO                `json:"notes"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func ToNoteDTO(note models.Note) NoteDTO {
	return NoteDTO{
		ID:          note.ID,
		Content:     note.Content,
		IsTechnical: note.IsTechnical,
		CreatedAt:   note.CreatedAt,
		UpdatedAt:   note.UpdatedAt,
	}
}

func ToNoteListResponse(notes []models.Note, params utils.PaginationParams) NoteListResponse {
	items := make([]NoteDTO, len(notes))
	for i, note := range notes {
		items[i] = ToNoteDTO(note)
	}
	return NoteListResponse{
		Notes:      items,
		Pagination: params.Response(),
	}
}
