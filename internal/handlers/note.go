package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-notes-api/internal/dto"
	apierrors "github.com/yukikurage/task-notes-api/internal/errors"
	"github.com/yukikurage/task-notes-api/internal/middleware"
	"github.com/yukikurage/task-notes-api/internal/services"
	"github.com/yukikurage/task-notes-api/internal/utils"
)

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	notes, err := h.noteService.ListNotes(c.Request.Context(), middleware.CurrentActor(c), params)
	if err != nil {
		apierrors.RespondWithFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteListResponse(notes, params))
}

func (h *NoteHandler) GetNote(c *gin.Context) {
	note, err := h.noteService.GetNote(c.Request.Context(), middleware.CurrentActor(c), middleware.ResourceID(c))
	if err != nil {
		apierrors.RespondWithFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note))
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	var req dto.NoteRequest
	if !bindBody(c, actor, &req) {
		return
	}

	respondCreated(c, h.noteService.CreateNote(c.Request.Context(), actor, req.Content, req.IsTechnical))
}

// UpdateNote replaces content and the technical flag
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	var req dto.NoteRequest
	if !bindBody(c, actor, &req) {
		return
	}

	respondOK(c, h.noteService.EditNote(c.Request.Context(), actor, middleware.ResourceID(c), req.Content, req.IsTechnical))
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	respondOK(c, h.noteService.DeleteNote(c.Request.Context(), middleware.CurrentActor(c), middleware.ResourceID(c)))
}
