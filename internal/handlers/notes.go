package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/larder-io/larder/internal/models"
	"github.com/larder-io/larder/internal/services"
	apperrors "github.com/larder-io/larder/pkg/errors"
	"github.com/larder-io/larder/pkg/response"
)

// NoteHandler exposes note CRUD over HTTP.
type NoteHandler struct {
	svc *services.NoteService
}

// NewNoteHandler wires the note service into its HTTP handler.
func NewNoteHandler(svc *services.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

type noteDTO struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func mapNote(note *models.Note) noteDTO {
	return noteDTO{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt.Format(time.RFC3339),
		UpdatedAt: note.UpdatedAt.Format(time.RFC3339),
	}
}

func noteError(err error) error {
	if errors.Is(err, services.ErrNoteNotFound) {
		return apperrors.NewNotFound("Note not found")
	}
	return err
}

// List handles GET /api/notes
func (h *NoteHandler) List(c *gin.Context) {
	skip := parseIntQuery(c, "skip", 0)
	limit := parseIntQuery(c, "limit", 20)

	notes, err := h.svc.List(requestContext(c), skip, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	dtos := make([]noteDTO, 0, len(notes))
	for i := range notes {
		dtos = append(dtos, mapNote(&notes[i]))
	}

	response.Success(c, http.StatusOK, dtos)
}

// Get handles GET /api/notes/:id
func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperrors.NewNotFound("Note not found"))
		return
	}

	note, err := h.svc.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, noteError(err))
		return
	}

	response.Success(c, http.StatusOK, mapNote(note))
}

type createNoteRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

// Create handles POST /api/notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req createNoteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	note, err := h.svc.Create(requestContext(c), services.CreateNoteInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, mapNote(note))
}

type updateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

// Update handles PATCH /api/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperrors.NewNotFound("Note not found"))
		return
	}

	var req updateNoteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	note, err := h.svc.Update(requestContext(c), id, services.UpdateNoteInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		response.Error(c, noteError(err))
		return
	}

	response.Success(c, http.StatusOK, mapNote(note))
}

// Delete handles DELETE /api/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperrors.NewNotFound("Note not found"))
		return
	}

	if err := h.svc.Delete(requestContext(c), id); err != nil {
		response.Error(c, noteError(err))
		return
	}

	response.NoContent(c)
}
