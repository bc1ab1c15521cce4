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

// ItemHandler exposes item CRUD over HTTP.
type ItemHandler struct {
	svc *services.ItemService
}

// NewItemHandler wires the item service into its HTTP handler.
func NewItemHandler(svc *services.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

type itemDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func mapItem(item *models.Item) itemDTO {
	return itemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.Format(time.RFC3339),
	}
}

func itemError(err error) error {
	if errors.Is(err, services.ErrItemNotFound) {
		return apperrors.NewNotFound("Item not found")
	}
	return err
}

// List handles GET /api/items
func (h *ItemHandler) List(c *gin.Context) {
	skip := parseIntQuery(c, "skip", 0)
	limit := parseIntQuery(c, "limit", 20)

	items, err := h.svc.List(requestContext(c), skip, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	dtos := make([]itemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, mapItem(&items[i]))
	}

	response.Success(c, http.StatusOK, dtos)
}

// Get handles GET /api/items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperrors.NewNotFound("Item not found"))
		return
	}

	item, err := h.svc.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, itemError(err))
		return
	}

	response.Success(c, http.StatusOK, mapItem(item))
}

type createItemRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// Create handles POST /api/items
func (h *ItemHandler) Create(c *gin.Context) {
	var req createItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.svc.Create(requestContext(c), services.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, mapItem(item))
}

type updateItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// Update handles PATCH /api/items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperrors.NewNotFound("Item not found"))
		return
	}

	var req updateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.svc.Update(requestContext(c), id, services.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, itemError(err))
		return
	}

	response.Success(c, http.StatusOK, mapItem(item))
}

// Delete handles DELETE /api/items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperrors.NewNotFound("Item not found"))
		return
	}

	if err := h.svc.Delete(requestContext(c), id); err != nil {
		response.Error(c, itemError(err))
		return
	}

	response.NoContent(c)
}
