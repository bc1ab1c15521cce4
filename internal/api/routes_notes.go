package api

import (
	"github.com/gin-gonic/gin"

	"github.com/larder-io/larder/internal/handlers"
)

func registerNoteRoutes(api *gin.RouterGroup, h *handlers.NoteHandler) {
	notes := api.Group("/notes")
	{
		notes.GET("", h.List)
		notes.POST("", h.Create)
		notes.GET("/:id", h.Get)
		notes.PATCH("/:id", h.Update)
		notes.DELETE("/:id", h.Delete)
	}
}
