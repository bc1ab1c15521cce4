package api

import (
	"github.com/gin-gonic/gin"

	"github.com/larder-io/larder/internal/handlers"
)

func registerItemRoutes(api *gin.RouterGroup, h *handlers.ItemHandler) {
	items := api.Group("/items")
	{
		items.GET("", h.List)
		items.POST("", h.Create)
		items.GET("/:id", h.Get)
		items.PATCH("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
	}
}
