package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/larder-io/larder/internal/cache"
	"github.com/larder-io/larder/internal/handlers"
)

func registerHealthRoutes(r *gin.Engine, db *gorm.DB, store cache.Store) {
	r.GET("/health", handlers.Health(db, store))
}
