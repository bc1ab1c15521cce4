package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/larder-io/larder/internal/cache"
	"github.com/larder-io/larder/pkg/response"
)

const healthProbeTimeout = 2 * time.Second

// Health returns a readiness payload probing the database and cache store.
// A cache outage degrades the report but keeps the endpoint at 200: the
// service stays correct without its cache. A database outage reports 503.
func Health(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := contextWithTimeout(c, healthProbeTimeout)
		defer cancel()

		status := "ok"
		components := gin.H{}

		if db != nil {
			components["database"] = "ok"
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				components["database"] = "down"
				status = "down"
			}
		}

		if store != nil {
			components["cache"] = "ok"
			if err := store.Ping(ctx); err != nil {
				components["cache"] = "down"
				if status == "ok" {
					status = "degraded"
				}
			}
		}

		payload := gin.H{"status": status, "components": components}
		if status == "down" {
			c.JSON(http.StatusServiceUnavailable, payload)
			return
		}

		response.Success(c, http.StatusOK, payload)
	}
}
