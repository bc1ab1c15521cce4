package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/larder-io/larder/internal/cache"
	"github.com/larder-io/larder/internal/handlers"
	"github.com/larder-io/larder/internal/middleware"
	"github.com/larder-io/larder/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers the
// resource routes under /api.
func NewRouter(db *gorm.DB, store cache.Store, cacheClient *cache.Client) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if cacheClient == nil {
		return nil, fmt.Errorf("cache client must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	// Health endpoint (public, excluded from tracing by the outer HTTP wrapper)
	registerHealthRoutes(r, db, store)

	itemSvc, err := services.NewItemService(db, cacheClient)
	if err != nil {
		return nil, err
	}
	noteSvc, err := services.NewNoteService(db, cacheClient)
	if err != nil {
		return nil, err
	}

	api := r.Group("/api")
	registerItemRoutes(api, handlers.NewItemHandler(itemSvc))
	registerNoteRoutes(api, handlers.NewNoteHandler(noteSvc))

	// Metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
