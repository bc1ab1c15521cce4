package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/larder-io/larder/internal/cache"
	"github.com/larder-io/larder/internal/models"
)

var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item service: item not found")
)

// itemResource is the cache key namespace for items.
const itemResource = "items"

// ItemService manages CRUD operations for items with a cache-aside layer in
// front of the backing store. Reads check the cache first and fall through to
// the database on miss; writes hit the database first, then invalidate the
// affected cache entries. Invalidation runs strictly after the database call
// succeeds, and an invalidation failure never fails the operation.
type ItemService struct {
	db    *gorm.DB
	cache *cache.Client
}

// NewItemService constructs an item service from its two collaborators.
func NewItemService(db *gorm.DB, cacheClient *cache.Client) (*ItemService, error) {
	if db == nil {
		return nil, errors.New("item service: db is required")
	}
	if cacheClient == nil {
		return nil, errors.New("item service: cache client is required")
	}
	return &ItemService{db: db, cache: cacheClient}, nil
}

// CreateItemInput captures required fields when creating an item.
type CreateItemInput struct {
	Name        string
	Description *string
}

// UpdateItemInput describes mutable item fields. A nil pointer indicates no change.
type UpdateItemInput struct {
	Name        *string
	Description *string
}

// List retrieves a page of items, serving repeated reads of the same page
// from the cache. An empty page is cached like any other result.
func (s *ItemService) List(ctx context.Context, skip, limit int) ([]models.Item, error) {
	ctx = ensuredContext(ctx)
	skip, limit = normalizePagination(skip, limit)

	key := cache.ListKey(itemResource, skip, limit)

	var items []models.Item
	if s.cache.Get(ctx, key, &items) {
		return items, nil
	}

	items = make([]models.Item, 0, limit)
	if err := s.db.WithContext(ctx).
		Offset(skip).Limit(limit).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, items, 0)
	return items, nil
}

// Get retrieves an item by id, populating the cache on miss. A missing row is
// never cached: existence is always judged by the backing store.
func (s *ItemService) Get(ctx context.Context, id uint) (*models.Item, error) {
	ctx = ensuredContext(ctx)

	key := cache.EntityKey(itemResource, id)

	var cached models.Item
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	var item models.Item
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	s.cache.Set(ctx, key, item, 0)
	return &item, nil
}

// Create persists a new item, then sweeps the list namespace: the new row may
// appear in any cached page.
func (s *ItemService) Create(ctx context.Context, input CreateItemInput) (*models.Item, error) {
	ctx = ensuredContext(ctx)

	item := models.Item{
		Name:        input.Name,
		Description: input.Description,
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}

	s.cache.DeletePattern(ctx, cache.ListPattern(itemResource))
	return &item, nil
}

// Update applies the fields present in input to an existing item, then drops
// its entity key and sweeps the list namespace.
func (s *ItemService) Update(ctx context.Context, id uint, input UpdateItemInput) (*models.Item, error) {
	ctx = ensuredContext(ctx)

	var item models.Item
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = input.Description
	}

	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, cache.EntityKey(itemResource, id))
	s.cache.DeletePattern(ctx, cache.ListPattern(itemResource))
	return &item, nil
}

// Delete removes an item, then drops its entity key and sweeps the list namespace.
func (s *ItemService) Delete(ctx context.Context, id uint) error {
	ctx = ensuredContext(ctx)

	var item models.Item
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&item).Error; err != nil {
		return err
	}

	s.cache.Delete(ctx, cache.EntityKey(itemResource, id))
	s.cache.DeletePattern(ctx, cache.ListPattern(itemResource))
	return nil
}
