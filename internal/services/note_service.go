package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/larder-io/larder/internal/cache"
	"github.com/larder-io/larder/internal/models"
)

var (
	// ErrNoteNotFound indicates the requested note does not exist.
	ErrNoteNotFound = errors.New("note service: note not found")
)

// noteResource is the cache key namespace for notes.
const noteResource = "notes"

// NoteService manages CRUD operations for notes with the same cache-aside
// protocol as ItemService.
type NoteService struct {
	db    *gorm.DB
	cache *cache.Client
}

// NewNoteService constructs a note service from its two collaborators.
func NewNoteService(db *gorm.DB, cacheClient *cache.Client) (*NoteService, error) {
	if db == nil {
		return nil, errors.New("note service: db is required")
	}
	if cacheClient == nil {
		return nil, errors.New("note service: cache client is required")
	}
	return &NoteService{db: db, cache: cacheClient}, nil
}

// CreateNoteInput captures required fields when creating a note.
type CreateNoteInput struct {
	Title   string
	Content string
}

// UpdateNoteInput describes mutable note fields. A nil pointer indicates no change.
type UpdateNoteInput struct {
	Title   *string
	Content *string
}

// List retrieves a page of notes, serving repeated reads of the same page
// from the cache.
func (s *NoteService) List(ctx context.Context, skip, limit int) ([]models.Note, error) {
	ctx = ensuredContext(ctx)
	skip, limit = normalizePagination(skip, limit)

	key := cache.ListKey(noteResource, skip, limit)

	var notes []models.Note
	if s.cache.Get(ctx, key, &notes) {
		return notes, nil
	}

	notes = make([]models.Note, 0, limit)
	if err := s.db.WithContext(ctx).
		Offset(skip).Limit(limit).
		Order("id").
		Find(&notes).Error; err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, notes, 0)
	return notes, nil
}

// Get retrieves a note by id, populating the cache on miss.
func (s *NoteService) Get(ctx context.Context, id uint) (*models.Note, error) {
	ctx = ensuredContext(ctx)

	key := cache.EntityKey(noteResource, id)

	var cached models.Note
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	var note models.Note
	if err := s.db.WithContext(ctx).First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	s.cache.Set(ctx, key, note, 0)
	return &note, nil
}

// Create persists a new note, then sweeps the list namespace.
func (s *NoteService) Create(ctx context.Context, input CreateNoteInput) (*models.Note, error) {
	ctx = ensuredContext(ctx)

	note := models.Note{
		Title:   input.Title,
		Content: input.Content,
	}

	if err := s.db.WithContext(ctx).Create(&note).Error; err != nil {
		return nil, err
	}

	s.cache.DeletePattern(ctx, cache.ListPattern(noteResource))
	return &note, nil
}

// Update applies the fields present in input to an existing note, then drops
// its entity key and sweeps the list namespace.
func (s *NoteService) Update(ctx context.Context, id uint, input UpdateNoteInput) (*models.Note, error) {
	ctx = ensuredContext(ctx)

	var note models.Note
	if err := s.db.WithContext(ctx).First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		note.Title = *input.Title
	}
	if input.Content != nil {
		note.Content = *input.Content
	}

	if err := s.db.WithContext(ctx).Save(&note).Error; err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, cache.EntityKey(noteResource, id))
	s.cache.DeletePattern(ctx, cache.ListPattern(noteResource))
	return &note, nil
}

// Delete removes a note, then drops its entity key and sweeps the list namespace.
func (s *NoteService) Delete(ctx context.Context, id uint) error {
	ctx = ensuredContext(ctx)

	var note models.Note
	if err := s.db.WithContext(ctx).First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&note).Error; err != nil {
		return err
	}

	s.cache.Delete(ctx, cache.EntityKey(noteResource, id))
	s.cache.DeletePattern(ctx, cache.ListPattern(noteResource))
	return nil
}
