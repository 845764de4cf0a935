// Package repository persists notes as a single JSON array under one key of
// a storage.KeyValueStore.
//
// The collection is the unit of persistence: every write replaces the whole
// array. Two families of methods are offered:
//
//   - Load, Save, Delete, Add and Get return errors.
//   - LoadAll, SaveAll and DeleteOne never fail. Storage and encoding
//     failures are logged and reported to the ErrorHandler; LoadAll then
//     returns an empty collection.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/matrixview/internal/models"
	"github.com/mmynk/matrixview/internal/storage"
)

// DefaultKey is the storage key holding the note collection.
const DefaultKey = "matrixview_notes"

// ErrNoteNotFound is returned by Get when no note has the requested ID.
var ErrNoteNotFound = errors.New("note not found")

// ErrorHandler receives failures swallowed by the lenient methods.
// op is one of "load", "save" or "delete".
type ErrorHandler func(op string, err error)

// Option configures a Repository.
type Option func(*Repository)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(r *Repository) {
		r.key = key
	}
}

// WithErrorHandler registers h to observe swallowed failures.
func WithErrorHandler(h ErrorHandler) Option {
	return func(r *Repository) {
		r.onError = h
	}
}

// Repository reads and writes the note collection.
//
// Read-modify-write sequences (Add, Delete) are serialized within the
// process. Writers in other processes sharing the store still race with
// last-write-wins on the whole collection.
type Repository struct {
	store   storage.KeyValueStore
	key     string
	onError ErrorHandler

	mu sync.Mutex
}

// New creates a Repository over store.
func New(store storage.KeyValueStore, opts ...Option) *Repository {
	r := &Repository{
		store: store,
		key:   DefaultKey,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the persisted collection in storage order. A store that has
// never been written yields an empty collection.
func (r *Repository) Load(ctx context.Context) ([]models.Note, error) {
	raw, err := r.store.Get(ctx, r.key)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && raw == "") {
		return []models.Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}

	var notes []models.Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

// Save replaces the persisted collection with notes.
func (r *Repository) Save(ctx context.Context, notes []models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.save(ctx, notes)
}

// Delete removes the note with the given ID. A missing ID is not an error
// and leaves the collection untouched.
func (r *Repository) Delete(ctx context.Context, noteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.Load(ctx)
	if err != nil {
		return err
	}

	remaining := make([]models.Note, 0, len(notes))
	for _, note := range notes {
		if note.ID != noteID {
			remaining = append(remaining, note)
		}
	}
	if len(remaining) == len(notes) {
		return nil
	}

	return r.save(ctx, remaining)
}

// Add puts note at the front of the collection.
func (r *Repository) Add(ctx context.Context, note models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.Load(ctx)
	if err != nil {
		return err
	}

	return r.save(ctx, append([]models.Note{note}, notes...))
}

// Get returns the note with the given ID, or ErrNoteNotFound.
func (r *Repository) Get(ctx context.Context, noteID string) (models.Note, error) {
	notes, err := r.Load(ctx)
	if err != nil {
		return models.Note{}, err
	}
	for _, note := range notes {
		if note.ID == noteID {
			return note, nil
		}
	}
	return models.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, noteID)
}

// LoadAll is Load with failures degraded to an empty collection.
func (r *Repository) LoadAll(ctx context.Context) []models.Note {
	notes, err := r.Load(ctx)
	if err != nil {
		r.report("load", err)
		return []models.Note{}
	}
	return notes
}

// SaveAll is Save with failures logged instead of returned.
func (r *Repository) SaveAll(ctx context.Context, notes []models.Note) {
	if err := r.Save(ctx, notes); err != nil {
		r.report("save", err)
	}
}

// DeleteOne is Delete with failures logged instead of returned.
func (r *Repository) DeleteOne(ctx context.Context, noteID string) {
	if err := r.Delete(ctx, noteID); err != nil {
		r.report("delete", err)
	}
}

func (r *Repository) save(ctx context.Context, notes []models.Note) error {
	if notes == nil {
		notes = []models.Note{}
	}

	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	if err := r.store.Set(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("failed to write notes: %w", err)
	}
	return nil
}

func (r *Repository) report(op string, err error) {
	slog.Error("Note storage failure", "op", op, "key", r.key, "error", err)
	if r.onError != nil {
		r.onError(op, err)
	}
}
