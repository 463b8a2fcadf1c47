// Package repository provides typed access to the JSON collections kept by
// the file store.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/helppsico/mockapi/internal/models"
	"github.com/helppsico/mockapi/internal/store"
)

// Collection names as stored on disk.
const (
	Documents     = "documents"
	Sessions      = "sessions"
	Reviews       = "reviews"
	Users         = "users"
	Notifications = "notifications"
)

// All lists every collection served by the API.
var All = []string{Documents, Sessions, Reviews, Users, Notifications}

// Store is the raw persistence used by a Collection.
type Store interface {
	// Load returns the encoded collection.
	Load(ctx context.Context, collection string) ([]byte, error)
	// Save replaces the encoded collection.
	Save(ctx context.Context, collection string, data []byte) error
	// Lock acquires the collection's write lock.
	Lock(collection string) (unlock func())
}

var errNotArray = errors.New("collection is not a JSON array")

// Collection reads and writes every record of one type as a whole.
type Collection[T any] struct {
	store Store
	name  string
}

// NewCollection returns the collection called name backed by s.
func NewCollection[T any](s Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// LoadAll decodes the whole collection in file order. Content that is not a
// JSON array of T is reported as a *store.ReadError.
func (c *Collection[T]) LoadAll(ctx context.Context) ([]T, error) {
	data, err := c.store.Load(ctx, c.name)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &store.ReadError{Collection: c.name, Err: errNotArray}
	}

	items := []T{}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &store.ReadError{Collection: c.name, Err: fmt.Errorf("decode: %w", err)}
	}
	return items, nil
}

// SaveAll replaces the collection with items. It takes no lock; see Update.
func (c *Collection[T]) SaveAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return &store.WriteError{Collection: c.name, Err: fmt.Errorf("encode: %w", err)}
	}
	return c.store.Save(ctx, c.name, data)
}

// Update runs one read-modify-write cycle while holding the collection's
// write lock: it loads every record, passes them to fn and saves what fn
// returns. If fn fails nothing is written and its error is returned as is.
// Writers that bypass Update are not serialised against it.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	unlock := c.store.Lock(c.name)
	defer unlock()

	items, err := c.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := fn(items)
	if err != nil {
		return nil, err
	}

	if err := c.SaveAll(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Repositories groups the collections served by the API.
type Repositories struct {
	Documents     *Collection[models.Document]
	Sessions      *Collection[models.Session]
	Reviews       *Collection[models.Review]
	Users         *Collection[models.User]
	Notifications *Collection[models.Notification]
}

// New binds every collection to s.
func New(s Store) *Repositories {
	return &Repositories{
		Documents:     NewCollection[models.Document](s, Documents),
		Sessions:      NewCollection[models.Session](s, Sessions),
		Reviews:       NewCollection[models.Review](s, Reviews),
		Users:         NewCollection[models.User](s, Users),
		Notifications: NewCollection[models.Notification](s, Notifications),
	}
}
