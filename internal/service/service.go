// Package service implements the API's resource operations and derived
// views on top of whole-collection repositories.
package service

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no record carries the requested id.
	ErrNotFound = errors.New("not found")
	// ErrBadRequest matches every *ValidationError.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized is returned by Login when the credentials do not match.
	ErrUnauthorized = errors.New("invalid email or password")
)

// ValidationError lists the required fields absent from an input.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// Is makes errors.Is(err, ErrBadRequest) hold.
func (e *ValidationError) Is(target error) bool { return target == ErrBadRequest }

// Reader loads a whole collection.
type Reader[T any] interface {
	LoadAll(ctx context.Context) ([]T, error)
}

// Repository loads a whole collection and rewrites it in one
// read-modify-write cycle.
type Repository[T any] interface {
	Reader[T]
	Update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error)
}

// removeByID drops the record whose id matches. It reports ErrNotFound when
// the collection length is unchanged.
func removeByID[T any](items []T, id string, idOf func(T) string) ([]T, error) {
	kept := make([]T, 0, len(items))
	for _, it := range items {
		if idOf(it) != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil, ErrNotFound
	}
	return kept, nil
}
