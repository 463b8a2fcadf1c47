package service

import (
	"context"
	"slices"
)

// fakeRepo keeps a collection in memory and records every save.
type fakeRepo[T any] struct {
	items   []T
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeRepo[T]) LoadAll(ctx context.Context) ([]T, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return slices.Clone(f.items), nil
}

func (f *fakeRepo[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	items, err := f.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	updated, err := fn(items)
	if err != nil {
		return nil, err
	}
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.items = updated
	f.saves++
	return updated, nil
}

type fixedPicker struct {
	index int
	gotN  int
}

func (p *fixedPicker) IntN(n int) int {
	p.gotN = n
	return p.index
}
