package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/helppsico/mockapi/internal/models"
)

// DocumentService serves the documents collection.
type DocumentService struct {
	repo Repository[models.Document]
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(repo Repository[models.Document]) *DocumentService {
	return &DocumentService{repo: repo}
}

// List returns every document in collection order.
func (s *DocumentService) List(ctx context.Context) ([]models.Document, error) {
	return s.repo.LoadAll(ctx)
}

// ToggleFavorite flips IsFavorite on the document with the given id,
// persists the collection and returns the updated document.
func (s *DocumentService) ToggleFavorite(ctx context.Context, id string) (*models.Document, error) {
	var updated models.Document
	_, err := s.repo.Update(ctx, func(docs []models.Document) ([]models.Document, error) {
		i := slices.IndexFunc(docs, func(d models.Document) bool { return d.ID == id })
		if i == -1 {
			return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		docs[i].IsFavorite = !docs[i].IsFavorite
		updated = docs[i]
		return docs, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the document with the given id.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	_, err := s.repo.Update(ctx, func(docs []models.Document) ([]models.Document, error) {
		kept, err := removeByID(docs, id, func(d models.Document) string { return d.ID })
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", id, err)
		}
		return kept, nil
	})
	return err
}
