package service

import (
	"context"
	"fmt"

	"github.com/helppsico/mockapi/internal/models"
)

// ReviewService serves psychologist reviews.
type ReviewService struct {
	repo Repository[models.Review]
}

// NewReviewService constructs a ReviewService.
func NewReviewService(repo Repository[models.Review]) *ReviewService {
	return &ReviewService{repo: repo}
}

// ListBySubject returns the reviews of one psychologist, most recent first.
func (s *ReviewService) ListBySubject(ctx context.Context, psicologoID string) ([]models.Review, error) {
	reviews, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := []models.Review{}
	for _, r := range reviews {
		if r.PsicologoID == psicologoID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// Create validates review and stores it at the front of the collection.
// id, psicologoId, userName and a non-zero rating are required.
func (s *ReviewService) Create(ctx context.Context, review models.Review) (*models.Review, error) {
	if err := validateReview(review); err != nil {
		return nil, err
	}

	_, err := s.repo.Update(ctx, func(reviews []models.Review) ([]models.Review, error) {
		return append([]models.Review{review}, reviews...), nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes the review with the given id.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	_, err := s.repo.Update(ctx, func(reviews []models.Review) ([]models.Review, error) {
		kept, err := removeByID(reviews, id, func(r models.Review) string { return r.ID })
		if err != nil {
			return nil, fmt.Errorf("review %s: %w", id, err)
		}
		return kept, nil
	})
	return err
}

func validateReview(r models.Review) error {
	var missing []string
	if r.ID == "" {
		missing = append(missing, "id")
	}
	if r.PsicologoID == "" {
		missing = append(missing, "psicologoId")
	}
	if r.UserName == "" {
		missing = append(missing, "userName")
	}
	if r.Rating == 0 {
		missing = append(missing, "rating")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
