package service

import (
	"context"

	"github.com/helppsico/mockapi/internal/models"
)

// NotificationService passes the notifications collection through.
type NotificationService struct {
	repo Reader[models.Notification]
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(repo Reader[models.Notification]) *NotificationService {
	return &NotificationService{repo: repo}
}

// List returns every notification unchanged.
func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	return s.repo.LoadAll(ctx)
}
