package service

import (
	"context"
	"slices"
	"time"

	"github.com/helppsico/mockapi/internal/models"
)

// DashboardService builds the patient home screen from the documents and
// sessions collections.
type DashboardService struct {
	documents Reader[models.Document]
	sessions  Reader[models.Session]
	now       func() time.Time
}

// NewDashboardService constructs a DashboardService. A nil now uses time.Now.
func NewDashboardService(documents Reader[models.Document], sessions Reader[models.Session], now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{documents: documents, sessions: sessions, now: now}
}

// Summary returns the most recent document and the next pending session.
//
// The next session is the first one in collection order that is not
// finalised and is dated after now. It is not necessarily the earliest.
func (s *DashboardService) Summary(ctx context.Context) (*models.Dashboard, error) {
	docs, err := s.documents.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &models.Dashboard{}

	if len(docs) > 0 {
		slices.SortStableFunc(docs, func(a, b models.Document) int {
			return b.Date.Compare(a.Date.Time)
		})
		last := docs[0]
		out.LastDocument = &last
	}

	now := s.now()
	for _, sess := range sessions {
		if sess.Pending() && sess.Data.After(now) {
			next := sess
			out.NextSession = &next
			break
		}
	}

	return out, nil
}
