package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/helppsico/mockapi/internal/models"
)

func mustTS(t *testing.T, s string) models.Timestamp {
	t.Helper()
	ts, err := models.ParseTimestamp(s)
	if err != nil {
		t.Fatalf("ParseTimestamp(%q): %v", s, err)
	}
	return ts
}

func TestDashboard_LastDocumentIsMostRecent(t *testing.T) {
	docs := &fakeRepo[models.Document]{items: []models.Document{
		{ID: "jan", Date: mustTS(t, "2024-01-01")},
		{ID: "mar", Date: mustTS(t, "2024-03-01")},
	}}
	svc := NewDashboardService(docs, &fakeRepo[models.Session]{}, nil)

	got, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}
	if got.LastDocument == nil || got.LastDocument.ID != "mar" {
		t.Errorf("LastDocument = %+v; want mar", got.LastDocument)
	}
	if got.NextSession != nil {
		t.Errorf("NextSession = %+v; want nil", got.NextSession)
	}
}

func TestDashboard_EmptyCollections(t *testing.T) {
	svc := NewDashboardService(&fakeRepo[models.Document]{}, &fakeRepo[models.Session]{}, nil)

	got, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}
	if got.LastDocument != nil || got.NextSession != nil {
		t.Errorf("Summary = %+v; want both nil", got)
	}
}

func TestDashboard_NextSessionIsFirstMatchInOrder(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions := &fakeRepo[models.Session]{items: []models.Session{
		{ID: "past", Data: mustTS(t, "2024-05-01T10:00:00Z"), Finalizada: "false"},
		{ID: "done", Data: mustTS(t, "2024-07-01T10:00:00Z"), Finalizada: "true"},
		{ID: "later", Data: mustTS(t, "2024-09-01T10:00:00Z"), Finalizada: "false"},
		{ID: "sooner", Data: mustTS(t, "2024-06-02T10:00:00Z"), Finalizada: "false"},
	}}
	svc := NewDashboardService(&fakeRepo[models.Document]{}, sessions, func() time.Time { return now })

	got, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}
	if got.NextSession == nil || got.NextSession.ID != "later" {
		t.Errorf("NextSession = %+v; want later", got.NextSession)
	}
}

func TestDashboard_ReadErrors(t *testing.T) {
	wantErr := errors.New("unreadable")

	svc := NewDashboardService(&fakeRepo[models.Document]{loadErr: wantErr}, &fakeRepo[models.Session]{}, nil)
	if _, err := svc.Summary(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("documents failure: error = %v; want %v", err, wantErr)
	}

	svc = NewDashboardService(&fakeRepo[models.Document]{}, &fakeRepo[models.Session]{loadErr: wantErr}, nil)
	if _, err := svc.Summary(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("sessions failure: error = %v; want %v", err, wantErr)
	}
}
