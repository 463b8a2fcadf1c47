package service

import (
	"context"
	"errors"
	"testing"

	"github.com/helppsico/mockapi/internal/models"
)

func sampleSessions() []models.Session {
	return []models.Session{
		{ID: "s1", PacienteID: "1", Finalizada: "true"},
		{ID: "s2", PacienteID: "2", Finalizada: "false"},
		{ID: "s3", PacienteID: "1", Finalizada: "false"},
		{ID: "s4", PacienteID: "3", Finalizada: "false"},
		{ID: "s5", PacienteID: "1", Finalizada: "false"},
	}
}

func TestSessionService_ListByPatientOnlyOwned(t *testing.T) {
	svc := NewSessionService(&fakeRepo[models.Session]{items: sampleSessions()}, nil)

	for _, patient := range []string{"1", "2", "3", "missing"} {
		got, err := svc.ListByPatient(context.Background(), patient)
		if err != nil {
			t.Fatalf("ListByPatient(%q) error: %v", patient, err)
		}
		if got == nil {
			t.Errorf("ListByPatient(%q) = nil; want empty slice", patient)
		}
		for _, s := range got {
			if s.PacienteID != patient {
				t.Errorf("ListByPatient(%q) returned session %s owned by %q", patient, s.ID, s.PacienteID)
			}
		}
	}

	got, _ := svc.ListByPatient(context.Background(), "1")
	want := []string{"s1", "s3", "s5"}
	if len(got) != len(want) {
		t.Fatalf("len = %d; want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("got[%d] = %s; want %s", i, got[i].ID, id)
		}
	}
}

func TestSessionService_RandomNextUsesPicker(t *testing.T) {
	picker := &fixedPicker{index: 2}
	svc := NewSessionService(&fakeRepo[models.Session]{items: sampleSessions()}, picker)

	got, err := svc.RandomNext(context.Background(), "1")
	if err != nil {
		t.Fatalf("RandomNext error: %v", err)
	}
	if picker.gotN != 3 {
		t.Errorf("picker called with n = %d; want 3", picker.gotN)
	}
	if got.ID != "s5" {
		t.Errorf("RandomNext = %s; want s5", got.ID)
	}
}

func TestSessionService_RandomNextDefaultPickerStaysInRange(t *testing.T) {
	svc := NewSessionService(&fakeRepo[models.Session]{items: sampleSessions()}, nil)

	for range 50 {
		got, err := svc.RandomNext(context.Background(), "1")
		if err != nil {
			t.Fatalf("RandomNext error: %v", err)
		}
		if got.PacienteID != "1" {
			t.Fatalf("RandomNext returned foreign session %s", got.ID)
		}
	}
}

func TestSessionService_RandomNextNone(t *testing.T) {
	svc := NewSessionService(&fakeRepo[models.Session]{items: sampleSessions()}, &fixedPicker{})

	_, err := svc.RandomNext(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
}

func TestSessionService_ReadError(t *testing.T) {
	wantErr := errors.New("read failed")
	svc := NewSessionService(&fakeRepo[models.Session]{loadErr: wantErr}, nil)

	if _, err := svc.ListByPatient(context.Background(), "1"); !errors.Is(err, wantErr) {
		t.Errorf("ListByPatient error = %v; want %v", err, wantErr)
	}
	if _, err := svc.RandomNext(context.Background(), "1"); !errors.Is(err, wantErr) {
		t.Errorf("RandomNext error = %v; want %v", err, wantErr)
	}
}
