package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/helppsico/mockapi/internal/models"
)

// Picker chooses an index in [0, n).
type Picker interface {
	IntN(n int) int
}

type randPicker struct{}

func (randPicker) IntN(n int) int { return rand.IntN(n) }

// SessionService serves the sessions owned by a patient.
type SessionService struct {
	repo   Reader[models.Session]
	picker Picker
}

// NewSessionService constructs a SessionService. A nil picker selects
// uniformly with math/rand/v2.
func NewSessionService(repo Reader[models.Session], picker Picker) *SessionService {
	if picker == nil {
		picker = randPicker{}
	}
	return &SessionService{repo: repo, picker: picker}
}

// ListByPatient returns the sessions whose PacienteID equals patientID, in
// collection order.
func (s *SessionService) ListByPatient(ctx context.Context, patientID string) ([]models.Session, error) {
	sessions, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	owned := []models.Session{}
	for _, sess := range sessions {
		if sess.PacienteID == patientID {
			owned = append(owned, sess)
		}
	}
	return owned, nil
}

// RandomNext returns one of the patient's sessions chosen by the picker.
// Repeated calls over the same data may return different sessions.
func (s *SessionService) RandomNext(ctx context.Context, patientID string) (*models.Session, error) {
	owned, err := s.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return nil, fmt.Errorf("sessions for patient %s: %w", patientID, ErrNotFound)
	}

	picked := owned[s.picker.IntN(len(owned))]
	return &picked, nil
}
