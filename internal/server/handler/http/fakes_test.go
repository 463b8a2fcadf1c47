package http

import (
	"context"

	"github.com/helppsico/mockapi/internal/models"
	"github.com/helppsico/mockapi/internal/service"
)

type fakeDocuments struct {
	ListFunc           func(ctx context.Context) ([]models.Document, error)
	ToggleFavoriteFunc func(ctx context.Context, id string) (*models.Document, error)
	DeleteFunc         func(ctx context.Context, id string) error
}

func (f *fakeDocuments) List(ctx context.Context) ([]models.Document, error) {
	return f.ListFunc(ctx)
}

func (f *fakeDocuments) ToggleFavorite(ctx context.Context, id string) (*models.Document, error) {
	return f.ToggleFavoriteFunc(ctx, id)
}

func (f *fakeDocuments) Delete(ctx context.Context, id string) error {
	return f.DeleteFunc(ctx, id)
}

type fakeSessions struct {
	ListByPatientFunc func(ctx context.Context, patientID string) ([]models.Session, error)
	RandomNextFunc    func(ctx context.Context, patientID string) (*models.Session, error)
}

func (f *fakeSessions) ListByPatient(ctx context.Context, patientID string) ([]models.Session, error) {
	return f.ListByPatientFunc(ctx, patientID)
}

func (f *fakeSessions) RandomNext(ctx context.Context, patientID string) (*models.Session, error) {
	return f.RandomNextFunc(ctx, patientID)
}

type fakeReviews struct {
	ListBySubjectFunc func(ctx context.Context, psicologoID string) ([]models.Review, error)
	CreateFunc        func(ctx context.Context, review models.Review) (*models.Review, error)
	DeleteFunc        func(ctx context.Context, id string) error
}

func (f *fakeReviews) ListBySubject(ctx context.Context, psicologoID string) ([]models.Review, error) {
	return f.ListBySubjectFunc(ctx, psicologoID)
}

func (f *fakeReviews) Create(ctx context.Context, review models.Review) (*models.Review, error) {
	return f.CreateFunc(ctx, review)
}

func (f *fakeReviews) Delete(ctx context.Context, id string) error {
	return f.DeleteFunc(ctx, id)
}

type fakeAuth struct {
	LoginFunc func(ctx context.Context, email, password string) (*service.LoginResult, error)
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	return f.LoginFunc(ctx, email, password)
}

type fakeDashboard struct {
	summary *models.Dashboard
	err     error
}

func (f *fakeDashboard) Summary(ctx context.Context) (*models.Dashboard, error) {
	return f.summary, f.err
}

type fakeNotifications struct {
	items []models.Notification
	err   error
}

func (f *fakeNotifications) List(ctx context.Context) ([]models.Notification, error) {
	return f.items, f.err
}

// fakeVerifier accepts exactly one token.
type fakeVerifier struct {
	token  string
	claims *models.Claims
}

func (f *fakeVerifier) Verify(token string) (*models.Claims, error) {
	if token != f.token {
		return nil, service.ErrUnauthorized
	}
	return f.claims, nil
}
