// Package main writes sample collection files so the mock API can be run
// without hand-made data. Existing files are left alone unless -force is set.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helppsico/mockapi/internal/logger"
	"github.com/helppsico/mockapi/internal/models"
	"github.com/helppsico/mockapi/internal/repository"
	"github.com/helppsico/mockapi/internal/store"
)

func main() {
	log := logger.New()
	if err := log.Init("info"); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()

	if err := run(context.Background(), os.Args[1:], log.Log); err != nil {
		log.Log.Fatal("seed failed", zap.Error(err))
	}
}

func run(ctx context.Context, args []string, log *zap.Logger) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	dir := fs.String("data", "./data", "directory for the collection files")
	force := fs.Bool("force", false, "overwrite existing collection files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	s := store.NewFileStore(*dir, log, nil)
	written, err := seed(ctx, s, *force, newSample(time.Now(), uuid.NewString))
	if err != nil {
		return err
	}
	log.Info("seed finished", zap.String("data_dir", *dir), zap.Strings("written", written))
	return nil
}

// seed writes every collection of data whose file is absent, or all of them
// when force is set. It returns the names of the collections written.
func seed(ctx context.Context, s *store.FileStore, force bool, data *sample) ([]string, error) {
	repos := repository.New(s)
	writers := []struct {
		name  string
		write func() error
	}{
		{repository.Users, func() error { return repos.Users.SaveAll(ctx, data.users) }},
		{repository.Documents, func() error { return repos.Documents.SaveAll(ctx, data.documents) }},
		{repository.Sessions, func() error { return repos.Sessions.SaveAll(ctx, data.sessions) }},
		{repository.Reviews, func() error { return repos.Reviews.SaveAll(ctx, data.reviews) }},
		{repository.Notifications, func() error { return repos.Notifications.SaveAll(ctx, data.notifications) }},
	}

	var written []string
	for _, w := range writers {
		exists, err := s.Exists(w.name)
		if err != nil {
			return written, err
		}
		if exists && !force {
			continue
		}
		if err := w.write(); err != nil {
			return written, err
		}
		written = append(written, w.name)
	}
	return written, nil
}

type sample struct {
	users         []models.User
	documents     []models.Document
	sessions      []models.Session
	reviews       []models.Review
	notifications []models.Notification
}

// newSample builds a small consistent data set around now. Sessions belong
// to the first user; one is in the past and two are upcoming.
func newSample(now time.Time, newID func() string) *sample {
	patient := newID()
	other := newID()
	psychologist := newID()
	day := 24 * time.Hour

	return &sample{
		users: []models.User{
			{ID: patient, Email: "paciente@helppsico.com", Password: "123456"},
			{ID: other, Email: "maria@helppsico.com", Password: "senha123"},
		},
		documents: []models.Document{
			{
				ID:   newID(),
				Date: models.NewTimestamp(now.Add(-30 * day).Truncate(time.Second)),
				Extra: models.Extra{
					"title": raw("Termo de consentimento"),
					"type":  raw("pdf"),
				},
			},
			{
				ID:         newID(),
				Date:       models.NewTimestamp(now.Add(-2 * day).Truncate(time.Second)),
				IsFavorite: true,
				Extra: models.Extra{
					"title": raw("Relatório de acompanhamento"),
					"type":  raw("pdf"),
				},
			},
		},
		sessions: []models.Session{
			{
				ID:         newID(),
				PacienteID: patient,
				Data:       models.NewTimestamp(now.Add(-7 * day).Truncate(time.Minute)),
				Finalizada: "true",
				Extra:      models.Extra{"psicologoId": raw(psychologist)},
			},
			{
				ID:         newID(),
				PacienteID: patient,
				Data:       models.NewTimestamp(now.Add(3 * day).Truncate(time.Minute)),
				Finalizada: "false",
				Extra:      models.Extra{"psicologoId": raw(psychologist)},
			},
			{
				ID:         newID(),
				PacienteID: other,
				Data:       models.NewTimestamp(now.Add(5 * day).Truncate(time.Minute)),
				Finalizada: "false",
				Extra:      models.Extra{"psicologoId": raw(psychologist)},
			},
		},
		reviews: []models.Review{
			{
				ID:          newID(),
				PsicologoID: psychologist,
				UserName:    "maria",
				Rating:      5,
				Extra:       models.Extra{"comment": raw("Muito atenciosa.")},
			},
		},
		notifications: []models.Notification{
			raw(map[string]string{"id": newID(), "title": "Sessão confirmada", "type": "session"}),
			raw(map[string]string{"id": newID(), "title": "Novo documento disponível", "type": "document"}),
		},
	}
}

func raw(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
