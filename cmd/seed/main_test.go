package main

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/helppsico/mockapi/internal/repository"
	"github.com/helppsico/mockapi/internal/store"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestSeed_WritesMissingCollections(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := store.NewFileStore(dir, zap.NewNop(), nil)
	require.NoError(t, os.WriteFile(s.Path(repository.Users), []byte(`[{"id":"keep","email":"k@x","password":"p"}]`), 0o644))

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	written, err := seed(ctx, s, false, newSample(now, sequentialIDs()))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		repository.Documents, repository.Sessions, repository.Reviews, repository.Notifications,
	}, written)

	repos := repository.New(s)
	users, err := repos.Users.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "keep", users[0].ID)

	sessions, err := repos.Sessions.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "id-1", sessions[0].PacienteID)
	assert.True(t, sessions[1].Pending())
	assert.True(t, sessions[1].Data.After(now))

	docs, err := repos.Documents.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.JSONEq(t, `"pdf"`, string(docs[0].Extra["type"]))
}

func TestSeed_Force(t *testing.T) {
	ctx := context.Background()
	s := store.NewFileStore(t.TempDir(), nil, nil)
	data := newSample(time.Now(), sequentialIDs())

	written, err := seed(ctx, s, false, data)
	require.NoError(t, err)
	assert.Len(t, written, len(repository.All))

	written, err = seed(ctx, s, false, data)
	require.NoError(t, err)
	assert.Empty(t, written)

	written, err = seed(ctx, s, true, data)
	require.NoError(t, err)
	assert.Len(t, written, len(repository.All))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(context.Background(), []string{"-data", dir}, zap.NewNop()))

	for _, name := range repository.All {
		_, err := os.Stat(store.NewFileStore(dir, nil, nil).Path(name))
		assert.NoError(t, err, name)
	}

	assert.Error(t, run(context.Background(), []string{"-bogus"}, zap.NewNop()))
}
