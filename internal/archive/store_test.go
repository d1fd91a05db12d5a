package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/token"
)

func TestRecordAndReadBack(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	errs := []*diagnostics.DiagnosticError{
		{Code: diagnostics.ErrS002, File: "a.cl", Token: token.Token{Line: 3, Column: 14}, Message: "Undefined identifier x"},
		{Code: diagnostics.ErrS006, Message: "No class Main"},
	}
	started := time.Unix(1700000000, 0)
	id, err := store.Record(ctx, started, []string{"a.cl", "b.cl"}, errs)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	runs, err := store.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, 2, runs[0].Diagnostics)
	assert.Equal(t, "a.cl\nb.cl", runs[0].Files)
	assert.True(t, started.Equal(runs[0].StartedAt))

	entries, err := store.Diagnostics(ctx, id)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, `"a.cl", line 3:14, Semantic error: Undefined identifier x`, entries[0].Rendered())
	assert.Equal(t, "Semantic error: No class Main", entries[1].Rendered())
	assert.Equal(t, diagnostics.ErrS006, entries[1].Code)
}

func TestRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	base := time.Unix(1700000000, 0)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		id, err := store.Record(ctx, base.Add(time.Duration(i)*time.Second), []string{"m.cl"}, nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := store.Runs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)

	entries, err := store.Diagnostics(ctx, ids[0])
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestArchiveSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	store, err := Open(path)
	require.NoError(t, err)
	id, err := store.Record(ctx, time.Now(), []string{"m.cl"}, nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
}

func TestClosedStore(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err = store.Record(context.Background(), time.Now(), nil, nil)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = store.Runs(context.Background(), 0)
	assert.ErrorIs(t, err, ErrClosed)
}
