package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncedBurstRunsOnce(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.cl")
	require.NoError(t, os.WriteFile(file, []byte("class Main {};"), 0o644))

	w, err := New(file)
	require.NoError(t, err)
	defer w.Close()
	w.Debounce = 200 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	fired := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) {
			runs.Add(1)
			fired <- struct{}{}
		})
	}()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(file, []byte("class Main { x : Int; };"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("action did not run")
	}
	time.Sleep(3 * w.Debounce)
	assert.Equal(t, int32(1), runs.Load())

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestUnwatchedFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.cl")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	w, err := New(file)
	require.NoError(t, err)
	defer w.Close()
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var runs atomic.Int32
	go func() {
		time.Sleep(20 * time.Millisecond)
		os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	}()
	err = w.Run(ctx, func(context.Context) { runs.Add(1) })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, runs.Load())
}

func TestNewRejectsMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "main.cl"))
	assert.Error(t, err)
}
