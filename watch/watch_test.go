package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/layout_designer/watch"
)

func TestRun_reports_change(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := filepath.Join(dir, "layout.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(pa, []byte("v0"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 16)
	done := make(chan error, 1)

	go func() {
		done <- watch.Run(
			ctx,
			watch.Config{Paths: []string{pa}, Debounce: 10 * time.Millisecond},
			func(_ context.Context, path string) error {
				changed <- path
				return nil
			},
		)
	}()

	require.Eventually(t, func() bool {
		assert.NoError(t, os.WriteFile(other, []byte("x"), 0o600))
		assert.NoError(t, os.WriteFile(pa, []byte("v1"), 0o600))

		select {
		case got := <-changed:
			assert.Equal(t, pa, got)
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRun_callback_error_stops(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := filepath.Join(dir, "props.json")
	require.NoError(t, os.WriteFile(pa, []byte("{}"), 0o600))

	done := make(chan error, 1)

	go func() {
		done <- watch.Run(
			context.Background(),
			watch.Config{Paths: []string{pa}, Debounce: time.Millisecond},
			func(context.Context, string) error {
				return assert.AnError
			},
		)
	}()

	require.Eventually(t, func() bool {
		assert.NoError(t, os.WriteFile(pa, []byte(`{"A":1}`), 0o600))

		select {
		case err := <-done:
			assert.ErrorIs(t, err, assert.AnError)
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 20*time.Millisecond)
}

func TestRun_no_paths(t *testing.T) {
	t.Parallel()

	err := watch.Run(
		context.Background(),
		watch.Config{},
		func(context.Context, string) error { return nil },
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files to watch")
}

func TestRun_missing_directory(t *testing.T) {
	t.Parallel()

	err := watch.Run(
		context.Background(),
		watch.Config{Paths: []string{"/nonexistent/dir/layout.txt"}},
		func(context.Context, string) error { return nil },
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching files")
}
