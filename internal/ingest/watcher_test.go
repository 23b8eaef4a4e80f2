package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPartialAndHidden(t *testing.T) {
	assert.True(t, IsHidden("/in/.DS_Store"))
	assert.False(t, IsHidden("/in/a.pdf"))
	assert.True(t, IsPartial("/in/a.pdf.crdownload"))
	assert.True(t, IsPartial("/in/~$report.docx"))
	assert.False(t, IsPartial("/in/a.pdf"))
}

func TestStartWatcher_InitialScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), nil, 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	batches, _, err := StartWatcher(ctx, WatchConfig{Dir: dir, InitialScan: true, Debounce: 50 * time.Millisecond}, nil)
	require.NoError(t, err)

	select {
	case b := <-batches:
		assert.Equal(t, []string{filepath.Join(dir, "a.pdf")}, b)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial batch")
	}
}

func TestStartWatcher_BurstBecomesOneBatch(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	batches, _, err := StartWatcher(ctx, WatchConfig{Dir: dir, Debounce: 200 * time.Millisecond}, nil)
	require.NoError(t, err)

	for _, n := range []string{"a.pdf", "b.txt", "c.part"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}

	select {
	case b := <-batches:
		assert.Equal(t, []string{filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.txt")}, b)
	case <-time.After(5 * time.Second):
		t.Fatal("no batch")
	}

	cancel()
	for range batches {
	}
}

func TestStartWatcher_MissingDir(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{Dir: filepath.Join(t.TempDir(), "nope")}, nil)
	assert.Error(t, err)
}
