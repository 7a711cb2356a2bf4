package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSetsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sets.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSet(t *testing.T) {
	t.Parallel()

	const sets = `{
		"sets": [
			{"name": "Geography", "cards": [{"question": "Capital of France", "answer": "Paris"}]},
			{"name": "Arithmetic", "cards": [{"question": "2 + 2", "answer": "4"}]}
		]
	}`

	t.Run("defaults to the first set", func(t *testing.T) {
		t.Parallel()
		entry, err := loadSet(writeSetsFile(t, sets), "")
		require.NoError(t, err)
		assert.Equal(t, "Geography", entry.Name)
		assert.Len(t, entry.Cards, 1)
	})

	t.Run("picks a set by name", func(t *testing.T) {
		t.Parallel()
		entry, err := loadSet(writeSetsFile(t, sets), "Arithmetic")
		require.NoError(t, err)
		assert.Equal(t, "Arithmetic", entry.Name)
	})

	t.Run("rejects an unknown set name", func(t *testing.T) {
		t.Parallel()
		_, err := loadSet(writeSetsFile(t, sets), "History")
		assert.Error(t, err)
	})

	t.Run("rejects an empty file", func(t *testing.T) {
		t.Parallel()
		_, err := loadSet(writeSetsFile(t, `{"sets": []}`), "")
		assert.Error(t, err)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()
		_, err := loadSet(writeSetsFile(t, `{"sets": [`), "")
		assert.Error(t, err)
	})
}

func TestTypedCapture(t *testing.T) {
	t.Parallel()

	t.Run("returns the submitted line", func(t *testing.T) {
		t.Parallel()
		capture := newTypedCapture()
		capture.submit("  paris  ")
		transcript, ok := capture.Capture(context.Background())
		assert.True(t, ok)
		assert.Equal(t, "paris", transcript)
	})

	t.Run("empty line counts as no transcript", func(t *testing.T) {
		t.Parallel()
		capture := newTypedCapture()
		capture.submit("   ")
		transcript, ok := capture.Capture(context.Background())
		assert.False(t, ok)
		assert.Empty(t, transcript)
	})

	t.Run("gives up when ctx expires", func(t *testing.T) {
		t.Parallel()
		capture := newTypedCapture()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, ok := capture.Capture(ctx)
		assert.False(t, ok)
	})

	t.Run("drops submissions with no capture in flight", func(t *testing.T) {
		t.Parallel()
		capture := newTypedCapture()
		capture.submit("first")
		capture.submit("second") // dropped, buffer full
		transcript, _ := capture.Capture(context.Background())
		assert.Equal(t, "first", transcript)
	})
}
