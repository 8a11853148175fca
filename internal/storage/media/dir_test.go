package media

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"borderwatch/internal/domain"
	"borderwatch/pkg/e"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func newTestDir(t *testing.T, maxBytes int64) *Dir {
	t.Helper()
	d, err := NewDir(t.TempDir(), maxBytes, slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil)))
	require.NoError(t, err)
	d.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	return d
}

func TestDir_SaveImage(t *testing.T) {
	d := newTestDir(t, 1024)

	paths, err := d.Save(context.Background(), []domain.MediaFile{{Name: "fence.png", Data: pngHeader}})
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.True(t, strings.HasPrefix(paths[0], "2025/03/01/"))
	assert.True(t, strings.HasSuffix(paths[0], ".png"))

	data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(paths[0])))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestDir_RejectsBeforeWriting(t *testing.T) {
	d := newTestDir(t, 1024)

	_, err := d.Save(context.Background(), []domain.MediaFile{
		{Name: "ok.png", Data: pngHeader},
		{Name: "script.sh", Data: []byte("#!/bin/sh\necho hi\n")},
	})
	require.ErrorIs(t, err, e.ErrUnsupportedMedia)

	entries, err := os.ReadDir(d.root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDir_SizeAndEmpty(t *testing.T) {
	d := newTestDir(t, 8)

	_, err := d.Save(context.Background(), []domain.MediaFile{{Name: "big.png", Data: pngHeader}})
	assert.ErrorIs(t, err, e.ErrInvalidInput)

	_, err = d.Save(context.Background(), []domain.MediaFile{{Name: "empty.png"}})
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}

func TestAccepted(t *testing.T) {
	assert.True(t, Accepted("image/jpeg"))
	assert.True(t, Accepted("video/mp4"))
	assert.False(t, Accepted("application/pdf"))
	assert.False(t, Accepted("text/plain; charset=utf-8"))
}
