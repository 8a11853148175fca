// Package media keeps report attachments on the local filesystem.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"borderwatch/internal/domain"
	"borderwatch/pkg/e"
)

type Dir struct {
	root     string
	maxBytes int64
	logger   *slog.Logger
	now      func() time.Time
}

func NewDir(root string, maxBytes int64, logger *slog.Logger) (*Dir, error) {
	const op = "media.NewDir"

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Dir{root: root, maxBytes: maxBytes, logger: logger, now: time.Now}, nil
}

// Save sniffs every file before writing any of them and returns paths relative
// to the root. Only images and videos are accepted.
func (d *Dir) Save(ctx context.Context, files []domain.MediaFile) ([]string, error) {
	const op = "media.Dir.Save"

	exts := make([]string, len(files))
	for i, f := range files {
		if len(f.Data) == 0 {
			return nil, fmt.Errorf("%s: %s is empty: %w", op, f.Name, e.ErrInvalidInput)
		}
		if d.maxBytes > 0 && int64(len(f.Data)) > d.maxBytes {
			return nil, fmt.Errorf("%s: %s exceeds %d bytes: %w", op, f.Name, d.maxBytes, e.ErrInvalidInput)
		}
		mt := mimetype.Detect(f.Data)
		if !Accepted(mt.String()) {
			d.logger.Warn("media rejected", slog.String("name", f.Name), slog.String("mime", mt.String()))
			return nil, fmt.Errorf("%s: %s is %s: %w", op, f.Name, mt.String(), e.ErrUnsupportedMedia)
		}
		exts[i] = mt.Extension()
	}

	day := d.now().UTC().Format("2006/01/02")
	dir := filepath.Join(d.root, filepath.FromSlash(day))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	paths := make([]string, 0, len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			d.remove(paths)
			return nil, e.WrapError(ctx, op, err)
		}
		name := uuid.NewString() + exts[i]
		if err := os.WriteFile(filepath.Join(dir, name), f.Data, 0o644); err != nil {
			d.remove(paths)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		paths = append(paths, path.Join(day, name))
	}
	return paths, nil
}

func (d *Dir) remove(paths []string) {
	for _, p := range paths {
		if err := os.Remove(filepath.Join(d.root, filepath.FromSlash(p))); err != nil {
			d.logger.Warn("media cleanup failed", slog.String("path", p), slog.Any("error", err))
		}
	}
}

func Accepted(mime string) bool {
	return strings.HasPrefix(mime, "image/") || strings.HasPrefix(mime, "video/")
}
