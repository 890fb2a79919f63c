package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mkobayashi/ai-daily/internal/report"
)

// FilePublisher writes the rendered markdown to a path. An empty path
// falls back to a dated file in the working directory.
type FilePublisher struct {
	path string
}

func NewFilePublisher(path string) *FilePublisher {
	return &FilePublisher{path: path}
}

func (p *FilePublisher) Publish(_ context.Context, digest *report.Digest) error {
	path := p.path
	if path == "" {
		path = fmt.Sprintf("./ai-daily-%s.md", digest.Date.Format("20060102"))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("file: failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(digest.Markdown), 0o644); err != nil {
		return fmt.Errorf("file: failed to write %s: %w", path, err)
	}

	slog.Info("report written", "path", path)
	return nil
}
