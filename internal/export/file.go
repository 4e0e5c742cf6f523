package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hellora/rentbook/internal/domain"
	"github.com/hellora/rentbook/internal/log"
)

const outputFileMode = 0o644

// ExportError reports a failed export. The target path is left untouched when it is returned.
type ExportError struct {
	Type Type
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s to %s: %s", e.Type, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// WriteFile exports the view into a temporary file next to path and renames it into place once
// the exporter has finished, so a failure never leaves a truncated report at path.
func WriteFile(ctx context.Context, path string, exporter Exporter, view []domain.Record) (err error) {
	logger := log.FromContext(ctx).With(
		slog.String("export.type", string(exporter.Type())),
		slog.String("export.path", path),
	)

	defer func() {
		if err != nil {
			err = &ExportError{Type: exporter.Type(), Path: path, Err: err}
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting export", slog.Int("record.count", len(view)))

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := exporter.Export(ctx, tmp, view); err != nil {
		return err
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	if err := os.Chmod(tmpPath, outputFileMode); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	logger.InfoContext(ctx, "finished export")

	return nil
}
