package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// JSONLExporter appends one JSON object per line to a file.
type JSONLExporter struct {
	mu   sync.Mutex
	path string
}

func NewJSONLExporter(path string) (*JSONLExporter, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create export directory: %w", err)
		}
	}
	return &JSONLExporter{path: path}, nil
}

func (e *JSONLExporter) Export(ctx context.Context, rec Record) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal export record: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	f, err := os.OpenFile(e.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append export record: %w", err)
	}

	slog.InfoContext(ctx, "Transaction exported",
		"kind", rec.Kind,
		"id", rec.ID,
		"path", e.path)
	return nil
}
