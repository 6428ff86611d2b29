package postlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
)

// File keeps the daily log in a small JSON file. It is read and written
// without locking and assumes one run at a time.
type File struct {
	path   string
	logger logger.Logger
}

func NewFile(path string, log logger.Logger) *File {
	return &File{
		path:   path,
		logger: log.WithComponent("PostLogFile"),
	}
}

var _ Repository = (*File)(nil)

func (f *File) Get(_ context.Context, date string) (domain.DailyPostLog, error) {
	stored, err := f.read()
	if err != nil {
		return domain.DailyPostLog{}, err
	}
	return stored.ForDate(date), nil
}

func (f *File) Increment(_ context.Context, date string, limit int) (domain.DailyPostLog, error) {
	stored, err := f.read()
	if err != nil {
		return domain.DailyPostLog{}, err
	}

	current := stored.ForDate(date)
	if current.CapReached(limit) {
		return current, ErrCapReached
	}
	current.Count++

	if err := f.write(current); err != nil {
		return current, err
	}
	return current, nil
}

func (f *File) read() (domain.DailyPostLog, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.DailyPostLog{}, nil
	}
	if err != nil {
		return domain.DailyPostLog{}, fmt.Errorf("read post log: %w", err)
	}

	var stored domain.DailyPostLog
	if err := json.Unmarshal(data, &stored); err != nil {
		f.logger.Warn("Post log is not valid JSON, starting from zero", "path", f.path, "error", err)
		return domain.DailyPostLog{}, nil
	}
	return stored, nil
}

func (f *File) write(entry domain.DailyPostLog) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create post log dir: %w", err)
		}
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write post log: %w", err)
	}
	return nil
}
