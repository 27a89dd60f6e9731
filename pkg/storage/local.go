package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// LocalStorage keeps files under publicDir/temp and publicDir/movie,
// which the router serves at /public/*.
type LocalStorage struct {
	publicDir string
}

func NewLocalStorage(publicDir string) (*LocalStorage, error) {
	for _, dir := range []string{"temp", "movie"} {
		if err := os.MkdirAll(filepath.Join(publicDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create %s dir: %w", dir, err)
		}
	}
	return &LocalStorage{publicDir: publicDir}, nil
}

func (s *LocalStorage) tempPath(name string) string {
	return filepath.Join(s.publicDir, "temp", filepath.Base(name))
}

func (s *LocalStorage) moviePath(name string) string {
	return filepath.Join(s.publicDir, "movie", filepath.Base(name))
}

func (s *LocalStorage) SaveTemp(_ context.Context, name string, body io.Reader, _ int64, _ string) error {
	if err := ValidName(name); err != nil {
		return err
	}

	f, err := os.Create(s.tempPath(name))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	return nil
}

func (s *LocalStorage) MoveToPermanent(_ context.Context, name string) (string, error) {
	if err := ValidName(name); err != nil {
		return "", err
	}

	if err := os.Rename(s.tempPath(name), s.moviePath(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("move file: %w", err)
	}
	return MovieKey(name), nil
}

func (s *LocalStorage) RestoreTemp(_ context.Context, name string) error {
	if err := ValidName(name); err != nil {
		return err
	}

	if err := os.Rename(s.moviePath(name), s.tempPath(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("restore file: %w", err)
	}
	return nil
}

func (s *LocalStorage) PresignUpload(context.Context, string, time.Duration) (string, error) {
	return "", ErrUnsupported
}

func (s *LocalStorage) ListTemp(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.publicDir, "temp"))
	if err != nil {
		return nil, fmt.Errorf("read temp dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *LocalStorage) DeleteTemp(_ context.Context, name string) error {
	if err := ValidName(name); err != nil {
		return err
	}

	if err := os.Remove(s.tempPath(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete temp file: %w", err)
	}
	return nil
}
