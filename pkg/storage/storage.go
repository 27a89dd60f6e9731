package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

const (
	// TempPrefix holds uploads that are not attached to a movie yet.
	TempPrefix = "public/temp"
	// MoviePrefix holds files referenced by movies.
	MoviePrefix = "public/movie"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrUnsupported = errors.New("operation not supported by storage driver")
	ErrInvalidName = errors.New("invalid file name")
)

// Storage keeps uploaded video files. Names are bare file names, the
// driver decides where TempPrefix and MoviePrefix live.
type Storage interface {
	SaveTemp(ctx context.Context, name string, body io.Reader, size int64, contentType string) error
	// MoveToPermanent moves a temp file into the movie area and returns its
	// public path, e.g. "public/movie/<name>".
	MoveToPermanent(ctx context.Context, name string) (string, error)
	// RestoreTemp undoes MoveToPermanent.
	RestoreTemp(ctx context.Context, name string) error
	PresignUpload(ctx context.Context, name string, expires time.Duration) (string, error)
	ListTemp(ctx context.Context) ([]string, error)
	DeleteTemp(ctx context.Context, name string) error
}

// ValidName accepts bare file names only, so a key can never leave its prefix.
func ValidName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}

// TempKey joins without cleaning the name; callers check ValidName first.
func TempKey(name string) string {
	return TempPrefix + "/" + name
}

func MovieKey(name string) string {
	return MoviePrefix + "/" + name
}
