package utils

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== FILE NAMES ====================

// GenerateUploadName builds "<uuid>_<unixMillis>.<ext>", keeping the extension
// of the original name (mp4 when it has none).
func GenerateUploadName(originalName string, now time.Time) string {
	extension := "mp4"

	split := strings.Split(originalName, ".")
	if len(split) > 1 && split[len(split)-1] != "" {
		extension = split[len(split)-1]
	}

	return fmt.Sprintf("%s_%d.%s", uuid.New().String(), now.UnixMilli(), extension)
}

// GeneratePresignKey is the temp object key handed out with presigned uploads.
func GeneratePresignKey() string {
	return fmt.Sprintf("%s.mp4", uuid.New().String())
}

// UploadTimestamp extracts the millisecond timestamp of an upload name.
// ok is false when the name does not have exactly one "_" separator; err is set
// when it has one but the suffix is not a number.
func UploadTimestamp(fileName string) (ts time.Time, ok bool, err error) {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	split := strings.Split(name, "_")
	if len(split) != 2 {
		return time.Time{}, false, nil
	}

	millis, err := strconv.ParseInt(split[1], 10, 64)
	if err != nil {
		return time.Time{}, true, fmt.Errorf("parse upload timestamp %q: %w", split[1], err)
	}

	return time.UnixMilli(millis), true, nil
}
