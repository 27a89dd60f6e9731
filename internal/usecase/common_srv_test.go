package usecase

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCommonUploadVideo(t *testing.T) {
	ctx := context.Background()
	store := newFakeStorage()
	svc := NewCommonService(store, zap.NewNop()).(*commonService)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	tests := []struct {
		name   string
		upload *Upload
	}{
		{"missing file", nil},
		{"too large", &Upload{FileName: "a.mp4", ContentType: VideoContentType, Size: MaxVideoSize + 1, Body: strings.NewReader("x")}},
		{"wrong type", &Upload{FileName: "a.mov", ContentType: "video/quicktime", Size: 1, Body: strings.NewReader("x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadVideo(ctx, tt.upload)
			assert.ErrorIs(t, err, ErrBadRequest)
		})
	}

	resp, err := svc.UploadVideo(ctx, &Upload{
		FileName:    "trailer.mp4",
		ContentType: VideoContentType,
		Size:        5,
		Body:        strings.NewReader("video"),
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f-]{36}_1700000000000\.mp4$`), resp.FileName)
	assert.True(t, store.temp[resp.FileName])
}

func TestCommonPresignedURL(t *testing.T) {
	ctx := context.Background()
	store := newFakeStorage()
	svc := NewCommonService(store, zap.NewNop())

	_, err := svc.PresignedURL(ctx)
	assert.ErrorIs(t, err, ErrBadRequest)

	store.presign = true
	resp, err := svc.PresignedURL(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `public/temp/[0-9a-f-]{36}\.mp4\?signed$`, resp.URL)
}
