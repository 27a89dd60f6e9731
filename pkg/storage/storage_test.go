package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"a_1700000000000.mp4", true},
		{"clip..final.mp4", true},
		{"", false},
		{".", false},
		{"..", false},
		{"../../private/backup.mp4", false},
		{"sub/clip.mp4", false},
		{`..\clip.mp4`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidName(tt.name)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidName)
			}
		})
	}
}

func TestKeysDoNotClean(t *testing.T) {
	assert.Equal(t, "public/temp/a_1.mp4", TempKey("a_1.mp4"))
	assert.Equal(t, "public/movie/a_1.mp4", MovieKey("a_1.mp4"))
	assert.True(t, strings.HasPrefix(TempKey("../x.mp4"), TempPrefix+"/"))
	assert.True(t, strings.HasPrefix(MovieKey("../x.mp4"), MoviePrefix+"/"))
}

func TestS3RejectsInvalidNames(t *testing.T) {
	// the name check runs before any request, so a zero client is never used
	s := &S3Storage{bucket: "movies"}
	ctx := context.Background()

	_, err := s.MoveToPermanent(ctx, "../../private/backup.mp4")
	assert.ErrorIs(t, err, ErrInvalidName)

	assert.ErrorIs(t, s.RestoreTemp(ctx, "a/b.mp4"), ErrInvalidName)
	assert.ErrorIs(t, s.DeleteTemp(ctx, ".."), ErrInvalidName)
	assert.ErrorIs(t, s.SaveTemp(ctx, "../x.mp4", strings.NewReader(""), 0, "video/mp4"), ErrInvalidName)

	_, err = s.PresignUpload(ctx, "x/y.mp4", 0)
	require.ErrorIs(t, err, ErrInvalidName)
}

func TestIsMissingObject(t *testing.T) {
	assert.True(t, isMissingObject(&types.NoSuchKey{}))
	assert.True(t, isMissingObject(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.True(t, isMissingObject(&smithy.GenericAPIError{Code: "NotFound"}))
	assert.False(t, isMissingObject(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isMissingObject(assert.AnError))
}
