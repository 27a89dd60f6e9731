package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"movie-catalog/internal/dto/response"
	"movie-catalog/pkg/storage"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

const (
	MaxVideoSize     = 40 << 20
	VideoContentType = "video/mp4"
	presignExpiry    = 300 * time.Second
)

// Upload is a received multipart file.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type CommonService interface {
	// UploadVideo stores the file in the temp area under a generated name.
	UploadVideo(ctx context.Context, upload *Upload) (*response.UploadResponse, error)
	PresignedURL(ctx context.Context) (*response.PresignedURLResponse, error)
}

type commonService struct {
	storage storage.Storage
	now     func() time.Time
	log     *zap.Logger
}

func NewCommonService(storage storage.Storage, log *zap.Logger) CommonService {
	return &commonService{
		storage: storage,
		now:     time.Now,
		log:     log.With(zap.String("service", "common")),
	}
}

func (s *commonService) UploadVideo(ctx context.Context, upload *Upload) (*response.UploadResponse, error) {
	if upload == nil || upload.Body == nil {
		return nil, badRequest("video file is required")
	}
	if upload.Size > MaxVideoSize {
		return nil, badRequest("video must not exceed %d MiB", MaxVideoSize>>20)
	}
	if upload.ContentType != VideoContentType {
		return nil, badRequest("only %s uploads are supported", VideoContentType)
	}

	name := utils.GenerateUploadName(upload.FileName, s.now())
	if err := s.storage.SaveTemp(ctx, name, upload.Body, upload.Size, upload.ContentType); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	s.log.Info("Video uploaded",
		zap.String("file_name", name),
		zap.String("original_name", upload.FileName),
		zap.Int64("size", upload.Size),
	)

	return &response.UploadResponse{FileName: name}, nil
}

func (s *commonService) PresignedURL(ctx context.Context) (*response.PresignedURLResponse, error) {
	url, err := s.storage.PresignUpload(ctx, utils.GeneratePresignKey(), presignExpiry)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupported) {
			return nil, badRequest("presigned uploads require s3 storage")
		}
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &response.PresignedURLResponse{URL: url}, nil
}
