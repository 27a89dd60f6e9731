package adaptor

import (
	"errors"
	"net/http"

	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

// multipart overhead allowed on top of the video itself
const multipartSlack = 1 << 20

type CommonHandler struct {
	service usecase.CommonService
	log     *zap.Logger
}

func NewCommonHandler(service usecase.CommonService, log *zap.Logger) *CommonHandler {
	return &CommonHandler{
		service: service,
		log:     log.With(zap.String("handler", "common")),
	}
}

// UploadVideo handles POST /common/video with multipart field "video"
func (h *CommonHandler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxVideoSize+multipartSlack)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseBadRequest(w, "video must not exceed 40 MiB", nil)
			return
		}
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("video")
	if err != nil {
		utils.ResponseBadRequest(w, "video file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.service.UploadVideo(r.Context(), &usecase.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		handleServiceError(w, h.log, err, "upload video")
		return
	}

	utils.ResponseCreated(w, "Video uploaded successfully", result)
}

// PresignedURL handles POST /common/presigned-url
func (h *CommonHandler) PresignedURL(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.PresignedURL(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "create presigned url")
		return
	}

	utils.ResponseCreated(w, "Presigned url created", result)
}
