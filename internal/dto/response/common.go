package response

type UploadResponse struct {
	FileName string `json:"fileName"`
}

type PresignedURLResponse struct {
	URL string `json:"url"`
}
