package request

type BlockTokenRequest struct {
	Token string `json:"token" validate:"required"`
}
