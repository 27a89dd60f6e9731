package response

type TokenPairResponse struct {
	RefreshToken string `json:"refreshToken"`
	AccessToken  string `json:"accessToken"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}
