package dto

// AdminTokenDTO is returned by the ops CLI when minting admin credentials
type AdminTokenDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// AdminRefreshTokenRequest exchanges a refresh token for a new pair
type AdminRefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
