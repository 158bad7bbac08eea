package dto

// LoginRequest is the credential pair posted to /login.
type LoginRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse mirrors the OAuth2 bearer shape clients expect, except the
// access token is the opaque user id rather than a signed token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
	UserID      string `json:"user_id"`
}
