package auth

import "time"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenPair is what a successful login or reissue hands back to the HTTP
// layer. AccessToken is empty for a PENDING login, which gets a short-lived
// refresh token only.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	RefreshTTL   time.Duration
}
