package auth

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"community/internal/pkg/response"
	"community/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

const (
	ReissuePath = "/reissue"
	LogoutPath  = "/logout"
)

// CookieConfig controls the refresh cookie attributes; values come from the
// auth config at startup.
type CookieConfig struct {
	Secure   bool
	SameSite http.SameSite
}

// Handler manages all HTTP interactions for authentication.
type Handler struct {
	service *Service
	cookies CookieConfig
}

func NewHandler(service *Service, cookies CookieConfig) *Handler {
	return &Handler{service: service, cookies: cookies}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/login", h.Login)
	r.POST(ReissuePath, h.Reissue)
	r.POST(LogoutPath, h.Logout)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			// One generic message for bad password and unknown account.
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
		case errors.Is(err, ErrAccountInactive):
			response.Error(c, http.StatusForbidden, "ACCOUNT_INACTIVE", "This account has been deactivated")
		case errors.Is(err, ErrUnknownAccountStatus):
			response.Error(c, http.StatusForbidden, "UNKNOWN_ACCOUNT_STATUS", "This account cannot log in")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		}
		return
	}

	if result.Tokens.AccessToken == "" {
		// PENDING: only a short-lived refresh token, scoped to the reissue
		// path so the client can finish activation.
		h.setRefreshCookie(c, result.Tokens.RefreshToken, result.Tokens.RefreshTTL, ReissuePath)
		response.Error(c, http.StatusLocked, "ACCOUNT_PENDING", "Account activation is not complete")
		return
	}

	h.writeTokenPair(c, result.Tokens)
	response.Success(c, http.StatusOK, gin.H{"principal": result.Principal})
}

func (h *Handler) Reissue(c *gin.Context) {
	pair, err := h.service.Reissue(c.Request.Context(), rawRefreshCookie(c))
	if err != nil {
		h.writeRefreshError(c, err, "Token reissue failed")
		return
	}

	h.writeTokenPair(c, *pair)
	response.Success(c, http.StatusOK, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), rawRefreshCookie(c)); err != nil {
		h.writeRefreshError(c, err, "Logout failed")
		return
	}

	// Drop any principal attached by the guard and expire the cookie.
	c.Set("principal", nil)
	h.expireRefreshCookie(c)
	response.Success(c, http.StatusOK, nil)
}

func (h *Handler) writeRefreshError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMissingRefreshToken):
		response.Error(c, http.StatusBadRequest, "MISSING_REFRESH_TOKEN", "Refresh token cookie is missing")
	case errors.Is(err, ErrRefreshExpired):
		response.Error(c, http.StatusUnauthorized, "REFRESH_EXPIRED", "Refresh token has expired")
	case errors.Is(err, ErrWrongTokenCategory):
		response.Error(c, http.StatusUnauthorized, "WRONG_TOKEN_CATEGORY", "Not a refresh token")
	case errors.Is(err, ErrInvalidRefreshToken):
		response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Refresh token is not valid")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

// writeTokenPair sets the access token header and the refresh cookie on both
// paths that need to read it.
func (h *Handler) writeTokenPair(c *gin.Context, pair TokenPair) {
	c.Header(token.HeaderAuthorization, token.BearerPrefix+pair.AccessToken)
	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshTTL, ReissuePath)
	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshTTL, LogoutPath)
}

func (h *Handler) setRefreshCookie(c *gin.Context, refresh string, ttl time.Duration, path string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     token.RefreshCookieName,
		Value:    url.QueryEscape(token.BearerPrefix + refresh),
		Path:     path,
		MaxAge:   int(ttl.Seconds()),
		Secure:   h.cookies.Secure,
		HttpOnly: true,
		SameSite: h.cookies.SameSite,
	})
}

func (h *Handler) expireRefreshCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     token.RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // serialized as Max-Age=0
		Secure:   h.cookies.Secure,
		HttpOnly: true,
		SameSite: h.cookies.SameSite,
	})
}

// rawRefreshCookie returns the cookie value without unescaping; the service
// owns the transport decoding.
func rawRefreshCookie(c *gin.Context) string {
	cookie, err := c.Request.Cookie(token.RefreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
