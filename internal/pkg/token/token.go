package token

import (
	"errors"
	"strings"
	"time"

	"community/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	CategoryAccess  = "access"
	CategoryRefresh = "refresh"

	HeaderAuthorization = "Authorization"
	RefreshCookieName   = "X-Refresh-Token"
	BearerPrefix        = "Bearer "
)

var (
	// ErrInvalidToken covers malformed input, a bad signature and an
	// unsupported algorithm. ErrTokenExpired is a well-formed, correctly
	// signed token past its exp claim. Callers react differently to the
	// two, so Verify never collapses them.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims carried by every issued token.
type Claims struct {
	Category  string        `json:"category"`
	SubjectID uuid.UUID     `json:"id"`
	Role      domain.Role   `json:"role"`
	Status    domain.Status `json:"status"`
	jwt.RegisteredClaims
}

// Codec issues and verifies HS256-signed tokens. It holds the shared secret
// and the issuer name; both are fixed at construction and never change.
type Codec struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewCodec(secret []byte, issuer string) *Codec {
	return &Codec{
		secret: secret,
		issuer: issuer,
		now:    time.Now,
	}
}

// Issue signs a token of the given category with expiry now+ttl.
func (c *Codec) Issue(category string, subjectID uuid.UUID, role domain.Role, status domain.Status, ttl time.Duration) (string, error) {
	now := c.now().UTC()
	claims := Claims{
		Category:  category,
		SubjectID: subjectID,
		Role:      role,
		Status:    status,
		RegisteredClaims: jwt.RegisteredClaims{
			// A fresh jti per issuance keeps every token string distinct even
			// when two are minted within the same second.
			ID:        uuid.NewString(),
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Verify checks signature and expiry in one pass and returns the claims.
// An expired token fails with ErrTokenExpired; every other failure is
// ErrInvalidToken.
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// IsExpired reports whether the token is valid but past its expiry.
func (c *Codec) IsExpired(tokenStr string) bool {
	_, err := c.Verify(tokenStr)
	return errors.Is(err, ErrTokenExpired)
}

func (c *Codec) Category(tokenStr string) (string, error) {
	claims, err := c.Verify(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Category, nil
}

func (c *Codec) SubjectID(tokenStr string) (uuid.UUID, error) {
	claims, err := c.Verify(tokenStr)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.SubjectID, nil
}

func (c *Codec) Role(tokenStr string) (domain.Role, error) {
	claims, err := c.Verify(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

func (c *Codec) Status(tokenStr string) (domain.Status, error) {
	claims, err := c.Verify(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Status, nil
}

// Principal rebuilds the authenticated subject from claims alone.
func (cl *Claims) Principal() domain.Principal {
	return domain.Principal{SubjectID: cl.SubjectID, Role: cl.Role, Status: cl.Status}
}

// StripBearer extracts the raw token from a "Bearer <token>" value. Returns
// an empty string when the prefix is missing.
func StripBearer(value string) string {
	if strings.HasPrefix(value, BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(value, BearerPrefix))
	}
	return ""
}
