package auth

import (
	"context"
	"errors"
	"net/url"
	"time"

	"community/internal/domain"
	"community/internal/pkg/token"

	"github.com/google/uuid"
)

type tokenCodec interface {
	Issue(category string, subjectID uuid.UUID, role domain.Role, status domain.Status, ttl time.Duration) (string, error)
	Verify(tokenStr string) (*token.Claims, error)
}

// Service contains all business logic for login, reissue and logout.
type Service struct {
	authenticator CredentialAuthenticator
	records       RefreshRecordStore
	codec         tokenCodec
	accessTTL     time.Duration
	refreshTTL    time.Duration
	pendingTTL    time.Duration
}

func NewService(
	authenticator CredentialAuthenticator,
	records RefreshRecordStore,
	codec tokenCodec,
	accessTTL time.Duration,
	refreshTTL time.Duration,
	pendingTTL time.Duration,
) *Service {
	return &Service{
		authenticator: authenticator,
		records:       records,
		codec:         codec,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		pendingTTL:    pendingTTL,
	}
}

type LoginResult struct {
	Principal domain.Principal
	Tokens    TokenPair
}

// Login authenticates the credentials and issues tokens according to the
// account status. PENDING accounts get a short-lived refresh token only, to
// be spent on completing activation; INACTIVE and unrecognized statuses get
// nothing. Exactly one refresh record is inserted per successful login.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	principal, err := s.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	switch principal.Status {
	case domain.StatusPending:
		refresh, err := s.issueRefresh(ctx, *principal, s.pendingTTL)
		if err != nil {
			return nil, err
		}
		return &LoginResult{
			Principal: *principal,
			Tokens:    TokenPair{RefreshToken: refresh, RefreshTTL: s.pendingTTL},
		}, nil
	case domain.StatusInactive:
		return nil, ErrAccountInactive
	case domain.StatusActive:
		// fall through
	default:
		// Fail closed on anything we do not recognize.
		return nil, ErrUnknownAccountStatus
	}

	access, err := s.codec.Issue(token.CategoryAccess, principal.SubjectID, principal.Role, principal.Status, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issueRefresh(ctx, *principal, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Principal: *principal,
		Tokens:    TokenPair{AccessToken: access, RefreshToken: refresh, RefreshTTL: s.refreshTTL},
	}, nil
}

// Reissue rotates a presented refresh token for a fresh pair. The old record
// is consumed before any new token leaves this method, so a given refresh
// token can be rotated exactly once.
func (s *Service) Reissue(ctx context.Context, cookieValue string) (*TokenPair, error) {
	claims, err := s.validateRefresh(cookieValue)
	if err != nil {
		return nil, err
	}

	raw, _ := decodeRefreshCookie(cookieValue)
	consumed, err := s.records.Consume(ctx, claims.SubjectID, raw)
	if err != nil {
		return nil, err
	}
	if !consumed {
		// Already rotated or logged out; reuse is rejected, not re-honored.
		return nil, ErrInvalidRefreshToken
	}

	access, err := s.codec.Issue(token.CategoryAccess, claims.SubjectID, claims.Role, claims.Status, s.accessTTL)
	if err != nil {
		return nil, err
	}
	principal := claims.Principal()
	refresh, err := s.issueRefresh(ctx, principal, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh, RefreshTTL: s.refreshTTL}, nil
}

// Logout validates and consumes the refresh record. A second logout with the
// same token fails with ErrInvalidRefreshToken; that is the intended signal
// that the token is already dead.
func (s *Service) Logout(ctx context.Context, cookieValue string) error {
	claims, err := s.validateRefresh(cookieValue)
	if err != nil {
		return err
	}

	raw, _ := decodeRefreshCookie(cookieValue)
	consumed, err := s.records.Consume(ctx, claims.SubjectID, raw)
	if err != nil {
		return err
	}
	if !consumed {
		return ErrInvalidRefreshToken
	}
	return nil
}

// validateRefresh decodes the cookie payload and runs the shared checks:
// presence, signature+expiry, and category.
func (s *Service) validateRefresh(cookieValue string) (*token.Claims, error) {
	raw, err := decodeRefreshCookie(cookieValue)
	if err != nil {
		// Present but undecodable is a bad credential, not an absent one.
		return nil, ErrInvalidRefreshToken
	}
	if raw == "" {
		return nil, ErrMissingRefreshToken
	}

	claims, err := s.codec.Verify(raw)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return nil, ErrRefreshExpired
		}
		return nil, ErrInvalidRefreshToken
	}
	if claims.Category != token.CategoryRefresh {
		return nil, ErrWrongTokenCategory
	}
	return claims, nil
}

func (s *Service) issueRefresh(ctx context.Context, principal domain.Principal, ttl time.Duration) (string, error) {
	refresh, err := s.codec.Issue(token.CategoryRefresh, principal.SubjectID, principal.Role, principal.Status, ttl)
	if err != nil {
		return "", err
	}
	err = s.records.Create(ctx, &domain.RefreshRecord{
		SubjectID: principal.SubjectID,
		Token:     refresh,
		ExpiresAt: time.Now().UTC().Add(ttl),
	})
	if err != nil {
		return "", err
	}
	return refresh, nil
}

// decodeRefreshCookie undoes the transport encoding: the cookie carries
// url-encoded "Bearer <token>".
func decodeRefreshCookie(cookieValue string) (string, error) {
	if cookieValue == "" {
		return "", nil
	}
	decoded, err := url.QueryUnescape(cookieValue)
	if err != nil {
		return "", err
	}
	return token.StripBearer(decoded), nil
}
