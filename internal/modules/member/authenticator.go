package member

import (
	"context"
	"errors"

	"community/internal/domain"
	"community/internal/modules/auth"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyHash is compared against when the account does not exist, so a probe
// cannot tell "no such user" from "wrong password" by response time.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type memberReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
}

// Authenticator checks a username/password pair against the member store.
// It is the only place the auth core touches member rows.
type Authenticator struct {
	members memberReader
}

func NewAuthenticator(members memberReader) *Authenticator {
	return &Authenticator{members: members}
}

// Authenticate returns the member's principal on success. Unknown accounts,
// wrong passwords and social-only accounts all collapse into
// auth.ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*domain.Principal, error) {
	m, err := a.members.GetByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	// Accounts created through a social provider have no local password.
	if m.Type != domain.MemberTypeLocal {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	principal := m.Principal()
	return &principal, nil
}
