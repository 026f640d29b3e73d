package auth

import (
	"context"

	"community/internal/domain"

	"github.com/google/uuid"
)

// CredentialAuthenticator is the member-management collaborator. It must
// return ErrInvalidCredentials for both a bad password and an unknown
// account, so nothing downstream can tell the two apart.
type CredentialAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Principal, error)
}

// RefreshRecordStore is the durable record of outstanding refresh tokens.
// Consume must be a single conditional delete: it reports whether the exact
// (subject, token) row existed, and removing it is the rotation gate.
type RefreshRecordStore interface {
	Create(ctx context.Context, rec *domain.RefreshRecord) error
	Consume(ctx context.Context, subjectID uuid.UUID, tokenValue string) (bool, error)
}
