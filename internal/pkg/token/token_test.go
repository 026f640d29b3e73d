package token

import (
	"testing"
	"time"

	"community/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestCodec() *Codec {
	return NewCodec(testSecret, "community-test")
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	c := newTestCodec()
	subjectID := uuid.New()

	tokenStr, err := c.Issue(CategoryAccess, subjectID, domain.RoleUser, domain.StatusActive, 10*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := c.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, CategoryAccess, claims.Category)
	assert.Equal(t, subjectID, claims.SubjectID)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Equal(t, domain.StatusActive, claims.Status)
	assert.Equal(t, "community-test", claims.Issuer)
}

func TestIssue_DistinctWithinSameSecond(t *testing.T) {
	c := newTestCodec()
	subjectID := uuid.New()

	// Pin the clock so both tokens share iat and exp to the second.
	fixed := time.Now()
	c.now = func() time.Time { return fixed }

	first, err := c.Issue(CategoryRefresh, subjectID, domain.RoleUser, domain.StatusActive, time.Hour)
	require.NoError(t, err)
	second, err := c.Issue(CategoryRefresh, subjectID, domain.RoleUser, domain.StatusActive, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	firstClaims, err := c.Verify(first)
	require.NoError(t, err)
	secondClaims, err := c.Verify(second)
	require.NoError(t, err)
	assert.NotEmpty(t, firstClaims.ID)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestVerify_Expired(t *testing.T) {
	c := newTestCodec()

	tokenStr, err := c.Issue(CategoryAccess, uuid.New(), domain.RoleUser, domain.StatusActive, time.Minute)
	require.NoError(t, err)

	// Move the codec clock past the expiry.
	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = c.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.True(t, c.IsExpired(tokenStr))
}

func TestVerify_WrongSecret(t *testing.T) {
	c := newTestCodec()
	other := NewCodec([]byte("another-secret-another-secret!!!"), "community-test")

	tokenStr, err := c.Issue(CategoryRefresh, uuid.New(), domain.RoleUser, domain.StatusActive, time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Garbage(t *testing.T) {
	c := newTestCodec()

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := c.Verify(input)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", input)
	}
}

func TestCategory_AccessNeverPassesAsRefresh(t *testing.T) {
	c := newTestCodec()

	access, err := c.Issue(CategoryAccess, uuid.New(), domain.RoleAdmin, domain.StatusActive, time.Minute)
	require.NoError(t, err)
	refresh, err := c.Issue(CategoryRefresh, uuid.New(), domain.RoleAdmin, domain.StatusActive, time.Minute)
	require.NoError(t, err)

	cat, err := c.Category(access)
	require.NoError(t, err)
	assert.Equal(t, CategoryAccess, cat)

	cat, err = c.Category(refresh)
	require.NoError(t, err)
	assert.Equal(t, CategoryRefresh, cat)
}

func TestProjections(t *testing.T) {
	c := newTestCodec()
	subjectID := uuid.New()

	tokenStr, err := c.Issue(CategoryRefresh, subjectID, domain.RoleAdmin, domain.StatusPending, time.Hour)
	require.NoError(t, err)

	id, err := c.SubjectID(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, subjectID, id)

	role, err := c.Role(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)

	status, err := c.Status(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, status)
}

func TestStripBearer(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", StripBearer("Bearer abc.def.ghi"))
	assert.Equal(t, "", StripBearer("abc.def.ghi"))
	assert.Equal(t, "", StripBearer(""))
	assert.Equal(t, "", StripBearer("Basic dGVzdA=="))
}
