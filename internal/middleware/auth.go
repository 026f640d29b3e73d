package middleware

import (
	"community/internal/domain"
	"community/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// ContextPrincipalKey is where TokenGuard stores the authenticated subject.
const ContextPrincipalKey = "principal"

// TokenGuard validates the access token on every request and attaches the
// principal built from its claims. It never rejects: a missing, malformed,
// expired or wrong-category token just leaves the request unauthenticated,
// and the policy middleware downstream decides whether that is acceptable.
func TokenGuard(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := token.StripBearer(c.GetHeader(token.HeaderAuthorization))
		if raw == "" {
			c.Next()
			return
		}

		claims, err := codec.Verify(raw)
		if err != nil || claims.Category != token.CategoryAccess {
			c.Next()
			return
		}

		principal := claims.Principal()
		c.Set(ContextPrincipalKey, principal)
		c.Set("subject_id", principal.SubjectID.String())
		c.Set("role", string(principal.Role))
		c.Set("status", string(principal.Status))

		c.Next()
	}
}

// PrincipalFrom returns the principal TokenGuard attached, if any.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(ContextPrincipalKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := v.(domain.Principal)
	return principal, ok
}
