package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/yatube/backend/internal/auth"
)

const principalKey = "principal"

// PrincipalLoader resolves the account behind a token's user id.
type PrincipalLoader interface {
	Principal(ctx context.Context, id int) (*auth.Principal, error)
}

// AuthMiddleware attaches the principal of a valid Bearer token to the
// request. Requests without a Bearer header stay anonymous; a bad token or a
// token for a vanished account is rejected with 401.
func AuthMiddleware(tokens *auth.Issuer, users PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			c.Next()
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(token), auth.AccessToken)
		if err != nil {
			unauthorized(c, "Given token not valid for any token type")
			return
		}

		principal, err := users.Principal(c.Request.Context(), claims.UserID)
		if err != nil {
			unauthorized(c, "User not found")
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// Principal returns the authenticated principal, or nil for anonymous requests.
func Principal(c *gin.Context) *auth.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
