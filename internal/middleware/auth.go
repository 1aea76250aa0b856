package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/uniease-api/internal/domain/identity"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextPrincipal = "principal"
)

type Authenticator interface {
	Execute(ctx context.Context, token string) (identity.Principal, error)
}

func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, httperr.Unauthenticated("invalid_token"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, httperr.Unauthenticated("invalid_token"))
			return
		}

		p, err := authn.Execute(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(ContextUserID, p.UserID)
		c.Set(ContextUserRole, p.Role)
		c.Set(ContextPrincipal, p)

		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !PrincipalFrom(c).IsAdmin() {
			abort(c, httperr.Forbidden("admin_required"))
			return
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) identity.Principal {
	p, _ := c.Get(ContextPrincipal)
	principal, _ := p.(identity.Principal)
	return principal
}

func abort(c *gin.Context, err error) {
	httperr.Respond(c, err)
	c.Abort()
}
