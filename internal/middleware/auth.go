package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/bizmanager-api/internal/handler"
	authService "github.com/jwalitptl/bizmanager-api/internal/service/auth"
	"github.com/jwalitptl/bizmanager-api/pkg/errors"
)

const ContextPrincipal = "principal"

type AuthMiddleware struct {
	authService authService.AuthServicer
	cookieName  string
}

func NewAuthMiddleware(authService authService.AuthServicer, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		cookieName:  cookieName,
	}
}

// Authenticate resolves the session token from the session cookie or a
// Bearer Authorization header and stores the caller in the context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.token(c)
		if token == "" {
			handler.RespondError(c, errors.Unauthorized(nil))
			return
		}

		principal, err := m.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			handler.RespondError(c, err)
			return
		}

		c.Set(ContextPrincipal, principal)
		c.Next()
	}
}

func (m *AuthMiddleware) token(c *gin.Context) string {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Principal returns the caller stored by Authenticate.
func Principal(c *gin.Context) *authService.Principal {
	if v, ok := c.Get(ContextPrincipal); ok {
		if p, ok := v.(*authService.Principal); ok {
			return p
		}
	}
	return nil
}
