package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
)

// contextUserKey is where TokenAuth stores the resolved account.
const contextUserKey = "currentUser"

// TokenResolver turns a bearer token back into an account. Satisfied by
// services.AuthService.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// TokenAuth authenticates requests via the Authorization header. The token
// is the opaque user id issued at login.
func TokenAuth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "authorization header missing"))
			return
		}

		token := header
		if strings.HasPrefix(strings.ToLower(header), "bearer ") {
			token = strings.TrimSpace(header[len("bearer "):])
		}

		user, err := resolver.ResolveToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "invalid token"))
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// OptionalTokenAuth resolves the bearer token when one is sent but lets
// anonymous requests through. Used on feeds that degrade to a public view.
func OptionalTokenAuth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token := header
		if strings.HasPrefix(strings.ToLower(header), "bearer ") {
			token = strings.TrimSpace(header[len("bearer "):])
		}
		if user, err := resolver.ResolveToken(c.Request.Context(), token); err == nil {
			c.Set(contextUserKey, user)
		}
		c.Next()
	}
}

// CurrentUser retrieves the authenticated account set by TokenAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// RoleRequired rejects authenticated requests whose account holds none of
// the given roles. Must run after TokenAuth.
func RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "authentication required"))
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse(dto.ErrorCodeForbidden, "insufficient role"))
	}
}
