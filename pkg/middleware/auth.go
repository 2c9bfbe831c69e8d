package middleware

import (
	"github.com/gin-gonic/gin"

	"inkwell/internal/entity"
	"inkwell/pkg/apperr"
)

const (
	ContextAccountID = "account_id"
	ContextRole      = "account_role"
)

// Authorizer resolves an Authorization header into a caller identity.
type Authorizer interface {
	Authorize(header string) (entity.CallContext, error)
}

// AuthMiddleware rejects the request unless the bearer token resolves to an
// approved account, then attaches the caller's id and role to the context.
func AuthMiddleware(authz Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		cc, err := authz.Authorize(c.GetHeader("Authorization"))
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
			c.Abort()
			return
		}

		c.Set(ContextAccountID, cc.AccountID)
		c.Set(ContextRole, string(cc.Role))
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the caller identity when a valid token is
// present and lets the request through anonymously otherwise.
func OptionalAuthMiddleware(authz Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		if cc, err := authz.Authorize(header); err == nil {
			c.Set(ContextAccountID, cc.AccountID)
			c.Set(ContextRole, string(cc.Role))
		}
		c.Next()
	}
}

// RequireRole allows only the listed roles past. It must run after
// AuthMiddleware.
func RequireRole(allowed ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entity.Role(c.GetString(ContextRole))
		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}
		err := apperr.New(apperr.KindInsufficientRole, "insufficient role")
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		c.Abort()
	}
}

// Caller rebuilds the CallContext a handler needs from the request context.
func Caller(c *gin.Context) (entity.CallContext, bool) {
	id := c.GetString(ContextAccountID)
	if id == "" {
		return entity.CallContext{}, false
	}
	return entity.CallContext{
		AccountID: id,
		Role:      entity.Role(c.GetString(ContextRole)),
		Status:    entity.AccountApproved,
	}, true
}
