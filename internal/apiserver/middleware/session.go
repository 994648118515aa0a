package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/arachchispices/spicestore/internal/apiserver/session"
	"github.com/arachchispices/spicestore/internal/common/errorx"
	"github.com/arachchispices/spicestore/internal/i18n"
)

const principalKey = "principal"

// Sessions resolves the session cookie into a principal on every request.
// It never rejects; route guards decide whether a principal is required.
func Sessions(store session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}
		p, err := store.Get(c.Request.Context(), id)
		if err != nil {
			c.Next()
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// RequireSession aborts with 401 when no valid session was resolved.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetPrincipal(c); !ok {
			i18n.RespondWithError(c, errorx.ErrNoSession)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the session belongs to an admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			i18n.RespondWithError(c, errorx.ErrNoSession)
			c.Abort()
			return
		}
		if !p.IsAdmin() {
			i18n.RespondWithError(c, errorx.ErrAdminOnly)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the principal resolved for this request, if any.
func GetPrincipal(c *gin.Context) (*session.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*session.Principal)
	return p, ok
}
