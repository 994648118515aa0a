package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/arachchispices/spicestore/internal/i18n"
)

// Language stores the negotiated response language in the request context.
// X-Lang takes precedence over Accept-Language.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.ResolveLang(c.GetHeader("X-Lang"), c.GetHeader("Accept-Language"))
		c.Set(i18n.LangKey, lang)
		c.Next()
	}
}
