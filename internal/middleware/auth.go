package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/micropost/internal/auth"
	"github.com/xxxsen/micropost/internal/metrics"
)

const ContextIdentityKey = "identity"

// Authenticate attaches the request identity and always continues the chain.
func Authenticate(authenticator *auth.Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil {
			token = ""
		}
		identity := authenticator.Resolve(c.Request.Context(), token)
		if identity.IsAnonymous() {
			metrics.AuthResolutionsTotal.WithLabelValues("anonymous").Inc()
		} else {
			metrics.AuthResolutionsTotal.WithLabelValues("identified").Inc()
		}
		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) auth.Identity {
	if v, ok := c.Get(ContextIdentityKey); ok {
		if identity, ok := v.(auth.Identity); ok {
			return identity
		}
	}
	return auth.Anonymous()
}

// RequireUser redirects anonymous callers to loginPath.
func RequireUser(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c).IsAnonymous() {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
