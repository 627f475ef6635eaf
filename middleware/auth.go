// auth.go - JWT authentication and authorization middleware
//
// Authentication:
// 1. Read the Authorization header ("<scheme> <token>")
// 2. Verify the token signature and expiry
// 3. Store the decoded claims in the Gin context
//
// Authorization runs after authentication and either lets the request
// through or aborts it. A denied request never reaches its handler.

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"bistro-backend/auth"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// Authenticate returns a middleware that requires a valid access token.
func Authenticate(signer *auth.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			Deny(c, auth.ErrUnauthenticated)
			return
		}

		claims, err := signer.Verify(token)
		if err != nil {
			slog.InfoContext(c.Request.Context(), "token rejected", "path", c.FullPath(), "err", err)
			Deny(c, err)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// bearerToken returns the text after the first whitespace-delimited scheme
// word. A missing header or a header with no token part yields false.
func bearerToken(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return "", false
	}
	return fields[1], true
}

// ClaimsFrom returns the claims stored by Authenticate, or nil.
func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// RequireAdmin allows only callers whose user record has the admin role.
// It must be chained after Authenticate.
func RequireAdmin(users auth.IdentityStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if err := auth.RequireAdmin(c.Request.Context(), users, claims); err != nil {
			slog.InfoContext(c.Request.Context(), "admin access denied", "path", c.FullPath(), "err", err)
			Deny(c, err)
			return
		}
		c.Next()
	}
}

// RequireSelf allows only callers whose email equals the named path
// parameter. It must be chained after Authenticate.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.SelfAccess(ClaimsFrom(c), c.Param(param)); err != nil {
			Deny(c, err)
			return
		}
		c.Next()
	}
}

// Deny aborts the request with the response matching a gate error.
func Deny(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		Abort(c, http.StatusUnauthorized, "unauthenticated", "unauthorized access")
	case errors.Is(err, auth.ErrUnauthorized):
		Abort(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
	default:
		Abort(c, http.StatusForbidden, "forbidden", "forbidden access")
	}
}

// Abort stops the chain and writes {"error": class, "message": message}.
func Abort(c *gin.Context, status int, class, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": class, "message": message})
}
