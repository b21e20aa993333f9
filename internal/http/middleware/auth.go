// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the authorization guard as three pipeline stages:
//
//   - Authenticate runs globally. When a bearer credential is present it is
//     verified and the principal email is stored under the "userID" key, so
//     the logger, rate limiter and idempotency validator can key on it. It
//     never aborts.
//   - RequireAuth runs per route and halts with 401 unless Authenticate
//     attached a principal.
//   - RequireRole runs after RequireAuth and halts with 403 unless the
//     principal's stored role equals the required role.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ctxKeyPrincipal   = "userID"
	ctxKeyAuthFailure = "auth.failure"
	ctxKeyAuthOff     = "auth.unavailable"
)

// TokenVerifier validates a raw bearer token and returns the principal email.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, raw string) (string, error)
}

// RoleLookup returns the stored role for a principal. found is false when no
// user record exists; err is reserved for store failures.
type RoleLookup func(ctx context.Context, email string) (role string, found bool, err error)

// PrincipalFrom returns the verified principal email, if any.
func PrincipalFrom(c *gin.Context) (string, bool) {
	v, _ := c.Get(ctxKeyPrincipal)
	s := asString(v)
	return s, s != ""
}

// Authenticate resolves the principal from "Authorization: Bearer <token>".
// A nil verifier marks authentication as unavailable so guarded routes answer
// 503 instead of 401.
func Authenticate(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v == nil {
			c.Set(ctxKeyAuthOff, true)
			c.Next()
			return
		}
		hdr := c.GetHeader("Authorization")
		if hdr == "" {
			c.Next()
			return
		}
		tok, ok := bearerToken(hdr)
		if !ok {
			c.Set(ctxKeyAuthFailure, "malformed authorization header")
			c.Next()
			return
		}
		email, err := v.VerifyToken(c.Request.Context(), tok)
		if err != nil {
			LoggerFrom(c).Debug().Err(err).Msg("token rejected")
			c.Set(ctxKeyAuthFailure, "invalid token")
			c.Next()
			return
		}
		c.Set(ctxKeyPrincipal, email)
		c.Next()
	}
}

// RequireAuth aborts with 401 when no principal was attached.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := PrincipalFrom(c); ok {
			c.Next()
			return
		}
		if c.GetBool(ctxKeyAuthOff) {
			abortJSON(c, http.StatusServiceUnavailable, "service_unavailable", "authentication is not configured")
			return
		}
		msg := "missing bearer token"
		if s := c.GetString(ctxKeyAuthFailure); s != "" {
			msg = s
		}
		c.Header("WWW-Authenticate", `Bearer realm="bloodx"`)
		abortJSON(c, http.StatusUnauthorized, "unauthorized", msg)
	}
}

// RequireRole aborts with 403 unless the principal's stored role is role.
// An unknown principal is forbidden; a lookup failure is a 500.
func RequireRole(lookup RoleLookup, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := PrincipalFrom(c)
		if !ok {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		got, found, err := lookup(c.Request.Context(), email)
		if err != nil {
			LoggerFrom(c).Error().Err(err).Msg("role lookup failed")
			abortJSON(c, http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}
		if !found || got != role {
			abortJSON(c, http.StatusForbidden, "forbidden", "forbidden access")
			return
		}
		c.Next()
	}
}

func bearerToken(hdr string) (string, bool) {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(hdr), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}
