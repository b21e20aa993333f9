// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, which attaches a fixed set of response
// headers for a JSON API served behind a reverse proxy.
//
// Notes:
//   - No Content-Security-Policy is sent; the API never serves HTML.
//   - HSTS is opt-in and only sent on HTTPS (direct TLS or
//     X-Forwarded-Proto: https).
//   - Responses to authenticated requests carry profile and payment data and
//     can be marked non-cacheable.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityOptions configures SecurityHeaders.
//
// Fields:
//   - EnableHSTS: emit Strict-Transport-Security on HTTPS requests. Enable
//     only when traffic is HTTPS between the proxy and this process too.
//   - HSTSMaxAge: HSTS lifetime, truncated to whole seconds. Values <= 0 mean
//     180 days.
//   - NoStore: add Cache-Control: no-store and Pragma: no-cache to responses
//     for requests that carry an Authorization header. Anonymous responses
//     (liveness, public listings) stay cacheable.
//   - EnablePolicy: send Permissions-Policy and
//     X-Permitted-Cross-Domain-Policies. Browsers honour them; other clients
//     ignore them.
type SecurityOptions struct {
	EnableHSTS   bool          // only when traffic is HTTPS end-to-end
	HSTSMaxAge   time.Duration // <= 0 means 180 days
	NoStore      bool          // authenticated responses only
	EnablePolicy bool          // Permissions-Policy and X-Permitted-Cross-Domain-Policies
}

// SecurityHeaders returns a middleware that sets response headers before the
// handler runs.
//
// Behavior:
//   - Always sets:
//     X-Content-Type-Options: nosniff
//     X-Frame-Options: DENY
//     Referrer-Policy: no-referrer
//   - When EnablePolicy:
//     Permissions-Policy: geolocation=(), microphone=(), camera=()
//     X-Permitted-Cross-Domain-Policies: none
//   - When NoStore and the request has an Authorization header:
//     Cache-Control: no-store
//     Pragma: no-cache
//   - When EnableHSTS and the request is HTTPS:
//     Strict-Transport-Security: max-age=<seconds>; includeSubDomains
//   - When X-Request-ID is already set, it is appended to
//     Access-Control-Expose-Headers (once) so browser clients can read it.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := opt.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = 180 * 24 * time.Hour
	}
	hsts := "max-age=" + strconv.FormatInt(int64(maxAge/time.Second), 10) + "; includeSubDomains"

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}
		if opt.NoStore && c.GetHeader("Authorization") != "" {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
		}
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}
		if h.Get(requestIDHeader) != "" {
			const expose = "Access-Control-Expose-Headers"
			switch cur := h.Get(expose); {
			case cur == "":
				h.Set(expose, requestIDHeader)
			case !strings.Contains(cur, requestIDHeader):
				h.Set(expose, cur+", "+requestIDHeader)
			}
		}

		c.Next()
	}
}

func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
