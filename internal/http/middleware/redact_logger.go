// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the access log. Routes in this API
// carry e-mail addresses in path segments (/users/:id/role,
// /donationRequests/:id) and payment session ids in query strings, so the raw
// path and query are scrubbed before logging. Bodies are never logged.
//
// Scrubbing:
//   - UUIDs → [REDACTED:id]
//   - e-mail addresses → [REDACTED:email]
//   - phone numbers → [REDACTED:phone]
//   - Stripe object ids (cs_…, pi_…) → [REDACTED:payment]
//   - Authorization, Cookie, Set-Cookie, Stripe-Signature and any header in
//     RedactOptions.MaskHeaders → [REDACTED]
package middleware

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RedactOptions configures extra scrubbing for RedactingLogger.
type RedactOptions struct {
	// MaskHeaders are additional header names (case-insensitive) whose values
	// are fully masked.
	MaskHeaders []string
	// Logger overrides the destination; the global logger is used when nil.
	Logger *zerolog.Logger
}

var (
	// UUIDs go first so the phone pattern cannot eat their digit groups.
	uuidRE    = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}\b`)
	emailRE   = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	paymentRE = regexp.MustCompile(`\b(?:cs|pi)_(?:test_|live_)?[A-Za-z0-9]{6,}\b`)
	phoneRE   = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// Redact scrubs identifiers from s. It decodes percent-escapes first so that
// "a%40x.io" is recognised as an address.
func Redact(s string) string {
	if s == "" {
		return s
	}
	if dec, err := url.PathUnescape(s); err == nil {
		s = dec
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	s = paymentRE.ReplaceAllString(s, "[REDACTED:payment]")
	s = phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
	return s
}

// RedactingLogger writes one structured access log per request, at warn for
// 4xx and error for 5xx.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	masked := map[string]struct{}{
		"authorization":    {},
		"cookie":           {},
		"set-cookie":       {},
		"stripe-signature": {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			masked[h] = struct{}{}
		}
	}
	base := opts.Logger
	if base == nil {
		base = &log.Logger
	}

	return func(c *gin.Context) {
		start := time.Now()

		headers := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := masked[strings.ToLower(k)]; ok {
				headers[k] = "[REDACTED]"
				continue
			}
			headers[k] = Redact(strings.Join(vv, ", "))
		}

		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = base.Error()
		case status >= 400:
			ev = base.Warn()
		default:
			ev = base.Info()
		}
		_, authed := PrincipalFrom(c)
		ev.Str("request_id", c.Writer.Header().Get(requestIDHeader)).
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Str("path", Redact(c.Request.URL.Path)).
			Str("query", Redact(c.Request.URL.RawQuery)).
			Str("remote_ip", c.ClientIP()).
			Bool("authenticated", authed).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", headers).
			Msg("http_request")
	}
}
