// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file validates the Idempotency-Key header on unsafe methods. A valid
// key is stashed for the handler; when a lookup reports that the same
// (principal, scope, key) already produced a resource, the request is marked
// as a replay and exempted from rate limiting. Serving the replay is left to
// the handler, which reads back the stored resource id.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header carrying the client key.
const HeaderIdempotencyKey = "Idempotency-Key"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"
)

var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// IdempotencyOptions configures IdempotencyValidator.
type IdempotencyOptions struct {
	// MaxLen caps the key length; <= 0 means 200.
	MaxLen int
	// Pattern restricts key characters; nil means ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
}

// IdempotencyLookup reports whether a live record exists for the tuple. TTL
// is enforced by the implementation.
type IdempotencyLookup func(ctx context.Context, principal, scope, key string, now time.Time) (bool, error)

// IdempotencyScope names the operation a key applies to: method plus route
// template, e.g. "POST /donationRequests".
func IdempotencyScope(c *gin.Context) string {
	return c.Request.Method + " " + routeOf(c)
}

// GetIdempotencyKey returns the validated key, if the request carried one.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	s := c.GetString(ctxKeyIdemKey)
	return s, s != ""
}

// IsReplay reports whether the lookup found a prior result for this key.
func IsReplay(c *gin.Context) bool {
	return c.GetBool(ctxKeyIdemReplay)
}

// IdempotencyValidator checks the Idempotency-Key header.
//
// Behavior:
//   - GET, HEAD and OPTIONS ignore the header.
//   - POST, PUT, PATCH and DELETE without the header pass unchanged.
//   - A key longer than MaxLen or outside Pattern aborts with 400 bad_request.
//   - A valid key is stored for GetIdempotencyKey.
//   - With a principal and a lookup, a live record for (principal,
//     IdempotencyScope, key) marks the request as a replay (IsReplay) and
//     exempts it from rate limiting. Anonymous requests are never replays.
//   - Lookup errors are logged at warn and count as a miss; the handler's own
//     write path still enforces uniqueness.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultKeyPattern
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			c.Next()
			return
		}
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			abortJSON(c, http.StatusBadRequest, "bad_request", "invalid Idempotency-Key")
			return
		}
		c.Set(ctxKeyIdemKey, key)

		principal, ok := PrincipalFrom(c)
		if lookup != nil && ok {
			exists, err := lookup(c.Request.Context(), principal, IdempotencyScope(c), key, time.Now().UTC())
			if err != nil {
				LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
			}
			if exists {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}
		c.Next()
	}
}
