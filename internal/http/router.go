// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware and route handlers. It owns the order of the cross-cutting
// stages: tracing, correlation ids, redacted access logs, panic recovery,
// metrics, authentication, idempotency, rate limiting, CORS and security
// headers.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/bloodx-backend/docs"
	"github.com/tbourn/bloodx-backend/internal/config"
	"github.com/tbourn/bloodx-backend/internal/domain"
	"github.com/tbourn/bloodx-backend/internal/http/handlers"
	"github.com/tbourn/bloodx-backend/internal/http/middleware"
	"github.com/tbourn/bloodx-backend/internal/repo"
	"github.com/tbourn/bloodx-backend/internal/services"
)

// LivenessText is the body of GET /.
const LivenessText = "The Server is running properly"

// Deps are the collaborators RegisterRoutes needs. Verifier and Gateway may
// be nil: authentication-guarded routes then answer 503, and checkout and
// confirmation answer 503. Pass an untyped nil, not a typed nil pointer.
type Deps struct {
	DB       *gorm.DB
	Config   config.Config
	Verifier middleware.TokenVerifier
	Gateway  services.PaymentGateway
}

// RegisterRoutes attaches all middleware and endpoints to r.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: access log with identifiers scrubbed
//  4. Logger: request-scoped logger for handlers
//  5. Recovery: capture panics after the loggers
//  6. Body size limiter
//  7. Metrics (and gzip when enabled)
//  8. Authenticate: attach the principal, never abort
//  9. Idempotency validator (needs the principal; before the limiter so
//     replays bypass it)
//  10. Rate limiter (per principal or IP)
//  11. CORS and security headers
//
// Route guards (RequireAuth, RequireRole) run per route after all of these.
func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	db := d.DB
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(limitBody(1 << 20))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.GzipEnabled {
		r.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	r.Use(middleware.Authenticate(d.Verifier))

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		func(ctx context.Context, principal, scope, key string, now time.Time) (bool, error) {
			_, err := repo.GetIdempotency(ctx, db, principal, scope, key, now)
			if errors.Is(err, repo.ErrNotFound) {
				return false, nil
			}
			return err == nil, err
		},
	))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByPrincipalOrIP())
	r.Use(rl.Handler())

	allowHeaders := []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey}
	exposeHeaders := []string{"X-Request-ID", "Content-Length", "Retry-After", handlers.HeaderReplayed}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Send ACAO: * even without an Origin header so curl and health checkers see it.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	users := &services.UserService{DB: db}
	h := handlers.New(
		users,
		&services.DonationRequestService{DB: db, IdempotencyTTL: cfg.IdempotencyTTL},
		&services.PaymentService{
			DB:             db,
			Gateway:        d.Gateway,
			Currency:       cfg.Payment.Currency,
			ProductName:    cfg.Payment.ProductName,
			SiteDomain:     cfg.Payment.SiteDomain,
			TrackingPrefix: cfg.Payment.TrackingPrefix,
		},
		&services.StatsService{DB: db},
	)

	authed := middleware.RequireAuth()
	admin := middleware.RequireRole(roleLookup(users), domain.RoleAdmin)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/", func(c *gin.Context) { c.String(http.StatusOK, LivenessText) })

		// Users
		api.POST("/users", h.CreateUser)
		api.GET("/users/:id/role", authed, h.GetUser)
		api.PATCH("/users", authed, h.UpdateProfile)
		api.GET("/users", authed, admin, h.ListUsers)
		api.PATCH("/users/:id/changeStatus", authed, admin, h.ChangeUserStatus)
		api.PATCH("/users/:id/changeRole", authed, admin, h.ChangeUserRole)
		api.POST("/donorsData", h.SearchDonors)

		// Donation requests. The :id segment of the requester listing is an email.
		api.GET("/donationRequests", h.ListDonationRequests)
		api.GET("/donationRequests/:id", authed, h.ListRequesterDonationRequests)
		api.GET("/donationRequests/:id/request", authed, h.GetDonationRequest)
		api.POST("/donationRequests", authed, h.CreateDonationRequest)
		api.PATCH("/donationRequests/:id/request", authed, h.UpdateDonationRequest)
		api.PATCH("/donationRequests/:id/status", authed, h.UpdateDonationStatus)
		api.PATCH("/donationReqest/:id/acceptRequest", authed, h.AcceptDonationRequest)
		api.PATCH("/donationRequests/:id/acceptRequest", authed, h.AcceptDonationRequest)
		api.DELETE("/donationRequests/:id/request", authed, h.DeleteDonationRequest)

		// Funds
		api.POST("/create-checkout-session", authed, h.CreateCheckoutSession)
		api.PATCH("/payment-success", authed, h.ConfirmPayment)
		api.GET("/donateFunds", h.ListFunds)

		api.GET("/stats", authed, h.GetStats)
	}
}

// roleLookup adapts UserService.RoleOf to the guard's contract: an unknown
// user is "not found", not an error.
func roleLookup(users *services.UserService) middleware.RoleLookup {
	return func(ctx context.Context, email string) (string, bool, error) {
		role, err := users.RoleOf(ctx, email)
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return "", false, nil
		case err != nil:
			return "", false, err
		}
		return role, true, nil
	}
}

// limitBody caps the request body at maxBytes. Reads past the cap fail.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
