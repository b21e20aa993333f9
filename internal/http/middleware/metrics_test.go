package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RouteLabelsAndGuardRejections(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/users/:id/role", func(c *gin.Context) { c.String(http.StatusOK, "x") })
	r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusForbidden) })

	baseRoute := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/users/:id/role", "200"))
	baseMiss := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404"))
	baseDenied := testutil.ToFloat64(httpAuthRejections.WithLabelValues("403"))

	for _, p := range []string{"/users/a@x.io/role", "/users/b@x.io/role", "/missing", "/admin"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	if got := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/users/:id/role", "200")) - baseRoute; got != 2 {
		t.Fatalf("route counter delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404")) - baseMiss; got != 1 {
		t.Fatalf("unmatched delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(httpAuthRejections.WithLabelValues("403")) - baseDenied; got != 1 {
		t.Fatalf("rejection delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(httpInflight); got != 0 {
		t.Fatalf("inflight = %v after requests", got)
	}
}
