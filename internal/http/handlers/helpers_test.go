package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/bloodx-backend/internal/domain"
	"github.com/tbourn/bloodx-backend/internal/repo"
	"github.com/tbourn/bloodx-backend/internal/services"
)

func init() { gin.SetMode(gin.TestMode) }

// ---------- service stubs; nil funcs panic so unexpected calls are loud ----------

type stubUsers struct {
	register      func(context.Context, domain.User) (domain.InsertResult, error)
	getByEmail    func(context.Context, string) (*domain.User, error)
	updateProfile func(context.Context, string, string, repo.ProfileUpdate) (domain.UpdateResult, error)
	listPage      func(context.Context, string, int, int) ([]domain.User, int64, error)
	changeStatus  func(context.Context, string, string) (domain.UpdateResult, error)
	changeRole    func(context.Context, string, string) (domain.UpdateResult, error)
	searchDonors  func(context.Context, services.DonorQuery) ([]domain.User, error)
}

func (s stubUsers) Register(ctx context.Context, u domain.User) (domain.InsertResult, error) {
	return s.register(ctx, u)
}
func (s stubUsers) GetByEmail(ctx context.Context, e string) (*domain.User, error) {
	return s.getByEmail(ctx, e)
}
func (s stubUsers) UpdateProfile(ctx context.Context, caller, id string, p repo.ProfileUpdate) (domain.UpdateResult, error) {
	return s.updateProfile(ctx, caller, id, p)
}
func (s stubUsers) ListPage(ctx context.Context, st string, skip, limit int) ([]domain.User, int64, error) {
	return s.listPage(ctx, st, skip, limit)
}
func (s stubUsers) ChangeStatus(ctx context.Context, id, st string) (domain.UpdateResult, error) {
	return s.changeStatus(ctx, id, st)
}
func (s stubUsers) ChangeRole(ctx context.Context, id, role string) (domain.UpdateResult, error) {
	return s.changeRole(ctx, id, role)
}
func (s stubUsers) SearchDonors(ctx context.Context, q services.DonorQuery) ([]domain.User, error) {
	return s.searchDonors(ctx, q)
}

type stubRequests struct {
	listPage         func(context.Context, services.RequestQuery) ([]domain.DonationRequest, int64, error)
	get              func(context.Context, string) (*domain.DonationRequest, error)
	listByRequester  func(context.Context, string) ([]domain.DonationRequest, error)
	create           func(context.Context, domain.DonationRequest) (domain.InsertResult, error)
	createIdempotent func(context.Context, string, string, string, domain.DonationRequest) (domain.InsertResult, bool, error)
	updateDetails    func(context.Context, string, domain.RequestDetails) (domain.UpdateResult, error)
	updateStatus     func(context.Context, string, string) (domain.UpdateResult, error)
	accept           func(context.Context, string, string, string, string) (domain.UpdateResult, error)
	del              func(context.Context, string) (domain.DeleteResult, error)
}

func (s stubRequests) ListPage(ctx context.Context, q services.RequestQuery) ([]domain.DonationRequest, int64, error) {
	return s.listPage(ctx, q)
}
func (s stubRequests) Get(ctx context.Context, id string) (*domain.DonationRequest, error) {
	return s.get(ctx, id)
}
func (s stubRequests) ListByRequester(ctx context.Context, e string) ([]domain.DonationRequest, error) {
	return s.listByRequester(ctx, e)
}
func (s stubRequests) Create(ctx context.Context, r domain.DonationRequest) (domain.InsertResult, error) {
	return s.create(ctx, r)
}
func (s stubRequests) CreateIdempotent(ctx context.Context, p, scope, key string, r domain.DonationRequest) (domain.InsertResult, bool, error) {
	return s.createIdempotent(ctx, p, scope, key, r)
}
func (s stubRequests) UpdateDetails(ctx context.Context, id string, d domain.RequestDetails) (domain.UpdateResult, error) {
	return s.updateDetails(ctx, id, d)
}
func (s stubRequests) UpdateStatus(ctx context.Context, id, st string) (domain.UpdateResult, error) {
	return s.updateStatus(ctx, id, st)
}
func (s stubRequests) Accept(ctx context.Context, id, name, email, st string) (domain.UpdateResult, error) {
	return s.accept(ctx, id, name, email, st)
}
func (s stubRequests) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	return s.del(ctx, id)
}

type stubPayments struct {
	createSession func(context.Context, float64, string, string) (*services.CheckoutSession, error)
	confirm       func(context.Context, string) (services.ConfirmResult, error)
	listFunds     func(context.Context, int, int) ([]domain.FundSummary, int64, error)
}

func (s stubPayments) CreateSession(ctx context.Context, amount float64, email, name string) (*services.CheckoutSession, error) {
	return s.createSession(ctx, amount, email, name)
}
func (s stubPayments) Confirm(ctx context.Context, id string) (services.ConfirmResult, error) {
	return s.confirm(ctx, id)
}
func (s stubPayments) ListFunds(ctx context.Context, skip, limit int) ([]domain.FundSummary, int64, error) {
	return s.listFunds(ctx, skip, limit)
}

type stubStats func(context.Context) (services.Stats, error)

func (f stubStats) Get(ctx context.Context) (services.Stats, error) { return f(ctx) }

// ---------- request helpers ----------

// asPrincipal stands in for the authentication middleware.
func asPrincipal(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-test")
		if email != "" {
			c.Set("userID", email)
		}
		c.Next()
	}
}

func do(r http.Handler, method, path string, body any, hdr ...string) *httptest.ResponseRecorder {
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		buf, _ := json.Marshal(b)
		rd = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}
