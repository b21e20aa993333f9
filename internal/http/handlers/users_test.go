package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/bloodx-backend/internal/domain"
	"github.com/tbourn/bloodx-backend/internal/repo"
	"github.com/tbourn/bloodx-backend/internal/services"
)

func userEngine(s stubUsers) *gin.Engine {
	h := New(s, nil, nil, nil)
	r := gin.New()
	r.Use(asPrincipal("admin@x.io"))
	r.GET("/users/:id/role", h.GetUser)
	r.POST("/users", h.CreateUser)
	r.PATCH("/users", h.UpdateProfile)
	r.GET("/users", h.ListUsers)
	r.PATCH("/users/:id/changeStatus", h.ChangeUserStatus)
	r.PATCH("/users/:id/changeRole", h.ChangeUserRole)
	r.POST("/donorsData", h.SearchDonors)
	return r
}

func TestGetUser(t *testing.T) {
	r := userEngine(stubUsers{
		getByEmail: func(_ context.Context, email string) (*domain.User, error) {
			if email == "a@x.io" {
				return &domain.User{ID: "u1", Email: email, Role: domain.RoleAdmin}, nil
			}
			return nil, services.ErrUserNotFound
		},
	})

	w := do(r, http.MethodGet, "/users/a@x.io/role", nil)
	if w.Code != http.StatusOK || decode[domain.User](t, w).Role != domain.RoleAdmin {
		t.Fatalf("hit: %d %s", w.Code, w.Body.String())
	}
	w = do(r, http.MethodGet, "/users/ghost@x.io/role", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("miss: %d", w.Code)
	}
}

func TestCreateUser(t *testing.T) {
	var got domain.User
	r := userEngine(stubUsers{
		register: func(_ context.Context, u domain.User) (domain.InsertResult, error) {
			got = u
			if u.Email == "dup@x.io" {
				return domain.InsertResult{}, services.ErrDuplicateUser
			}
			return domain.InsertResult{Acknowledged: true, InsertedID: "new-id"}, nil
		},
	})

	w := do(r, http.MethodPost, "/users", map[string]string{
		"email": "a@x.io", "name": "  Rahim ", "district": "Dhaka", "role": "Admin", "status": "Blocked",
	})
	if w.Code != http.StatusCreated || decode[domain.InsertResult](t, w).InsertedID != "new-id" {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	if got.Name != "Rahim" || got.District != "Dhaka" || got.Role != "" || got.Status != "" {
		t.Fatalf("client role/status must not reach the service: %+v", got)
	}

	if w := do(r, http.MethodPost, "/users", map[string]string{"email": "not-an-email"}); w.Code != http.StatusBadRequest {
		t.Fatalf("bad email: %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/users", map[string]string{"email": "dup@x.io"}); w.Code != http.StatusConflict {
		t.Fatalf("duplicate: %d", w.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	var gotCaller, gotID string
	var gotP repo.ProfileUpdate
	r := userEngine(stubUsers{
		updateProfile: func(_ context.Context, caller, id string, p repo.ProfileUpdate) (domain.UpdateResult, error) {
			gotCaller, gotID, gotP = caller, id, p
			if id == "other" {
				return domain.UpdateResult{}, services.ErrForbidden
			}
			return domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		},
	})

	w := do(r, http.MethodPatch, "/users", map[string]string{"_id": "abc", "upazila": " Savar ", "bloodGroup": "O-"})
	if w.Code != http.StatusOK || decode[domain.UpdateResult](t, w).ModifiedCount != 1 {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	if gotCaller != "admin@x.io" || gotID != "abc" || gotP.Upazila != "Savar" || gotP.BloodGroup != "O-" || gotP.Name != "" {
		t.Fatalf("unexpected forward: %q %+v", gotID, gotP)
	}
	if w := do(r, http.MethodPatch, "/users", map[string]string{"name": "x"}); w.Code != http.StatusBadRequest {
		t.Fatalf("missing _id: %d", w.Code)
	}
	w = do(r, http.MethodPatch, "/users", map[string]string{"_id": "other", "name": "x"})
	if w.Code != http.StatusForbidden || decode[ErrorResponse](t, w).Code != ErrCodeForbidden {
		t.Fatalf("forbidden: %d %s", w.Code, w.Body.String())
	}
}

func TestListUsers(t *testing.T) {
	var gotStatus string
	var gotSkip, gotLimit int
	r := userEngine(stubUsers{
		listPage: func(_ context.Context, st string, skip, limit int) ([]domain.User, int64, error) {
			gotStatus, gotSkip, gotLimit = st, skip, limit
			if st == "Gone" {
				return nil, 0, services.ErrInvalidStatus
			}
			return []domain.User{{ID: "u1"}}, 7, nil
		},
	})

	w := do(r, http.MethodGet, "/users?status=Blocked&skip=5&limit=2", nil)
	body := decode[ListUsersResponse](t, w)
	if w.Code != http.StatusOK || body.TotalUsers != 7 || len(body.Result) != 1 {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
	if gotStatus != "Blocked" || gotSkip != 5 || gotLimit != 2 {
		t.Fatalf("forwarded %q %d %d", gotStatus, gotSkip, gotLimit)
	}
	if w := do(r, http.MethodGet, "/users?status=Gone", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad status: %d", w.Code)
	}
}

func TestChangeStatusAndRole(t *testing.T) {
	var calls []string
	r := userEngine(stubUsers{
		changeStatus: func(_ context.Context, id, st string) (domain.UpdateResult, error) {
			calls = append(calls, "status:"+id+":"+st)
			return domain.UpdateResult{Acknowledged: true, MatchedCount: 1}, nil
		},
		changeRole: func(_ context.Context, id, role string) (domain.UpdateResult, error) {
			if role == "King" {
				return domain.UpdateResult{}, services.ErrInvalidRole
			}
			calls = append(calls, "role:"+id+":"+role)
			return domain.UpdateResult{Acknowledged: true, MatchedCount: 1}, nil
		},
	})

	if w := do(r, http.MethodPatch, "/users/u1/changeStatus", map[string]string{"status": "Blocked"}); w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	if w := do(r, http.MethodPatch, "/users/u1/changeRole", map[string]string{"role": "Volunteer"}); w.Code != http.StatusOK {
		t.Fatalf("role: %d", w.Code)
	}
	if w := do(r, http.MethodPatch, "/users/u1/changeRole", map[string]string{"role": "King"}); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid role: %d", w.Code)
	}
	if w := do(r, http.MethodPatch, "/users/u1/changeStatus", map[string]string{}); w.Code != http.StatusBadRequest {
		t.Fatalf("missing status: %d", w.Code)
	}
	if len(calls) != 2 || calls[0] != "status:u1:Blocked" || calls[1] != "role:u1:Volunteer" {
		t.Fatalf("calls = %v", calls)
	}
}

func TestSearchDonors(t *testing.T) {
	var got services.DonorQuery
	r := userEngine(stubUsers{
		searchDonors: func(_ context.Context, q services.DonorQuery) ([]domain.User, error) {
			got = q
			return []domain.User{}, nil
		},
	})

	w := do(r, http.MethodPost, "/donorsData", map[string]string{"district": " dhaka ", "bloodGroup": "A+"})
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("search: %d %s", w.Code, w.Body.String())
	}
	if got.District != "dhaka" || got.BloodGroup != "A+" || got.Upazila != "" {
		t.Fatalf("query = %+v", got)
	}
	if w := do(r, http.MethodPost, "/donorsData", "{"); w.Code != http.StatusBadRequest {
		t.Fatalf("bad json: %d", w.Code)
	}
}
