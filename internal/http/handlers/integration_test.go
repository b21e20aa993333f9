package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/bloodx-backend/internal/domain"
	"github.com/tbourn/bloodx-backend/internal/services"
)

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.DonationRequest{}, &domain.FundDonation{}, &domain.Idempotency{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func realEngine(t *testing.T) *gin.Engine {
	db := newHandlerDB(t)
	h := New(
		&services.UserService{DB: db},
		&services.DonationRequestService{DB: db},
		&services.PaymentService{DB: db},
		&services.StatsService{DB: db},
	)
	r := gin.New()
	r.Use(asPrincipal("req@x.io"))
	r.POST("/users", h.CreateUser)
	r.POST("/donorsData", h.SearchDonors)
	r.GET("/donationRequests", h.ListDonationRequests)
	r.GET("/donationRequests/:id/request", h.GetDonationRequest)
	r.POST("/donationRequests", h.CreateDonationRequest)
	r.PATCH("/donationRequests/:id/status", h.UpdateDonationStatus)
	r.GET("/stats", h.GetStats)
	return r
}

func TestEndToEnd_CreateThenFetchAndUpdateStatus(t *testing.T) {
	r := realEngine(t)

	w := do(r, http.MethodPost, "/donationRequests", map[string]string{
		"requesterEmail":    "req@x.io",
		"bloodGroup":        "O+",
		"recipientDistrict": "Dhaka",
		"hospitalName":      "DMCH",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	ins := decode[domain.InsertResult](t, w)
	if !ins.Acknowledged || ins.InsertedID == "" {
		t.Fatalf("insert ack: %+v", ins)
	}

	w = do(r, http.MethodGet, "/donationRequests/"+ins.InsertedID+"/request", nil)
	got := decode[domain.DonationRequest](t, w)
	if w.Code != http.StatusOK || got.BloodGroup != "O+" || got.HospitalName != "DMCH" || got.DonationStatus != domain.DonationPending {
		t.Fatalf("fetch: %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPatch, "/donationRequests/"+ins.InsertedID+"/status", map[string]string{"donationStatus": "done"})
	if upd := decode[domain.UpdateResult](t, w); w.Code != http.StatusOK || upd.MatchedCount != 1 || upd.ModifiedCount != 1 {
		t.Fatalf("status: %d %s", w.Code, w.Body.String())
	}
	w = do(r, http.MethodGet, "/donationRequests/"+ins.InsertedID+"/request", nil)
	if decode[domain.DonationRequest](t, w).DonationStatus != domain.DonationDone {
		t.Fatalf("status not persisted: %s", w.Body.String())
	}

	w = do(r, http.MethodGet, "/donationRequests?status=done", nil)
	if list := decode[ListDonationRequestsResponse](t, w); list.TotalRequests != 1 || list.Result[0].ID != ins.InsertedID {
		t.Fatalf("filtered list: %s", w.Body.String())
	}
	w = do(r, http.MethodGet, "/donationRequests?status=pending", nil)
	if list := decode[ListDonationRequestsResponse](t, w); list.TotalRequests != 0 || len(list.Result) != 0 {
		t.Fatalf("pending list should be empty: %s", w.Body.String())
	}
}

func TestEndToEnd_RegisterSearchAndStats(t *testing.T) {
	r := realEngine(t)

	for _, u := range []map[string]string{
		{"email": "a@x.io", "name": "A", "district": "dhaka", "bloodGroup": "A+", "role": "Admin"},
		{"email": "b@x.io", "name": "B", "district": "Chattogram", "bloodGroup": "A+"},
	} {
		if w := do(r, http.MethodPost, "/users", u); w.Code != http.StatusCreated {
			t.Fatalf("register %s: %d %s", u["email"], w.Code, w.Body.String())
		}
	}
	if w := do(r, http.MethodPost, "/users", map[string]string{"email": "a@x.io"}); w.Code != http.StatusConflict {
		t.Fatalf("duplicate: %d", w.Code)
	}

	w := do(r, http.MethodPost, "/donorsData", map[string]string{"district": "Dhaka", "bloodGroup": "A+"})
	donors := decode[[]domain.User](t, w)
	if len(donors) != 1 || donors[0].Email != "a@x.io" || donors[0].Role != domain.RoleDonor {
		t.Fatalf("search: %s", w.Body.String())
	}

	w = do(r, http.MethodGet, "/stats", nil)
	st := decode[services.Stats](t, w)
	if st.TotalDonors != 2 || st.TotalRequests != 0 || st.TotalFunds != 0 {
		t.Fatalf("stats: %+v", st)
	}
}
