package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/tbourn/bloodx-backend/internal/domain"
)

type fakeGateway struct {
	mu       sync.Mutex
	created  []CheckoutRequest
	sessions map[string]*CheckoutSession
	err      error
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	g.created = append(g.created, req)
	return &CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

func (g *fakeGateway) GetCheckoutSession(_ context.Context, id string) (*CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	s, ok := g.sessions[id]
	if !ok {
		return nil, errors.New("no such checkout.session")
	}
	cp := *s
	return &cp, nil
}

func newPaymentService(t *testing.T, g *fakeGateway) *PaymentService {
	t.Helper()
	return &PaymentService{
		DB:             newTestDB(t),
		Gateway:        g,
		Currency:       "usd",
		ProductName:    "Fund",
		SiteDomain:     "https://bloodx.example",
		TrackingPrefix: "BX-",
	}
}

func paidSession(id, intent string, total int64) *CheckoutSession {
	return &CheckoutSession{
		ID:              id,
		PaymentStatus:   PaymentStatusPaid,
		AmountTotal:     total,
		PaymentIntentID: intent,
		CustomerEmail:   "fallback@x.io",
		Metadata:        map[string]string{MetaDonorEmail: "d@x.io", MetaDonorName: "Dina"},
	}
}

func TestPaymentService_CreateSession(t *testing.T) {
	g := &fakeGateway{}
	svc := newPaymentService(t, g)

	sess, err := svc.CreateSession(context.Background(), 12.35, " d@x.io ", "Dina")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.URL == "" {
		t.Fatalf("missing hosted url")
	}
	if len(g.created) != 1 {
		t.Fatalf("gateway calls = %d", len(g.created))
	}
	req := g.created[0]
	if req.AmountMinor != 1235 || req.Currency != "usd" || req.DonorEmail != "d@x.io" {
		t.Fatalf("unexpected checkout request: %+v", req)
	}
	if !strings.HasPrefix(req.SuccessURL, "https://bloodx.example/") || !strings.Contains(req.SuccessURL, "{CHECKOUT_SESSION_ID}") {
		t.Fatalf("success url = %q", req.SuccessURL)
	}
	if req.Metadata[MetaDonorName] != "Dina" {
		t.Fatalf("metadata = %+v", req.Metadata)
	}
	var n int64
	svc.DB.Model(&domain.FundDonation{}).Count(&n)
	if n != 0 {
		t.Fatalf("session creation must not persist anything")
	}
}

func TestPaymentService_CreateSession_Errors(t *testing.T) {
	ctx := context.Background()
	for _, amt := range []float64{0, -5, 0.001} {
		svc := newPaymentService(t, &fakeGateway{})
		if _, err := svc.CreateSession(ctx, amt, "d@x.io", ""); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %v: expected ErrInvalidAmount, got %v", amt, err)
		}
	}
	svc := newPaymentService(t, &fakeGateway{err: errors.New("connection reset")})
	if _, err := svc.CreateSession(ctx, 10, "d@x.io", ""); !errors.Is(err, ErrGateway) {
		t.Fatalf("expected ErrGateway, got %v", err)
	}
	svc.Gateway = nil
	if _, err := svc.CreateSession(ctx, 10, "d@x.io", ""); !errors.Is(err, ErrPaymentsDisabled) {
		t.Fatalf("expected ErrPaymentsDisabled, got %v", err)
	}
}

func TestPaymentService_Confirm_RecordsOnceAndReplays(t *testing.T) {
	g := &fakeGateway{sessions: map[string]*CheckoutSession{"cs_1": paidSession("cs_1", "pi_1", 2550)}}
	svc := newPaymentService(t, g)
	ctx := context.Background()

	first, err := svc.Confirm(ctx, "cs_1")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if first.Replayed || first.Insert == nil || !first.Insert.Acknowledged {
		t.Fatalf("first confirmation should insert: %+v", first)
	}
	d := first.Donation
	if d.Amount != 25.5 || d.TransactionID != "pi_1" || d.DonorEmail != "d@x.io" || d.DonorName != "Dina" {
		t.Fatalf("unexpected donation: %+v", d)
	}
	if !strings.HasPrefix(d.TrackingID, "BX-") || len(d.TrackingID) <= len("BX-") {
		t.Fatalf("tracking id = %q", d.TrackingID)
	}

	second, err := svc.Confirm(ctx, "cs_1")
	if err != nil {
		t.Fatalf("second Confirm: %v", err)
	}
	if !second.Replayed || second.Insert != nil || second.Donation.ID != d.ID || second.Donation.TrackingID != d.TrackingID {
		t.Fatalf("replay should return the stored record: %+v", second)
	}

	var n int64
	svc.DB.Model(&domain.FundDonation{}).Where("transaction_id = ?", "pi_1").Count(&n)
	if n != 1 {
		t.Fatalf("stored %d donations for pi_1, want 1", n)
	}
}

func TestPaymentService_Confirm_ConcurrentSingleRecord(t *testing.T) {
	g := &fakeGateway{sessions: map[string]*CheckoutSession{"cs_2": paidSession("cs_2", "pi_2", 1000)}}
	svc := newPaymentService(t, g)
	// One connection keeps SQLite's shared cache from reporting table locks.
	sqlDB, err := svc.DB.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	var wg sync.WaitGroup
	ids := make([]string, 8)
	errs := make([]error, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Confirm(context.Background(), "cs_2")
			errs[i] = err
			if err == nil {
				ids[i] = res.Donation.ID
			}
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("confirm %d: %v", i, err)
		}
		if ids[i] != ids[0] {
			t.Fatalf("confirm %d returned %s, want %s", i, ids[i], ids[0])
		}
	}
	var n int64
	svc.DB.Model(&domain.FundDonation{}).Count(&n)
	if n != 1 {
		t.Fatalf("stored %d donations, want 1", n)
	}
}

func TestPaymentService_Confirm_Errors(t *testing.T) {
	unpaid := paidSession("cs_u", "pi_u", 500)
	unpaid.PaymentStatus = "unpaid"
	g := &fakeGateway{sessions: map[string]*CheckoutSession{"cs_u": unpaid}}
	svc := newPaymentService(t, g)
	ctx := context.Background()

	if _, err := svc.Confirm(ctx, "  "); !errors.Is(err, ErrMissingSession) {
		t.Fatalf("expected ErrMissingSession, got %v", err)
	}
	if _, err := svc.Confirm(ctx, "cs_u"); !errors.Is(err, ErrPaymentNotPaid) {
		t.Fatalf("expected ErrPaymentNotPaid, got %v", err)
	}
	if _, err := svc.Confirm(ctx, "cs_missing"); !errors.Is(err, ErrGateway) {
		t.Fatalf("expected ErrGateway, got %v", err)
	}
	var n int64
	svc.DB.Model(&domain.FundDonation{}).Count(&n)
	if n != 0 {
		t.Fatalf("failed confirmations must not persist, got %d", n)
	}
}

func TestPaymentService_Confirm_FallbacksAndListFunds(t *testing.T) {
	s := paidSession("cs_3", "", 700)
	s.Metadata = nil
	g := &fakeGateway{sessions: map[string]*CheckoutSession{"cs_3": s}}
	svc := newPaymentService(t, g)
	ctx := context.Background()

	res, err := svc.Confirm(ctx, "cs_3")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if res.Donation.TransactionID != "cs_3" || res.Donation.DonorEmail != "fallback@x.io" {
		t.Fatalf("fallbacks not applied: %+v", res.Donation)
	}

	items, total, err := svc.ListFunds(ctx, 0, 10)
	if err != nil || total != 1 || len(items) != 1 || items[0].Amount != 7 {
		t.Fatalf("ListFunds: %+v total=%d err=%v", items, total, err)
	}
}
