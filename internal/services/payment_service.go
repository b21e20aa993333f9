// Package services – PaymentService
//
// This file implements the fund-payment workflow. CreateSession asks the
// payment gateway for a hosted checkout page; nothing is stored at that
// point. Confirm retrieves the session and, once the gateway reports it as
// paid, records exactly one FundDonation per payment transaction:
//
//	session created ──paid──▶ paid, pending record ──insert──▶ recorded
//	       │                                                      ▲
//	       └──unpaid──▶ ErrPaymentNotPaid       re-confirm ───────┘ (replayed)
//
// The unique index on the transaction id arbitrates concurrent confirmations;
// the loser re-reads and returns the winner's record.
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/bloodx-backend/internal/domain"
	"github.com/tbourn/bloodx-backend/internal/repo"
)

// PaymentStatusPaid is the gateway payment status of a completed session.
const PaymentStatusPaid = "paid"

// Session metadata keys carrying the donor identity through checkout.
const (
	MetaDonorEmail = "donorEmail"
	MetaDonorName  = "donorName"
)

// CheckoutRequest describes a single-item hosted checkout.
type CheckoutRequest struct {
	AmountMinor int64 // amount in minor currency units (cents)
	Currency    string
	ProductName string
	DonorEmail  string
	DonorName   string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// CheckoutSession is the gateway's view of a checkout session.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentStatus   string
	AmountTotal     int64 // minor units
	PaymentIntentID string
	CustomerEmail   string
	Metadata        map[string]string
}

// PaymentGateway creates and retrieves hosted checkout sessions.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
}

// ConfirmResult is the outcome of a paid confirmation. Insert is nil when the
// donation had already been recorded.
type ConfirmResult struct {
	Donation *domain.FundDonation
	Insert   *domain.InsertResult
	Replayed bool
}

var (
	paymentConfirmations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bloodx_payment_confirmations_total",
			Help: "Payment confirmations by outcome (recorded, replayed, unpaid, error).",
		},
		[]string{"outcome"},
	)
	fundDonationsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bloodx_fund_donations_recorded_total",
			Help: "Fund donations inserted after a paid confirmation.",
		},
	)
)

func init() {
	prometheus.MustRegister(paymentConfirmations, fundDonationsRecorded)
}

// PaymentService runs checkout and confirmation against a PaymentGateway.
type PaymentService struct {
	DB      *gorm.DB
	Gateway PaymentGateway // nil disables checkout and confirmation

	Currency       string
	ProductName    string
	SiteDomain     string // base for success/cancel redirects, no trailing slash
	TrackingPrefix string
}

// CreateSession starts a hosted checkout for amount major currency units.
func (s *PaymentService) CreateSession(ctx context.Context, amount float64, donorEmail, donorName string) (*CheckoutSession, error) {
	if s.Gateway == nil {
		return nil, ErrPaymentsDisabled
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, ErrInvalidAmount
	}
	minor := int64(math.Round(amount * 100))
	if minor <= 0 {
		return nil, ErrInvalidAmount
	}
	donorEmail = strings.TrimSpace(donorEmail)
	donorName = strings.TrimSpace(donorName)

	sess, err := s.Gateway.CreateCheckoutSession(ctx, CheckoutRequest{
		AmountMinor: minor,
		Currency:    s.Currency,
		ProductName: s.ProductName,
		DonorEmail:  donorEmail,
		DonorName:   donorName,
		SuccessURL:  s.SiteDomain + "/payment-success?sessionId={CHECKOUT_SESSION_ID}",
		CancelURL:   s.SiteDomain + "/payment-cancelled",
		Metadata: map[string]string{
			MetaDonorEmail: donorEmail,
			MetaDonorName:  donorName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return sess, nil
}

// Confirm records the fund donation for a paid checkout session. Confirming
// the same payment again returns the stored record with Replayed set.
func (s *PaymentService) Confirm(ctx context.Context, sessionID string) (res ConfirmResult, err error) {
	tr := otel.Tracer("services/PaymentService")
	ctx, span := tr.Start(ctx, "Confirm",
		trace.WithAttributes(attribute.String("checkout.session_id", sessionID)),
	)
	defer func() {
		outcome := "recorded"
		switch {
		case errors.Is(err, ErrPaymentNotPaid):
			outcome = "unpaid"
		case err != nil:
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case res.Replayed:
			outcome = "replayed"
		}
		paymentConfirmations.WithLabelValues(outcome).Inc()
		span.SetAttributes(attribute.String("confirm.outcome", outcome))
		span.End()
	}()

	if s.Gateway == nil {
		return ConfirmResult{}, ErrPaymentsDisabled
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ConfirmResult{}, ErrMissingSession
	}

	sess, err := s.Gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return ConfirmResult{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if sess.PaymentStatus != PaymentStatusPaid {
		return ConfirmResult{}, ErrPaymentNotPaid
	}

	txID := sess.PaymentIntentID
	if txID == "" {
		txID = sess.ID
	}
	span.SetAttributes(attribute.String("payment.transaction_id", txID))

	if existing, err := repo.GetFundDonationByTransaction(ctx, s.DB, txID); err == nil {
		return ConfirmResult{Donation: existing, Replayed: true}, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return ConfirmResult{}, err
	}

	email := sess.Metadata[MetaDonorEmail]
	if email == "" {
		email = sess.CustomerEmail
	}
	fd := &domain.FundDonation{
		DonorEmail:    email,
		DonorName:     sess.Metadata[MetaDonorName],
		Amount:        float64(sess.AmountTotal) / 100,
		TransactionID: txID,
		TrackingID:    s.TrackingPrefix + uuid.NewString(),
		Date:          timeNow(),
	}
	ins, err := repo.CreateFundDonation(ctx, s.DB, fd)
	if errors.Is(err, repo.ErrDuplicate) {
		existing, gerr := repo.GetFundDonationByTransaction(ctx, s.DB, txID)
		if gerr != nil {
			return ConfirmResult{}, gerr
		}
		return ConfirmResult{Donation: existing, Replayed: true}, nil
	}
	if err != nil {
		return ConfirmResult{}, err
	}
	fundDonationsRecorded.Inc()
	return ConfirmResult{Donation: fd, Insert: &ins}, nil
}

// ListFunds returns the public fund summaries, newest first, and the total
// number of recorded donations.
func (s *PaymentService) ListFunds(ctx context.Context, skip, limit int) ([]domain.FundSummary, int64, error) {
	total, err := repo.CountFundDonations(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.FundSummary{}, 0, nil
	}
	items, err := repo.ListFundSummariesPage(ctx, s.DB, clampSkip(skip), limit)
	return items, total, err
}
