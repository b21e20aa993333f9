// Package handlers exposes the REST endpoints of the blood-donation API.
//
// Handlers are transport-thin: they bind and validate input, call the
// application services and translate results and errors into HTTP responses.
// Authorization is enforced by the router's guards before a handler runs.
package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/bloodx-backend/internal/domain"
	"github.com/tbourn/bloodx-backend/internal/http/middleware"
	"github.com/tbourn/bloodx-backend/internal/repo"
	"github.com/tbourn/bloodx-backend/internal/services"
)

// UserService defines the user operations consumed by the handlers.
type UserService interface {
	Register(ctx context.Context, u domain.User) (domain.InsertResult, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, caller, id string, p repo.ProfileUpdate) (domain.UpdateResult, error)
	ListPage(ctx context.Context, status string, skip, limit int) ([]domain.User, int64, error)
	ChangeStatus(ctx context.Context, id, status string) (domain.UpdateResult, error)
	ChangeRole(ctx context.Context, id, role string) (domain.UpdateResult, error)
	SearchDonors(ctx context.Context, q services.DonorQuery) ([]domain.User, error)
}

// DonationRequestService defines the donation-request workflow.
type DonationRequestService interface {
	ListPage(ctx context.Context, q services.RequestQuery) ([]domain.DonationRequest, int64, error)
	Get(ctx context.Context, id string) (*domain.DonationRequest, error)
	ListByRequester(ctx context.Context, email string) ([]domain.DonationRequest, error)
	Create(ctx context.Context, r domain.DonationRequest) (domain.InsertResult, error)
	CreateIdempotent(ctx context.Context, principal, scope, key string, r domain.DonationRequest) (domain.InsertResult, bool, error)
	UpdateDetails(ctx context.Context, id string, d domain.RequestDetails) (domain.UpdateResult, error)
	UpdateStatus(ctx context.Context, id, status string) (domain.UpdateResult, error)
	Accept(ctx context.Context, id, donorName, donorEmail, status string) (domain.UpdateResult, error)
	Delete(ctx context.Context, id string) (domain.DeleteResult, error)
}

// PaymentService defines checkout, confirmation and the public fund list.
type PaymentService interface {
	CreateSession(ctx context.Context, amount float64, donorEmail, donorName string) (*services.CheckoutSession, error)
	Confirm(ctx context.Context, sessionID string) (services.ConfirmResult, error)
	ListFunds(ctx context.Context, skip, limit int) ([]domain.FundSummary, int64, error)
}

// StatsService returns the dashboard aggregates.
type StatsService interface {
	Get(ctx context.Context) (services.Stats, error)
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	users    UserService
	requests DonationRequestService
	payments PaymentService
	stats    StatsService
}

// New constructs Handlers bound to the given services.
func New(users UserService, requests DonationRequestService, payments PaymentService, stats StatsService) *Handlers {
	return &Handlers{users: users, requests: requests, payments: payments, stats: stats}
}

// principal returns the verified caller email, or "" on public routes.
func principal(c *gin.Context) string {
	p, _ := middleware.PrincipalFrom(c)
	return p
}

// firstSet returns v trimmed, or fallback when v is blank.
func firstSet(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}
