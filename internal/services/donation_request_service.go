// Package services – DonationRequestService
//
// This file implements the donation-request workflow: filtered listing with
// counts, single and per-requester lookups, creation (optionally keyed by an
// Idempotency-Key), detail edits, status changes, donor acceptance and
// deletion. Mutations report the store acknowledgment verbatim and do not
// police status transitions.
//
// Observability: listing and idempotent creation are traced.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/bloodx-backend/internal/domain"
	"github.com/tbourn/bloodx-backend/internal/repo"
)

// timeNow is the clock used for server-stamped timestamps.
var timeNow = func() time.Time { return time.Now().UTC() }

// errReplayed aborts the create transaction when another request already
// claimed the idempotency key.
var errReplayed = errors.New("idempotency key already used")

// DonationRequestService coordinates donation-request persistence.
type DonationRequestService struct {
	DB *gorm.DB
	// IdempotencyTTL bounds how long a key replays the original insert.
	IdempotencyTTL time.Duration
}

// RequestQuery filters and windows a donation-request listing.
// Limit <= 0 returns every matching request.
type RequestQuery struct {
	RequesterEmail string
	Status         string
	Skip           int
	Limit          int
}

// ListPage returns requests matching q, newest first, and the number of
// requests matching the filter regardless of the window.
func (s *DonationRequestService) ListPage(ctx context.Context, q RequestQuery) ([]domain.DonationRequest, int64, error) {
	tr := otel.Tracer("services/DonationRequestService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.String("filter.status", q.Status),
			attribute.Bool("filter.requester", q.RequesterEmail != ""),
			attribute.Int("skip", q.Skip),
			attribute.Int("limit", q.Limit),
		),
	)
	defer span.End()

	f := repo.NewFilter().
		Eq("requester_email", q.RequesterEmail).
		Eq("donation_status", q.Status)

	total, err := repo.CountDonationRequests(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.DonationRequest{}, 0, nil
	}
	items, err := repo.ListDonationRequestsPage(ctx, s.DB, f, clampSkip(q.Skip), q.Limit)
	return items, total, err
}

// Get returns request id.
func (s *DonationRequestService) Get(ctx context.Context, id string) (*domain.DonationRequest, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	r, err := repo.GetDonationRequest(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrRequestNotFound
	}
	return r, err
}

// ListByRequester returns every request created by email, newest first.
func (s *DonationRequestService) ListByRequester(ctx context.Context, email string) ([]domain.DonationRequest, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	return repo.ListDonationRequestsByRequester(ctx, s.DB, email)
}

// Create stores r with a server-assigned id and creation time. A missing
// status defaults to pending.
func (s *DonationRequestService) Create(ctx context.Context, r domain.DonationRequest) (domain.InsertResult, error) {
	if err := prepareRequest(&r); err != nil {
		return domain.InsertResult{}, err
	}
	return repo.CreateDonationRequest(ctx, s.DB, &r)
}

// CreateIdempotent behaves like Create but records (principal, scope, key).
// Repeating the call with the same tuple before the TTL elapses returns the
// original acknowledgment with replayed set, and stores nothing new.
func (s *DonationRequestService) CreateIdempotent(ctx context.Context, principal, scope, key string, r domain.DonationRequest) (res domain.InsertResult, replayed bool, err error) {
	tr := otel.Tracer("services/DonationRequestService")
	ctx, span := tr.Start(ctx, "CreateIdempotent",
		trace.WithAttributes(attribute.String("idempotency.scope", scope)),
	)
	defer func() {
		span.SetAttributes(attribute.Bool("idempotency.replayed", replayed))
		span.End()
	}()

	if prev, ok, err := s.lookupReplay(ctx, principal, scope, key); err != nil || ok {
		return prev, ok, err
	}
	if err := prepareRequest(&r); err != nil {
		return domain.InsertResult{}, false, err
	}

	ttl := s.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ins, err := repo.CreateDonationRequest(ctx, tx, &r)
		if err != nil {
			return err
		}
		if _, err := repo.CreateIdempotency(ctx, tx, principal, scope, key, ins.InsertedID, 201, ttl); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return errReplayed
			}
			return err
		}
		res = ins
		return nil
	})
	if errors.Is(err, errReplayed) {
		// Lost the race to a concurrent request with the same key.
		prev, ok, lerr := s.lookupReplay(ctx, principal, scope, key)
		if lerr != nil {
			return domain.InsertResult{}, false, lerr
		}
		if ok {
			return prev, true, nil
		}
	}
	if err != nil {
		return domain.InsertResult{}, false, err
	}
	return res, false, nil
}

func (s *DonationRequestService) lookupReplay(ctx context.Context, principal, scope, key string) (domain.InsertResult, bool, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, principal, scope, key, timeNow())
	if errors.Is(err, repo.ErrNotFound) {
		return domain.InsertResult{}, false, nil
	}
	if err != nil {
		return domain.InsertResult{}, false, err
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: rec.ResourceID}, true, nil
}

// UpdateDetails overwrites the requester-editable fields of request id.
func (s *DonationRequestService) UpdateDetails(ctx context.Context, id string, d domain.RequestDetails) (domain.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return domain.UpdateResult{}, err
	}
	return repo.UpdateDonationRequestDetails(ctx, s.DB, id, d)
}

// UpdateStatus sets only the status of request id.
func (s *DonationRequestService) UpdateStatus(ctx context.Context, id, status string) (domain.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return domain.UpdateResult{}, err
	}
	if !domain.ValidDonationStatus(status) {
		return domain.UpdateResult{}, ErrInvalidStatus
	}
	return repo.UpdateDonationStatus(ctx, s.DB, id, status)
}

// Accept assigns a donor to request id and sets its status. A blank status
// means inprogress.
func (s *DonationRequestService) Accept(ctx context.Context, id, donorName, donorEmail, status string) (domain.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return domain.UpdateResult{}, err
	}
	donorEmail = strings.TrimSpace(donorEmail)
	if donorEmail == "" {
		return domain.UpdateResult{}, ErrInvalidEmail
	}
	if status == "" {
		status = domain.DonationInProgress
	}
	if !domain.ValidDonationStatus(status) {
		return domain.UpdateResult{}, ErrInvalidStatus
	}
	return repo.AcceptDonationRequest(ctx, s.DB, id, strings.TrimSpace(donorName), donorEmail, status)
}

// Delete removes request id.
func (s *DonationRequestService) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	if err := checkID(id); err != nil {
		return domain.DeleteResult{}, err
	}
	return repo.DeleteDonationRequest(ctx, s.DB, id)
}

func prepareRequest(r *domain.DonationRequest) error {
	r.RequesterEmail = strings.TrimSpace(r.RequesterEmail)
	if r.RequesterEmail == "" {
		return ErrInvalidEmail
	}
	if r.DonationStatus == "" {
		r.DonationStatus = domain.DonationPending
	}
	if !domain.ValidDonationStatus(r.DonationStatus) {
		return ErrInvalidStatus
	}
	r.ID = ""
	r.CreatedAt = timeNow()
	return nil
}
