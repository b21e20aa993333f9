// Package services – UserService
//
// This file implements UserService, which owns registration, self-service
// profile edits, administrative role/status changes and the public donor
// search. Registration ignores any client-supplied role or status.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/bloodx-backend/internal/domain"
	"github.com/tbourn/bloodx-backend/internal/repo"
)

// UserService coordinates user persistence.
type UserService struct {
	DB *gorm.DB
}

// DonorQuery narrows a donor search. Blank fields are ignored; district and
// upazila match case-insensitively on substrings, blood group matches exactly.
type DonorQuery struct {
	District   string
	Upazila    string
	BloodGroup string
}

// Register stores u as a new active donor. Role, Status and CreatedAt are
// always set by the server.
func (s *UserService) Register(ctx context.Context, u domain.User) (domain.InsertResult, error) {
	u.Email = strings.TrimSpace(u.Email)
	if u.Email == "" {
		return domain.InsertResult{}, ErrInvalidEmail
	}
	u.ID = ""
	u.Role = domain.RoleDonor
	u.Status = domain.StatusActive
	u.CreatedAt = timeNow()

	res, err := repo.CreateUser(ctx, s.DB, &u)
	if errors.Is(err, repo.ErrDuplicate) {
		return domain.InsertResult{}, ErrDuplicateUser
	}
	return res, err
}

// GetByEmail returns the user registered under email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := repo.GetUserByEmail(ctx, s.DB, strings.TrimSpace(email))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// RoleOf returns the stored role for email. It backs the admin guard.
func (s *UserService) RoleOf(ctx context.Context, email string) (string, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

// UpdateProfile applies the non-blank profile fields to user id on behalf of
// caller, the verified principal.
//
// Ownership:
//   - the owner (stored email equals caller) may edit their own record, but
//     not move it to another email
//   - an Admin may edit any record, email included
//   - anyone else gets ErrForbidden
func (s *UserService) UpdateProfile(ctx context.Context, caller, id string, p repo.ProfileUpdate) (domain.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return domain.UpdateResult{}, err
	}
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return domain.UpdateResult{}, ErrForbidden
	}
	target, err := repo.GetUser(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return domain.UpdateResult{}, ErrUserNotFound
	}
	if err != nil {
		return domain.UpdateResult{}, err
	}

	admin := false
	if !strings.EqualFold(target.Email, caller) {
		role, err := s.RoleOf(ctx, caller)
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return domain.UpdateResult{}, err
		}
		if role != domain.RoleAdmin {
			return domain.UpdateResult{}, ErrForbidden
		}
		admin = true
	}

	p.Email = strings.TrimSpace(p.Email)
	if p.Email != "" && !strings.EqualFold(p.Email, target.Email) && !admin {
		return domain.UpdateResult{}, ErrForbidden
	}
	res, err := repo.UpdateUserProfile(ctx, s.DB, id, p)
	if errors.Is(err, repo.ErrDuplicate) {
		return domain.UpdateResult{}, ErrDuplicateUser
	}
	return res, err
}

// ListPage returns users, optionally filtered by status, newest first,
// together with the number of users matching the filter.
func (s *UserService) ListPage(ctx context.Context, status string, skip, limit int) ([]domain.User, int64, error) {
	tr := otel.Tracer("services/UserService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.String("filter.status", status),
			attribute.Int("skip", skip),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	if status != "" && !domain.ValidUserStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	f := repo.NewFilter().Eq("status", status)

	total, err := repo.CountUsers(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.User{}, 0, nil
	}
	items, err := repo.ListUsersPage(ctx, s.DB, f, clampSkip(skip), limit)
	return items, total, err
}

// ChangeStatus sets the account status of user id.
func (s *UserService) ChangeStatus(ctx context.Context, id, status string) (domain.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return domain.UpdateResult{}, err
	}
	if !domain.ValidUserStatus(status) {
		return domain.UpdateResult{}, ErrInvalidStatus
	}
	return repo.SetUserStatus(ctx, s.DB, id, status)
}

// ChangeRole sets the role of user id.
func (s *UserService) ChangeRole(ctx context.Context, id, role string) (domain.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return domain.UpdateResult{}, err
	}
	if !domain.ValidRole(role) {
		return domain.UpdateResult{}, ErrInvalidRole
	}
	return repo.SetUserRole(ctx, s.DB, id, role)
}

// SearchDonors returns active users matching q, ordered by name.
func (s *UserService) SearchDonors(ctx context.Context, q DonorQuery) ([]domain.User, error) {
	f := repo.NewFilter().
		Eq("status", domain.StatusActive).
		ContainsFold("district_key", q.District).
		ContainsFold("upazila_key", q.Upazila).
		Eq("blood_group", q.BloodGroup)
	return repo.SearchDonors(ctx, s.DB, f)
}

// checkID rejects identifiers that are not UUIDs before they reach the store.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

func clampSkip(skip int) int {
	if skip < 0 {
		return 0
	}
	return skip
}
