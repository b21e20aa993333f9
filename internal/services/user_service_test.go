package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/tbourn/bloodx-backend/internal/domain"
	"github.com/tbourn/bloodx-backend/internal/repo"
)

func TestUserService_Register_ForcesRoleAndStatus(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{DB: db}
	ctx := context.Background()

	for _, in := range []domain.User{
		{Email: "a@x.io", Role: domain.RoleAdmin, Status: domain.StatusBlocked},
		{Email: "b@x.io", Role: "Overlord"},
		{Email: " c@x.io ", ID: "client-chosen"},
	} {
		res, err := svc.Register(ctx, in)
		if err != nil {
			t.Fatalf("Register(%q): %v", in.Email, err)
		}
		if _, err := uuid.Parse(res.InsertedID); err != nil {
			t.Fatalf("server must assign a uuid, got %q", res.InsertedID)
		}
	}

	var users []domain.User
	if err := db.Find(&users).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	for _, u := range users {
		if u.Role != domain.RoleDonor || u.Status != domain.StatusActive || u.CreatedAt.IsZero() {
			t.Fatalf("registration must force Donor/Active: %+v", u)
		}
	}
	if _, err := svc.GetByEmail(ctx, "c@x.io"); err != nil {
		t.Fatalf("email should be trimmed: %v", err)
	}
}

func TestUserService_Register_Errors(t *testing.T) {
	svc := &UserService{DB: newTestDB(t)}
	ctx := context.Background()

	if _, err := svc.Register(ctx, domain.User{Email: "  "}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.Register(ctx, domain.User{Email: "dup@x.io"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Register(ctx, domain.User{Email: "dup@x.io"}); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestUserService_GetByEmailAndRoleOf(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{DB: db}
	ctx := context.Background()

	if _, err := svc.GetByEmail(ctx, "nobody@x.io"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	res, _ := svc.Register(ctx, domain.User{Email: "boss@x.io"})
	if _, err := svc.ChangeRole(ctx, res.InsertedID, domain.RoleAdmin); err != nil {
		t.Fatalf("ChangeRole: %v", err)
	}
	role, err := svc.RoleOf(ctx, "boss@x.io")
	if err != nil || role != domain.RoleAdmin {
		t.Fatalf("RoleOf = %q err=%v", role, err)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc := &UserService{DB: newTestDB(t)}
	ctx := context.Background()
	a, _ := svc.Register(ctx, domain.User{Email: "a@x.io", Name: "A", District: "Dhaka"})
	_, _ = svc.Register(ctx, domain.User{Email: "b@x.io"})

	if _, err := svc.UpdateProfile(ctx, "a@x.io", "not-a-uuid", repo.ProfileUpdate{Name: "x"}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	res, err := svc.UpdateProfile(ctx, "a@x.io", a.InsertedID, repo.ProfileUpdate{Name: "Anika", BloodGroup: "AB+"})
	if err != nil || res.MatchedCount != 1 || res.ModifiedCount != 1 {
		t.Fatalf("UpdateProfile: %+v err=%v", res, err)
	}
	u, _ := svc.GetByEmail(ctx, "a@x.io")
	if u.Name != "Anika" || u.BloodGroup != "AB+" || u.District != "Dhaka" {
		t.Fatalf("unexpected profile: %+v", u)
	}
	// Resending the current email is not a change.
	if _, err := svc.UpdateProfile(ctx, "a@x.io", a.InsertedID, repo.ProfileUpdate{Email: "a@x.io", Name: "Anika R"}); err != nil {
		t.Fatalf("same email: %v", err)
	}
}

func TestUserService_UpdateProfile_Ownership(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{DB: db}
	ctx := context.Background()
	a, _ := svc.Register(ctx, domain.User{Email: "a@x.io", Name: "A"})
	b, _ := svc.Register(ctx, domain.User{Email: "b@x.io"})
	adm, _ := svc.Register(ctx, domain.User{Email: "root@x.io"})
	if _, err := svc.ChangeRole(ctx, adm.InsertedID, domain.RoleAdmin); err != nil {
		t.Fatalf("promote: %v", err)
	}

	cases := []struct {
		name   string
		caller string
		id     string
		p      repo.ProfileUpdate
		want   error
	}{
		{"stranger edits another", "b@x.io", a.InsertedID, repo.ProfileUpdate{Name: "x"}, ErrForbidden},
		{"unregistered caller", "ghost@x.io", a.InsertedID, repo.ProfileUpdate{Name: "x"}, ErrForbidden},
		{"takeover of admin", "ghost@x.io", adm.InsertedID, repo.ProfileUpdate{Email: "ghost@x.io"}, ErrForbidden},
		{"anonymous", "", a.InsertedID, repo.ProfileUpdate{Name: "x"}, ErrForbidden},
		{"owner moves email", "a@x.io", a.InsertedID, repo.ProfileUpdate{Email: "new@x.io"}, ErrForbidden},
		{"missing user", "root@x.io", uuid.NewString(), repo.ProfileUpdate{Name: "x"}, ErrUserNotFound},
		{"admin hits duplicate", "root@x.io", a.InsertedID, repo.ProfileUpdate{Email: "b@x.io"}, ErrDuplicateUser},
		{"admin edits another", "root@x.io", b.InsertedID, repo.ProfileUpdate{Name: "Bina"}, nil},
		{"admin changes email", "root@x.io", a.InsertedID, repo.ProfileUpdate{Email: "a2@x.io"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.UpdateProfile(ctx, tc.caller, tc.id, tc.p); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	if role, err := svc.RoleOf(ctx, "root@x.io"); err != nil || role != domain.RoleAdmin {
		t.Fatalf("admin record changed: %q %v", role, err)
	}
	if _, err := svc.GetByEmail(ctx, "a2@x.io"); err != nil {
		t.Fatalf("admin email change not stored: %v", err)
	}
}

func TestUserService_ChangeStatusAndRole_Validation(t *testing.T) {
	svc := &UserService{DB: newTestDB(t)}
	ctx := context.Background()
	res, _ := svc.Register(ctx, domain.User{Email: "u@x.io"})

	cases := []struct {
		name string
		run  func() error
		want error
	}{
		{"status bad id", func() error { _, err := svc.ChangeStatus(ctx, "42", domain.StatusBlocked); return err }, ErrInvalidID},
		{"status bad value", func() error { _, err := svc.ChangeStatus(ctx, res.InsertedID, "Gone"); return err }, ErrInvalidStatus},
		{"role bad value", func() error { _, err := svc.ChangeRole(ctx, res.InsertedID, "root"); return err }, ErrInvalidRole},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}

	upd, err := svc.ChangeStatus(ctx, res.InsertedID, domain.StatusBlocked)
	if err != nil || upd.ModifiedCount != 1 {
		t.Fatalf("ChangeStatus: %+v err=%v", upd, err)
	}
	upd, err = svc.ChangeStatus(ctx, uuid.NewString(), domain.StatusBlocked)
	if err != nil || upd.MatchedCount != 0 {
		t.Fatalf("unknown id should match nothing: %+v err=%v", upd, err)
	}
}

func TestUserService_ListPage(t *testing.T) {
	svc := &UserService{DB: newTestDB(t)}
	ctx := context.Background()
	var ids []string
	for _, e := range []string{"a@x.io", "b@x.io", "c@x.io"} {
		res, _ := svc.Register(ctx, domain.User{Email: e})
		ids = append(ids, res.InsertedID)
	}
	_, _ = svc.ChangeStatus(ctx, ids[0], domain.StatusBlocked)

	items, total, err := svc.ListPage(ctx, domain.StatusActive, 0, 1)
	if err != nil || total != 2 || len(items) != 1 {
		t.Fatalf("ListPage: len=%d total=%d err=%v", len(items), total, err)
	}
	_, total, _ = svc.ListPage(ctx, "", 5, 10)
	if total != 3 {
		t.Fatalf("total must ignore window, got %d", total)
	}
	if _, _, err := svc.ListPage(ctx, "Deleted", 0, 0); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUserService_SearchDonors_CaseInsensitive(t *testing.T) {
	svc := &UserService{DB: newTestDB(t)}
	ctx := context.Background()
	_, _ = svc.Register(ctx, domain.User{Email: "a@x.io", Name: "A", District: "dhaka", Upazila: "Savar", BloodGroup: "A+"})
	_, _ = svc.Register(ctx, domain.User{Email: "b@x.io", Name: "B", District: "Sylhet", BloodGroup: "A+"})
	blocked, _ := svc.Register(ctx, domain.User{Email: "c@x.io", Name: "C", District: "Dhaka", BloodGroup: "A+"})
	_, _ = svc.ChangeStatus(ctx, blocked.InsertedID, domain.StatusBlocked)

	got, err := svc.SearchDonors(ctx, DonorQuery{District: "Dhaka", BloodGroup: "A+"})
	if err != nil {
		t.Fatalf("SearchDonors: %v", err)
	}
	if len(got) != 1 || got[0].Email != "a@x.io" {
		t.Fatalf("expected only the active dhaka donor, got %+v", got)
	}
	got, _ = svc.SearchDonors(ctx, DonorQuery{Upazila: "sav"})
	if len(got) != 1 {
		t.Fatalf("partial upazila match failed: %+v", got)
	}
	got, _ = svc.SearchDonors(ctx, DonorQuery{})
	if len(got) != 2 {
		t.Fatalf("empty query should list active users, got %d", len(got))
	}
}
