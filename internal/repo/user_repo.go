// Package repo implements the record store for users, donation requests and
// fund donations. This file provides repository functions for User records.
//
// Functions are thin: no business rules, only persistence and query
// composition. Lookups return ErrNotFound on a miss; inserts map unique index
// violations to ErrDuplicate; updates and deletes report store
// acknowledgments rather than failing on a miss.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/bloodx-backend/internal/domain"
)

// CreateUser inserts u, assigning an ID and CreatedAt when unset.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) (domain.InsertResult, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return domain.InsertResult{}, ErrDuplicate
		}
		return domain.InsertResult{}, err
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: u.ID}, nil
}

// GetUserByEmail fetches the user registered under email.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser fetches a user by primary key.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ProfileUpdate lists the self-service profile columns. Blank fields are left
// untouched.
type ProfileUpdate struct {
	Name       string
	Email      string
	Avatar     string
	District   string
	Upazila    string
	BloodGroup string
}

func (p ProfileUpdate) assignments() []assignment {
	var out []assignment
	add := func(col, v string) {
		if v != "" {
			out = append(out, assignment{col, v})
		}
	}
	add("name", p.Name)
	add("email", p.Email)
	add("avatar", p.Avatar)
	add("district", p.District)
	add("district_key", domain.FoldKey(p.District))
	add("upazila", p.Upazila)
	add("upazila_key", domain.FoldKey(p.Upazila))
	add("blood_group", p.BloodGroup)
	return out
}

// UpdateUserProfile applies the non-blank fields of p to user id.
// A changed email that collides with another account yields ErrDuplicate.
func UpdateUserProfile(ctx context.Context, db *gorm.DB, id string, p ProfileUpdate) (domain.UpdateResult, error) {
	res, err := updateByID(ctx, db, &domain.User{}, id, p.assignments())
	if isDuplicate(err) {
		return domain.UpdateResult{}, ErrDuplicate
	}
	return res, err
}

// SetUserStatus sets the account status of user id.
func SetUserStatus(ctx context.Context, db *gorm.DB, id, status string) (domain.UpdateResult, error) {
	return updateByID(ctx, db, &domain.User{}, id, []assignment{{"status", status}})
}

// SetUserRole sets the role of user id.
func SetUserRole(ctx context.Context, db *gorm.DB, id, role string) (domain.UpdateResult, error) {
	return updateByID(ctx, db, &domain.User{}, id, []assignment{{"role", role}})
}

// ListUsersPage returns users matching f, newest first, windowed by skip/limit.
func ListUsersPage(ctx context.Context, db *gorm.DB, f *Filter, skip, limit int) ([]domain.User, error) {
	out := []domain.User{}
	q := f.Apply(db.WithContext(ctx).Model(&domain.User{})).Order("created_at desc")
	err := window(q, skip, limit).Find(&out).Error
	return out, err
}

// CountUsers returns the number of users matching f.
func CountUsers(ctx context.Context, db *gorm.DB, f *Filter) (int64, error) {
	var n int64
	err := f.Apply(db.WithContext(ctx).Model(&domain.User{})).Count(&n).Error
	return n, err
}

// SearchDonors returns users matching f ordered by name.
func SearchDonors(ctx context.Context, db *gorm.DB, f *Filter) ([]domain.User, error) {
	out := []domain.User{}
	err := f.Apply(db.WithContext(ctx).Model(&domain.User{})).
		Order("name asc").
		Find(&out).Error
	return out, err
}
