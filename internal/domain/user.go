// Package domain defines the persistence models for donors, donation
// requests and fund donations. These types are mapped with GORM and are
// serialized with the camelCase wire names the web client expects.
package domain

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// User roles.
const (
	RoleDonor     = "Donor"
	RoleVolunteer = "Volunteer"
	RoleAdmin     = "Admin"
)

// User statuses.
const (
	StatusActive  = "Active"
	StatusBlocked = "Blocked"
)

// User is a registered account. Email is the principal identity produced by
// the identity verifier and is unique across users.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Email: unique login identity.
//   - Role: one of Donor, Volunteer, Admin (Donor on registration).
//   - Status: Active or Blocked (Active on registration).
//   - District / Upazila: location used by donor search.
//   - BloodGroup: e.g. "A+", "O-".
//   - DistrictKey / UpazilaKey: FoldKey of District / Upazila, maintained by
//     BeforeSave and matched by donor search. Never serialized.
type User struct {
	ID         string    `json:"_id"        gorm:"type:char(36);primaryKey"`
	Email      string    `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex"`
	Name       string    `json:"name"       gorm:"type:varchar(255)"`
	Avatar     string    `json:"avatar,omitempty" gorm:"type:varchar(1024)"`
	Role       string    `json:"role"       gorm:"type:varchar(16);not null;index;check:role IN ('Donor','Volunteer','Admin')"`
	Status     string    `json:"status"     gorm:"type:varchar(16);not null;index;check:status IN ('Active','Blocked')"`
	District   string    `json:"district"   gorm:"type:varchar(128)"`
	Upazila    string    `json:"upazila"    gorm:"type:varchar(128)"`
	BloodGroup string    `json:"bloodGroup" gorm:"type:varchar(8);index"`
	CreatedAt  time.Time `json:"createdAt"`

	DistrictKey string `json:"-" gorm:"type:varchar(128);index"`
	UpazilaKey  string `json:"-" gorm:"type:varchar(128)"`
}

// BeforeSave refreshes the folded search keys.
func (u *User) BeforeSave(*gorm.DB) error {
	u.DistrictKey = FoldKey(u.District)
	u.UpazilaKey = FoldKey(u.Upazila)
	return nil
}

// FoldKey trims s and applies Unicode case folding, so "ÉVORA" and "évora"
// share a key. Stored keys and search input must both go through it.
func FoldKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	switch r {
	case RoleDonor, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

// ValidUserStatus reports whether s is a known account status.
func ValidUserStatus(s string) bool {
	return s == StatusActive || s == StatusBlocked
}
