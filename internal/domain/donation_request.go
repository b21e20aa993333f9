package domain

import "time"

// Donation request statuses.
const (
	DonationPending    = "pending"
	DonationInProgress = "inprogress"
	DonationDone       = "done"
	DonationCanceled   = "canceled"
)

// ValidDonationStatus reports whether s is a known donation status.
func ValidDonationStatus(s string) bool {
	switch s {
	case DonationPending, DonationInProgress, DonationDone, DonationCanceled:
		return true
	}
	return false
}

// DonationRequest is a recipient's solicitation for blood. It is created by a
// requester and optionally accepted by a donor, whose identity is then stored
// alongside the request.
type DonationRequest struct {
	ID                string    `json:"_id"               gorm:"type:char(36);primaryKey"`
	RequesterName     string    `json:"requesterName"     gorm:"type:varchar(255)"`
	RequesterEmail    string    `json:"requesterEmail"    gorm:"type:varchar(255);not null;index"`
	RecipientName     string    `json:"recipientName"     gorm:"type:varchar(255)"`
	RecipientDistrict string    `json:"recipientDistrict" gorm:"type:varchar(128)"`
	RecipientUpazila  string    `json:"recipientUpazila"  gorm:"type:varchar(128)"`
	HospitalName      string    `json:"hospitalName"      gorm:"type:varchar(255)"`
	FullAddress       string    `json:"fullAddress"       gorm:"type:text"`
	BloodGroup        string    `json:"bloodGroup"        gorm:"type:varchar(8)"`
	DonationDate      string    `json:"donationDate"      gorm:"type:varchar(32)"`
	DonationTime      string    `json:"donationTime"      gorm:"type:varchar(32)"`
	RequestMessage    string    `json:"requestMessage"    gorm:"type:text"`
	DonationStatus    string    `json:"donationStatus"    gorm:"type:varchar(16);not null;index"`
	DonorName         string    `json:"donorName,omitempty"  gorm:"type:varchar(255)"`
	DonorEmail        string    `json:"donorEmail,omitempty" gorm:"type:varchar(255);index"`
	CreatedAt         time.Time `json:"createdAt"         gorm:"index"`
}

// TableName returns the database table name for DonationRequest.
func (DonationRequest) TableName() string { return "donation_requests" }

// RequestDetails holds the requester-editable fields of a DonationRequest.
type RequestDetails struct {
	BloodGroup        string `json:"bloodGroup"`
	DonationDate      string `json:"donationDate"`
	DonationTime      string `json:"donationTime"`
	FullAddress       string `json:"fullAddress"`
	HospitalName      string `json:"hospitalName"`
	RecipientDistrict string `json:"recipientDistrict"`
	RecipientName     string `json:"recipientName"`
	RecipientUpazila  string `json:"recipientUpazila"`
	RequestMessage    string `json:"requestMessage"`
}
