package domain

import "time"

// FundDonation is a monetary contribution recorded once its checkout session
// is confirmed as paid. TransactionID is the gateway payment intent and is
// unique, so confirming the same payment twice cannot create two rows.
type FundDonation struct {
	ID            string    `json:"_id"           gorm:"type:char(36);primaryKey"`
	DonorEmail    string    `json:"email"         gorm:"type:varchar(255);not null;index"`
	DonorName     string    `json:"name"          gorm:"type:varchar(255)"`
	Amount        float64   `json:"amount"        gorm:"not null"`
	TransactionID string    `json:"transactionId" gorm:"type:varchar(255);not null;uniqueIndex"`
	TrackingID    string    `json:"trackingId"    gorm:"type:varchar(64);not null;uniqueIndex"`
	Date          time.Time `json:"date"          gorm:"not null;index"`
}

// TableName returns the database table name for FundDonation.
func (FundDonation) TableName() string { return "fund_donations" }

// FundSummary is the public projection of a FundDonation.
type FundSummary struct {
	Name   string    `json:"name"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}
