// Package repo implements the record store. This file provides read-only
// aggregate queries used by the statistics endpoint.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/bloodx-backend/internal/domain"
)

// SumFundAmounts returns the total of all recorded fund donations, or 0 when
// none exist.
func SumFundAmounts(ctx context.Context, db *gorm.DB) (float64, error) {
	var row struct {
		Total float64
	}
	err := db.WithContext(ctx).
		Model(&domain.FundDonation{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&row).Error
	return row.Total, err
}

// CountUsersByRole returns the number of users holding role.
func CountUsersByRole(ctx context.Context, db *gorm.DB, role string) (int64, error) {
	return CountUsers(ctx, db, NewFilter().Eq("role", role))
}
