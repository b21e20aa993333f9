package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/bloodx-backend/internal/domain"
)

// GetFundDonationByTransaction fetches the donation recorded for a gateway
// transaction, or ErrNotFound.
func GetFundDonationByTransaction(ctx context.Context, db *gorm.DB, txID string) (*domain.FundDonation, error) {
	var f domain.FundDonation
	err := db.WithContext(ctx).Where("transaction_id = ?", txID).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateFundDonation inserts f. A second insert for the same transaction
// returns ErrDuplicate.
func CreateFundDonation(ctx context.Context, db *gorm.DB, f *domain.FundDonation) (domain.InsertResult, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		if isDuplicate(err) {
			return domain.InsertResult{}, ErrDuplicate
		}
		return domain.InsertResult{}, err
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: f.ID}, nil
}

// ListFundSummariesPage returns the public projection of fund donations,
// newest first, windowed by skip/limit.
func ListFundSummariesPage(ctx context.Context, db *gorm.DB, skip, limit int) ([]domain.FundSummary, error) {
	out := []domain.FundSummary{}
	q := db.WithContext(ctx).
		Model(&domain.FundDonation{}).
		Select("donor_name AS name, amount, date").
		Order("date desc")
	err := window(q, skip, limit).Scan(&out).Error
	return out, err
}

// CountFundDonations returns the number of recorded fund donations.
func CountFundDonations(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.FundDonation{}).Count(&n).Error
	return n, err
}
