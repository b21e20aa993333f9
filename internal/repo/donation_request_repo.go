package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/bloodx-backend/internal/domain"
)

// CreateDonationRequest inserts r, assigning an ID and CreatedAt when unset.
func CreateDonationRequest(ctx context.Context, db *gorm.DB, r *domain.DonationRequest) (domain.InsertResult, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return domain.InsertResult{}, err
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: r.ID}, nil
}

// GetDonationRequest fetches a request by ID, or ErrNotFound.
func GetDonationRequest(ctx context.Context, db *gorm.DB, id string) (*domain.DonationRequest, error) {
	var r domain.DonationRequest
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// ListDonationRequestsPage returns requests matching f, newest first,
// windowed by skip/limit.
func ListDonationRequestsPage(ctx context.Context, db *gorm.DB, f *Filter, skip, limit int) ([]domain.DonationRequest, error) {
	out := []domain.DonationRequest{}
	q := f.Apply(db.WithContext(ctx).Model(&domain.DonationRequest{})).Order("created_at desc")
	err := window(q, skip, limit).Find(&out).Error
	return out, err
}

// CountDonationRequests returns the number of requests matching f
// (all requests when f is nil or empty).
func CountDonationRequests(ctx context.Context, db *gorm.DB, f *Filter) (int64, error) {
	var n int64
	err := f.Apply(db.WithContext(ctx).Model(&domain.DonationRequest{})).Count(&n).Error
	return n, err
}

// ListDonationRequestsByRequester returns every request created by email,
// newest first.
func ListDonationRequestsByRequester(ctx context.Context, db *gorm.DB, email string) ([]domain.DonationRequest, error) {
	out := []domain.DonationRequest{}
	err := db.WithContext(ctx).
		Where("requester_email = ?", email).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// UpdateDonationRequestDetails overwrites the requester-editable fields.
func UpdateDonationRequestDetails(ctx context.Context, db *gorm.DB, id string, d domain.RequestDetails) (domain.UpdateResult, error) {
	return updateByID(ctx, db, &domain.DonationRequest{}, id, []assignment{
		{"blood_group", d.BloodGroup},
		{"donation_date", d.DonationDate},
		{"donation_time", d.DonationTime},
		{"full_address", d.FullAddress},
		{"hospital_name", d.HospitalName},
		{"recipient_district", d.RecipientDistrict},
		{"recipient_name", d.RecipientName},
		{"recipient_upazila", d.RecipientUpazila},
		{"request_message", d.RequestMessage},
	})
}

// UpdateDonationStatus sets only the status of request id.
func UpdateDonationStatus(ctx context.Context, db *gorm.DB, id, status string) (domain.UpdateResult, error) {
	return updateByID(ctx, db, &domain.DonationRequest{}, id, []assignment{{"donation_status", status}})
}

// AcceptDonationRequest assigns a donor to request id and sets its status.
func AcceptDonationRequest(ctx context.Context, db *gorm.DB, id, donorName, donorEmail, status string) (domain.UpdateResult, error) {
	return updateByID(ctx, db, &domain.DonationRequest{}, id, []assignment{
		{"donor_name", donorName},
		{"donor_email", donorEmail},
		{"donation_status", status},
	})
}

// DeleteDonationRequest removes request id.
func DeleteDonationRequest(ctx context.Context, db *gorm.DB, id string) (domain.DeleteResult, error) {
	return deleteByID(ctx, db, &domain.DonationRequest{}, id)
}
