package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/bloodx-backend/internal/domain"
	"github.com/tbourn/bloodx-backend/internal/repo"
)

// Stats are the dashboard aggregates.
type Stats struct {
	TotalFunds    float64 `json:"totalFunds" example:"1250.5"`
	TotalDonors   int64   `json:"totalDonors" example:"42"`
	TotalRequests int64   `json:"totalRequests" example:"17"`
}

// StatsService computes read-only aggregates.
type StatsService struct {
	DB *gorm.DB
}

// Get runs the three aggregations one after another.
func (s *StatsService) Get(ctx context.Context) (Stats, error) {
	var out Stats
	var err error
	if out.TotalFunds, err = repo.SumFundAmounts(ctx, s.DB); err != nil {
		return Stats{}, err
	}
	if out.TotalDonors, err = repo.CountUsersByRole(ctx, s.DB, domain.RoleDonor); err != nil {
		return Stats{}, err
	}
	if out.TotalRequests, err = repo.CountDonationRequests(ctx, s.DB, nil); err != nil {
		return Stats{}, err
	}
	return out, nil
}
