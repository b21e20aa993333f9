// Package scheduler runs periodic housekeeping jobs on a gocron scheduler.
// The only job today purges expired Idempotency-Key records so the table
// does not grow without bound.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/bloodx-backend/internal/repo"
)

// PurgeJobName identifies the idempotency purge job.
const PurgeJobName = "idempotency_purge"

// Manager owns the scheduler and its registered jobs.
type Manager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	now       func() time.Time
}

// NewManager creates a stopped scheduler bound to db.
func NewManager(db *gorm.DB) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Manager{
		scheduler: s,
		db:        db,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// RegisterPurge schedules PurgeExpired every interval. Overlapping runs are
// rescheduled rather than stacked.
func (m *Manager) RegisterPurge(interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { _, _ = m.PurgeExpired(context.Background()) }),
		gocron.WithName(PurgeJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

// PurgeExpired deletes idempotency records whose TTL has elapsed.
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := repo.PurgeExpiredIdempotency(ctx, m.db, m.now())
	if err != nil {
		log.Error().Err(err).Str("job", PurgeJobName).Msg("purge failed")
		return 0, err
	}
	if n > 0 {
		log.Info().Int64("deleted", n).Str("job", PurgeJobName).Msg("purged expired idempotency keys")
	}
	return n, nil
}

// Jobs returns the names of the registered jobs.
func (m *Manager) Jobs() []string {
	jobs := m.scheduler.Jobs()
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Name())
	}
	return out
}

// Start begins executing registered jobs.
func (m *Manager) Start() {
	m.scheduler.Start()
	log.Info().Int("jobs", len(m.scheduler.Jobs())).Msg("scheduler started")
}

// Stop waits for running jobs to finish and shuts the scheduler down.
func (m *Manager) Stop() error {
	if err := m.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown")
		return err
	}
	log.Info().Msg("scheduler stopped")
	return nil
}
