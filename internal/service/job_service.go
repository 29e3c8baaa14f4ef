package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// JobService hosts the scheduled maintenance work. The only job today is
// retention: cancellation records older than the suspension window can never
// change a recount, so they are purged.
type JobService struct {
	reservations ReservationRepository
	log          *zap.Logger
}

func NewJobService(reservations ReservationRepository, log *zap.Logger) *JobService {
	return &JobService{reservations: reservations, log: log}
}

// PurgeExpiredCancellations deletes cancellation records that fell out of the
// rolling 7-day window.
func (s *JobService) PurgeExpiredCancellations(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-suspensionWindow)

	deleted, err := s.reservations.DeleteCancellationsBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("cron job: failed to purge expired cancellations: %w", err)
	}

	if deleted > 0 {
		s.log.Info("purged expired cancellation records",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff))
	}
	return nil
}
