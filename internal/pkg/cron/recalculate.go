package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
)

// runHour is the local hour after which the previous day is considered closed.
const runHour = 1

// RecalculationJobs re-derives worked hours for the previous day's records
// that were stored with zero hours, e.g. after a late exit correction.
type RecalculationJobs struct {
	records  timeclock.RecordService
	location *time.Location
	now      func() time.Time

	mu      sync.Mutex
	lastDay string
}

func NewRecalculationJobs(records timeclock.RecordService, location *time.Location) *RecalculationJobs {
	if location == nil {
		location = time.UTC
	}
	return &RecalculationJobs{
		records:  records,
		location: location,
		now:      time.Now,
	}
}

func (j *RecalculationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "recalculate_zero_hour_records",
		Interval: time.Hour,
		Timeout:  10 * time.Minute,
		Fn:       j.RecalculateYesterday,
	})
}

// RecalculateYesterday runs at most once per local day, at or after runHour.
func (j *RecalculationJobs) RecalculateYesterday(ctx context.Context) error {
	now := j.now().In(j.location)
	if now.Hour() < runHour {
		return nil
	}

	today := now.Format("2006-01-02")
	j.mu.Lock()
	if j.lastDay == today {
		j.mu.Unlock()
		return nil
	}
	j.mu.Unlock()

	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	slog.Info("Cron: Starting zero-hour recalculation", "date", yesterday)

	resp, err := j.records.Recalculate(ctx, timeclock.RecalculateRequest{
		StartDate: &yesterday,
		EndDate:   &yesterday,
	})
	if err != nil {
		return fmt.Errorf("failed to recalculate records for %s: %w", yesterday, err)
	}

	j.mu.Lock()
	j.lastDay = today
	j.mu.Unlock()

	for _, e := range resp.Errors {
		slog.Warn("Cron: Record not recalculated", "record_id", e.RecordID, "error", e.Error)
	}
	slog.Info("Cron: Zero-hour recalculation completed",
		"date", yesterday,
		"total", resp.Total,
		"updated", resp.Updated,
	)
	return nil
}
