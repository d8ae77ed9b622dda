package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRecalculator struct {
	timeclock.RecordService
	calls []timeclock.RecalculateRequest
	err   error
}

func (r *recordingRecalculator) Recalculate(_ context.Context, req timeclock.RecalculateRequest) (timeclock.RecalculateResponse, error) {
	r.calls = append(r.calls, req)
	if r.err != nil {
		return timeclock.RecalculateResponse{}, r.err
	}
	return timeclock.RecalculateResponse{Total: 2, Updated: 1}, nil
}

func newJobsAt(records timeclock.RecordService, at time.Time) *RecalculationJobs {
	j := NewRecalculationJobs(records, time.UTC)
	j.now = func() time.Time { return at }
	return j
}

func TestRecalculateYesterday(t *testing.T) {
	records := &recordingRecalculator{}
	j := newJobsAt(records, time.Date(2026, 10, 18, 2, 30, 0, 0, time.UTC))

	require.NoError(t, j.RecalculateYesterday(context.Background()))
	require.Len(t, records.calls, 1)
	assert.Equal(t, "2026-10-17", *records.calls[0].StartDate)
	assert.Equal(t, "2026-10-17", *records.calls[0].EndDate)
	assert.False(t, records.calls[0].RecalculateAll)

	require.NoError(t, j.RecalculateYesterday(context.Background()))
	assert.Len(t, records.calls, 1, "second run on the same day is skipped")
}

func TestRecalculateYesterday_WaitsForRunHour(t *testing.T) {
	records := &recordingRecalculator{}
	j := newJobsAt(records, time.Date(2026, 10, 18, 0, 15, 0, 0, time.UTC))

	require.NoError(t, j.RecalculateYesterday(context.Background()))
	assert.Empty(t, records.calls)
}

func TestRecalculateYesterday_RetriesAfterFailure(t *testing.T) {
	records := &recordingRecalculator{err: errors.New("connection refused")}
	j := newJobsAt(records, time.Date(2026, 10, 18, 3, 0, 0, 0, time.UTC))

	assert.Error(t, j.RecalculateYesterday(context.Background()))

	records.err = nil
	require.NoError(t, j.RecalculateYesterday(context.Background()))
	assert.Len(t, records.calls, 2)
}

func TestScheduler_RunOnce(t *testing.T) {
	records := &recordingRecalculator{}
	j := newJobsAt(records, time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC))

	s := NewScheduler(nil)
	j.RegisterJobs(s)
	s.RunOnce(context.Background())

	assert.Len(t, records.calls, 1)
}

func TestScheduler_StartStop(t *testing.T) {
	ran := make(chan struct{}, 1)
	s := NewScheduler(nil)
	s.AddJob(Job{
		Name:     "probe",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			select {
			case ran <- struct{}{}:
			default:
			}
			return nil
		},
	})
	s.Start()
	s.Start()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

func TestScheduler_JobTimeout(t *testing.T) {
	var deadline bool
	s := NewScheduler(nil)
	s.AddJob(Job{
		Name:     "bounded",
		Interval: time.Hour,
		Timeout:  time.Minute,
		Fn: func(ctx context.Context) error {
			_, deadline = ctx.Deadline()
			return nil
		},
	})
	s.RunOnce(context.Background())
	assert.True(t, deadline)
}
