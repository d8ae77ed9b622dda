package timeclock

import (
	"github.com/gruamaster/ponto-backend-go/internal/config"
	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/timecalc"
)

// Classifier derives the attendance status of a day from its stamps.
type Classifier struct {
	// ExpectedEntry is the lateness reference in minutes after midnight.
	// It is unrelated to the shift reference used for overtime.
	ExpectedEntry   int
	LateTolerance   int
	IncompleteBelow float64
}

func DefaultClassifier() Classifier {
	return Classifier{
		ExpectedEntry:   timecalc.MustMinutes("08:00"),
		LateTolerance:   15,
		IncompleteBelow: 7.5,
	}
}

// Classify applies, in order: Missing, InProgress, PendingApproval when
// there is overtime, Late, Incomplete, Complete. A malformed entry is never late.
func (c Classifier) Classify(p timecalc.Punches, workedHours, overtimeHours float64) timeclock.Status {
	if p.Entry == "" {
		return timeclock.StatusMissing
	}
	if p.Exit == "" {
		return timeclock.StatusInProgress
	}
	if overtimeHours > 0 {
		return timeclock.StatusPendingApproval
	}
	if entry, err := timecalc.ToMinutes(p.Entry); err == nil && entry-c.ExpectedEntry > c.LateTolerance {
		return timeclock.StatusLate
	}
	if workedHours < c.IncompleteBelow {
		return timeclock.StatusIncomplete
	}
	return timeclock.StatusComplete
}

// Calculator recomputes every derived field of a record.
type Calculator struct {
	Shift      timecalc.ShiftPolicy
	Classifier Classifier
	// ContinuousWorkBonus is added to the overtime of records whose
	// continuous work was confirmed by a manager.
	ContinuousWorkBonus float64
}

func DefaultCalculator() Calculator {
	return Calculator{
		Shift:               timecalc.DefaultShiftPolicy(),
		Classifier:          DefaultClassifier(),
		ContinuousWorkBonus: 1,
	}
}

// NewCalculator builds a calculator from the loaded policy.
func NewCalculator(p *config.Policy) Calculator {
	return Calculator{
		Shift: p.Shift(),
		Classifier: Classifier{
			ExpectedEntry:   timecalc.MustMinutes(p.ExpectedEntry),
			LateTolerance:   p.LateToleranceMinutes,
			IncompleteBelow: p.IncompleteBelowHours,
		},
		ContinuousWorkBonus: p.ContinuousWorkBonusHours,
	}
}

// Apply sets WorkedHours, OvertimeHours and Status on r from its stamps, day
// type and continuous work confirmation. The status is classified on the
// stamped overtime only; the confirmed bonus was already approved.
func (c Calculator) Apply(r *timeclock.Record) {
	punches := r.Punches()
	r.WorkedHours = punches.WorkedHours()
	overtime := c.Shift.OvertimeHours(punches, r.Day())
	r.Status = c.Classifier.Classify(punches, r.WorkedHours, overtime)
	if r.ContinuousWork && r.ContinuousWorkConfirmed {
		overtime = timecalc.RoundHours(overtime + c.ContinuousWorkBonus)
	}
	r.OvertimeHours = overtime
}
