package attendance

import (
	"fmt"

	"github.com/gofooditalia/paycrew/internal/domain/shift"
	"github.com/gofooditalia/paycrew/internal/pkg/timeutil"
)

// Outcome is the per-shift result of attendance generation.
type Outcome string

const (
	OutcomeGenerated Outcome = "generated"
	OutcomeUpdated   Outcome = "updated"
	OutcomeSkipped   Outcome = "skipped"
)

// PlanFromShift expands a planned shift into the attendance record to
// persist. existing is the employee's attendance for the same date, or nil.
// A confirmed or modified record is never touched unless overwrite is set;
// that case is a counted skip, not an error, because it protects a human
// decision. The returned record is not persisted here, so the caller can
// batch several plans into one transaction.
func PlanFromShift(s shift.Shift, dailyBaseline float64, policy HoursPolicy, existing *Attendance, overwrite bool) (Attendance, Outcome, error) {
	if existing != nil && existing.Status.IsSettled() && !overwrite {
		return *existing, OutcomeSkipped, nil
	}

	total, err := timeutil.HoursBetween(s.StartTime, s.EndTime, true)
	if err != nil {
		return Attendance{}, "", fmt.Errorf("shift %s: %w", s.ID, err)
	}

	split, err := policy.Split(total, dailyBaseline, s.LunchBreakStart, s.LunchBreakEnd)
	if err != nil {
		return Attendance{}, "", fmt.Errorf("shift %s: %w", s.ID, err)
	}

	exit := s.EndTime
	record := Attendance{
		CompanyID:     s.CompanyID,
		EmployeeID:    s.EmployeeID,
		Date:          s.Date,
		ShiftID:       &s.ID,
		EntryTime:     s.StartTime,
		ExitTime:      &exit,
		WorkedHours:   split.Worked,
		OvertimeHours: split.Overtime,
		Status:        StatusToConfirm,
	}

	if existing == nil {
		return record, OutcomeGenerated, nil
	}

	record.ID = existing.ID
	record.Note = existing.Note
	record.CreatedAt = existing.CreatedAt
	return record, OutcomeUpdated, nil
}

// ConfirmOverrides optionally replaces the planned entry/exit at confirmation
// time. Both times must be given together to keep the worked/overtime pair
// derived from one consistent window.
type ConfirmOverrides struct {
	EntryTime *string
	ExitTime  *string
	Note      *string
}

// Confirm transitions a record out of to_confirm. When the (possibly
// overridden) times differ from what the shift planned, the record becomes
// modified instead of confirmed; both states are terminal and equivalent for
// payroll. Hours are recomputed from the final times in the same step.
func Confirm(record Attendance, overrides ConfirmOverrides, dailyBaseline float64, policy HoursPolicy, breakStart, breakEnd *string) (Attendance, error) {
	if record.Status != StatusToConfirm && record.Status != StatusModified {
		return Attendance{}, fmt.Errorf("%w: status %s", ErrAlreadySettled, record.Status)
	}

	entry := record.EntryTime
	exit := record.ExitTime
	changed := false

	if overrides.EntryTime != nil && *overrides.EntryTime != entry {
		entry = *overrides.EntryTime
		changed = true
	}
	if overrides.ExitTime != nil && (exit == nil || *overrides.ExitTime != *exit) {
		exit = overrides.ExitTime
		changed = true
	}
	if exit == nil {
		return Attendance{}, ErrMissingExitTime
	}

	total, err := timeutil.HoursBetween(entry, *exit, true)
	if err != nil {
		return Attendance{}, err
	}
	split, err := policy.Split(total, dailyBaseline, breakStart, breakEnd)
	if err != nil {
		return Attendance{}, err
	}

	record.EntryTime = entry
	record.ExitTime = exit
	record.WorkedHours = split.Worked
	record.OvertimeHours = split.Overtime
	record.Status = StatusConfirmed
	if changed {
		record.Status = StatusModified
	}
	if overrides.Note != nil {
		record.Note = overrides.Note
	}
	return record, nil
}

// MarkAbsent transitions a record to absent, clearing the planned times and
// zeroing both hour figures together.
func MarkAbsent(record Attendance, note *string) (Attendance, error) {
	if record.Status == StatusAbsent {
		return Attendance{}, fmt.Errorf("%w: status %s", ErrAlreadySettled, record.Status)
	}

	record.EntryTime = ""
	record.ExitTime = nil
	record.WorkedHours = 0
	record.OvertimeHours = 0
	record.Status = StatusAbsent
	if note != nil {
		record.Note = note
	}
	return record, nil
}
