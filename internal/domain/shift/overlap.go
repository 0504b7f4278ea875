package shift

import (
	"fmt"

	"github.com/gofooditalia/paycrew/internal/pkg/timeutil"
)

// Window is a shift's time span in minutes since midnight. End is normalized
// past MinutesPerDay when the span crosses midnight, so End > Start always
// holds for a non-empty window.
type Window struct {
	Start int
	End   int
}

// NewWindow parses a start/end clock-time pair into a Window.
func NewWindow(start, end string) (Window, error) {
	startMin, err := timeutil.ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	endMin, err := timeutil.ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	if endMin <= startMin {
		endMin += timeutil.MinutesPerDay
	}
	return Window{Start: startMin, End: endMin}, nil
}

// Overlaps reports whether two same-day windows conflict. Two windows
// conflict when the new start falls inside [existing.Start, existing.End),
// the new end falls inside (existing.Start, existing.End], or the new window
// fully contains the existing one. Touching boundaries (09:00-13:00 vs
// 13:00-17:00) are not a conflict.
func Overlaps(a, b Window) bool {
	startsInside := a.Start >= b.Start && a.Start < b.End
	endsInside := a.End > b.Start && a.End <= b.End
	contains := a.Start <= b.Start && a.End >= b.End
	return startsInside || endsInside || contains
}

// FindConflicts returns the subset of existing shifts whose windows intersect
// the new shift's window. The caller pre-filters existing down to the same
// employee and calendar date; comparison here is purely on clock times.
func FindConflicts(newShift Shift, existing []Shift) ([]Shift, error) {
	newWindow, err := NewWindow(newShift.StartTime, newShift.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid shift window: %w", err)
	}

	var conflicts []Shift
	for _, s := range existing {
		if s.ID != "" && s.ID == newShift.ID {
			continue
		}
		w, err := NewWindow(s.StartTime, s.EndTime)
		if err != nil {
			return nil, fmt.Errorf("invalid existing shift window (shift %s): %w", s.ID, err)
		}
		if Overlaps(newWindow, w) {
			conflicts = append(conflicts, s)
		}
	}
	return conflicts, nil
}

// ConflictError is the user-actionable rejection for a double-booked shift.
// The message names the conflicting hours and suggests a split shift with a
// lunch break, which is how a legitimate lunch+evening double turn should be
// entered instead.
type ConflictError struct {
	Conflicting Shift
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"shift overlaps an existing shift from %s to %s on %s; for a double turn on the same day, use a single split shift with a lunch break instead",
		e.Conflicting.StartTime,
		e.Conflicting.EndTime,
		e.Conflicting.Date.Format("2006-01-02"),
	)
}
