package attendance

import (
	"fmt"

	"github.com/gofooditalia/paycrew/internal/pkg/timeutil"
)

// HoursPolicy holds the break and baseline rules applied when splitting a
// worked duration into regular and overtime hours. The values are the ones
// payroll disputes turn on, so they live here as configuration rather than
// inline literals.
type HoursPolicy struct {
	// AutoBreakThresholdHours is the total duration at or above which an
	// unpaid break is deducted automatically when the shift carries no
	// explicit break window.
	AutoBreakThresholdHours float64
	// AutoBreakHours is the duration of that automatic unpaid break.
	AutoBreakHours float64
	// DefaultDailyHours is the baseline used when no contractual daily
	// figure is available.
	DefaultDailyHours float64
}

// DefaultHoursPolicy is the standard policy: 30 unpaid minutes deducted on
// shifts of 6 hours or more, against an 8-hour day.
var DefaultHoursPolicy = HoursPolicy{
	AutoBreakThresholdHours: 6.0,
	AutoBreakHours:          0.5,
	DefaultDailyHours:       8.0,
}

// HoursSplit is the outcome of splitting a raw duration: unpaid break taken
// off the top, then the remainder divided into regular and overtime hours.
type HoursSplit struct {
	Worked   float64
	Overtime float64
	Break    float64
}

// Split divides totalHours into worked and overtime hours against the daily
// baseline. An explicit break window from the originating shift takes
// precedence; otherwise the automatic break applies at the threshold. The
// two-tier rule decides whether an employee is paid for lunch, so it is
// preserved exactly.
func (p HoursPolicy) Split(totalHours, dailyBaseline float64, breakStart, breakEnd *string) (HoursSplit, error) {
	var breakHours float64
	if breakStart != nil && breakEnd != nil {
		h, err := timeutil.HoursBetween(*breakStart, *breakEnd, false)
		if err != nil {
			return HoursSplit{}, fmt.Errorf("invalid break window: %w", err)
		}
		breakHours = h
	} else if totalHours >= p.AutoBreakThresholdHours {
		breakHours = p.AutoBreakHours
	}

	net := totalHours - breakHours
	if net < 0 {
		net = 0
	}

	if dailyBaseline <= 0 {
		dailyBaseline = p.DefaultDailyHours
	}

	worked := net
	overtime := 0.0
	if net > dailyBaseline {
		worked = dailyBaseline
		overtime = net - dailyBaseline
	}

	return HoursSplit{
		Worked:   timeutil.Round2(worked),
		Overtime: timeutil.Round2(overtime),
		Break:    timeutil.Round2(breakHours),
	}, nil
}
