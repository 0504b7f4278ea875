package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// MinutesPerDay is added to the end time when a shift wraps past midnight.
const MinutesPerDay = 24 * 60

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock parses a 24-hour "HH:mm" clock time into minutes since midnight.
// A malformed time is a caller contract violation and is reported, never
// coerced to zero.
func ParseClock(clock string) (int, error) {
	m := clockRegex.FindStringSubmatch(clock)
	if m == nil {
		return 0, fmt.Errorf("invalid clock time %q: expected HH:mm in 24-hour format", clock)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, nil
}

// HoursBetween returns the duration between two "HH:mm" clock times in hours,
// rounded to 2 decimals. When end is numerically before start and
// allowOvernight is true, the interval is treated as crossing midnight
// (22:00 -> 06:00 is 8 hours). Every duration in the system goes through this
// function so rounding and wraparound follow a single policy.
func HoursBetween(start, end string, allowOvernight bool) (float64, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return 0, err
	}

	if endMin < startMin {
		if !allowOvernight {
			return 0, fmt.Errorf("end time %s is before start time %s", end, start)
		}
		endMin += MinutesPerDay
	}

	return Round2(float64(endMin-startMin) / 60.0), nil
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
