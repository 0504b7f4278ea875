package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var clockTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidClockTime reports whether s is a 24-hour "HH:mm" clock time.
func IsValidClockTime(s string) bool {
	return clockTimeRegex.MatchString(s)
}

// IsValidDate parses a "YYYY-MM-DD" calendar date. Dates are anchored at UTC
// midnight everywhere so a record never drifts a day across client timezones.
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// DaysBetween returns the number of calendar days from 'from' to 'to',
// inclusive of both endpoints. Negative when 'to' precedes 'from'.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours()/24) + 1
}

// IsValidUUID matches the canonical UUID string form produced by github.com/google/uuid.
var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[1-7][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func IsValidUUID(id string) bool {
	return uuidRegex.MatchString(strings.ToLower(id))
}

// IsInSlice reports whether value is one of the allowed values.
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
