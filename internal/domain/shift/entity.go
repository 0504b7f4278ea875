package shift

import "time"

// Shift is a planned work interval for one employee on one calendar date.
// EndTime may be numerically before StartTime only when the shift crosses
// midnight; duration math treats that as +24h.
type Shift struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	Date            time.Time
	StartTime       string // HH:mm
	EndTime         string // HH:mm
	LunchBreakStart *string
	LunchBreakEnd   *string
	Type            ShiftType
	LocationID      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
}

type ShiftType string

const (
	ShiftTypeMorning ShiftType = "morning"
	ShiftTypeLunch   ShiftType = "lunch"
	ShiftTypeEvening ShiftType = "evening"
	ShiftTypeNight   ShiftType = "night"
	ShiftTypeSplit   ShiftType = "split"
)

var ShiftTypeValues = []string{
	string(ShiftTypeMorning),
	string(ShiftTypeLunch),
	string(ShiftTypeEvening),
	string(ShiftTypeNight),
	string(ShiftTypeSplit),
}

// MaxShiftHours is the sanity ceiling on a single shift's duration. A window
// longer than this is almost always a data-entry mistake amplified by the
// overnight +24h rule, so it is rejected rather than silently accepted.
const MaxShiftHours = 16.0
