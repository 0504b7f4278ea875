package attendance

import "time"

// Attendance is the realized counterpart of a planned shift, or a manual
// entry. WorkedHours and OvertimeHours are always recomputed together from
// the entry/exit pair; neither is ever patched in isolation.
type Attendance struct {
	ID            string
	CompanyID     string
	EmployeeID    string
	Date          time.Time
	ShiftID       *string
	EntryTime     string  // HH:mm
	ExitTime      *string // HH:mm, nil until confirmed for manual entries
	WorkedHours   float64
	OvertimeHours float64
	Status        Status
	Note          *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
}

type Status string

const (
	// StatusToConfirm marks a record produced by shift expansion, awaiting a
	// human decision.
	StatusToConfirm Status = "to_confirm"
	// StatusConfirmed means the planned times were accepted as worked.
	StatusConfirmed Status = "confirmed"
	// StatusModified is confirmed with entry/exit differing from the shift.
	StatusModified Status = "modified"
	// StatusAbsent means the employee did not work the shift.
	StatusAbsent Status = "absent"
)

var StatusValues = []string{
	string(StatusToConfirm),
	string(StatusConfirmed),
	string(StatusModified),
	string(StatusAbsent),
}

// IsSettled reports whether the record left the to_confirm state.
func (s Status) IsSettled() bool {
	return s == StatusConfirmed || s == StatusModified || s == StatusAbsent
}
