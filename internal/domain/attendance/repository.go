package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods include companyID to prevent cross-company data access.
type AttendanceRepository interface {
	Create(ctx context.Context, a Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// GetByEmployeeAndDate returns the employee's record for one date, or
	// nil when none exists. Generation consults it before deciding between
	// create, update and skip.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Attendance, error)

	Update(ctx context.Context, a Attendance) error

	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)
}
