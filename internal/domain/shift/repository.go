package shift

import (
	"context"
	"time"
)

// ShiftRepository defines data access methods for planned shifts.
// All methods include companyID to prevent cross-company data access.
type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)

	GetByID(ctx context.Context, id string, companyID string) (Shift, error)

	// ListByEmployeeAndDate returns the employee's shifts on one calendar
	// date. Overlap detection runs against this set inside the same
	// transaction as the write it guards.
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) ([]Shift, error)

	// ListInRange returns shifts between two dates inclusive, optionally
	// narrowed to one employee and/or location. Used by attendance generation.
	ListInRange(ctx context.Context, from, to time.Time, employeeID, locationID *string, companyID string) ([]Shift, error)

	// ListCompanyIDsOnDate returns the companies that planned at least one
	// shift on the date. The nightly generation job iterates over them.
	ListCompanyIDsOnDate(ctx context.Context, date time.Time) ([]string, error)

	Update(ctx context.Context, s Shift) error

	Delete(ctx context.Context, id string, companyID string) error

	List(ctx context.Context, filter ShiftFilter, companyID string) ([]Shift, int64, error)
}
