package shift

import (
	"context"
)

// ShiftService defines business logic for shift scheduling.
type ShiftService interface {
	// CreateShift creates a planned shift after checking for overlaps with
	// the employee's other shifts on the same date.
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)

	// BulkCreateShifts plans many shifts in a single transaction and
	// optionally generates attendance for them afterwards.
	BulkCreateShifts(ctx context.Context, req BulkCreateShiftsRequest) ([]ShiftResponse, error)

	GetShift(ctx context.Context, id string) (ShiftResponse, error)

	ListShifts(ctx context.Context, filter ShiftFilter) (ListShiftsResponse, error)

	// UpdateShift updates a shift, re-running overlap detection against the
	// (possibly new) date's other shifts.
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)

	DeleteShift(ctx context.Context, id string) error
}
