package attendance

import (
	"context"

	"github.com/gofooditalia/paycrew/internal/domain/shift"
)

// AttendanceService defines business logic for attendance generation and the
// confirm/modify/absent transitions.
type AttendanceService interface {
	// GenerateForShift expands one planned shift into its attendance record.
	GenerateForShift(ctx context.Context, s shift.Shift, overwrite bool) (Outcome, error)

	// GenerateForRange expands every shift in the date range, honoring the
	// optional employee/location filters. Per-shift failures land in the
	// result's Errors; the batch never aborts on one bad shift.
	GenerateForRange(ctx context.Context, req GenerateRangeRequest) (GenerateResult, error)

	// Confirm settles a pending record, optionally overriding entry/exit.
	Confirm(ctx context.Context, req ConfirmRequest) (AttendanceResponse, error)

	// MarkAbsent settles a record as not worked.
	MarkAbsent(ctx context.Context, req MarkAbsentRequest) (AttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
