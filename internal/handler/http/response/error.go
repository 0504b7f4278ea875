package response

import (
	"errors"
	"net/http"

	"github.com/gofooditalia/paycrew/internal/domain/attendance"
	"github.com/gofooditalia/paycrew/internal/domain/employee"
	"github.com/gofooditalia/paycrew/internal/domain/payroll"
	"github.com/gofooditalia/paycrew/internal/domain/shift"
	"github.com/gofooditalia/paycrew/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Shift conflicts carry the overlapping shift's details in the message.
	var conflictErr *shift.ConflictError
	if errors.As(err, &conflictErr) {
		Conflict(w, conflictErr.Error())
		return
	}

	switch {
	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrInvalidShiftType):
		BadRequest(w, "Invalid shift type", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadySettled):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrMissingExitTime):
		BadRequest(w, "Exit time is required to confirm attendance", nil)
	case errors.Is(err, attendance.ErrRangeTooLong):
		BadRequest(w, "Date range must not exceed 90 days", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrDuplicatePeriod):
		Conflict(w, "A payslip already exists for this employee and period")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrContractNotFound):
		NotFound(w, "Employee contract not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
