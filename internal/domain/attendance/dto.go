package attendance

import (
	"github.com/gofooditalia/paycrew/internal/pkg/validator"
)

// MaxGenerateRangeDays bounds a single generation batch. Longer spans are
// chunked by the caller, not by the engine.
const MaxGenerateRangeDays = 90

type GenerateRangeRequest struct {
	DateFrom   string  `json:"date_from"` // YYYY-MM-DD
	DateTo     string  `json:"date_to"`   // YYYY-MM-DD
	EmployeeID *string `json:"employee_id,omitempty"`
	LocationID *string `json:"location_id,omitempty"`
	Overwrite  bool    `json:"overwrite"`
}

func (r *GenerateRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(r.DateFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "date_from", Message: "must be a valid date in YYYY-MM-DD format"})
	}
	to, okTo := validator.IsValidDate(r.DateTo)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must be a valid date in YYYY-MM-DD format"})
	}

	if okFrom && okTo {
		if to.Before(from) {
			errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must not be before date_from"})
		} else if validator.DaysBetween(from, to) > MaxGenerateRangeDays {
			errs = append(errs, validator.ValidationError{Field: "date_to", Message: "range must not exceed 90 days"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BatchError records one shift that could not be expanded. It never aborts
// the rest of the batch.
type BatchError struct {
	ShiftID    string `json:"shift_id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Message    string `json:"message"`
}

// GenerateResult separates hard per-item errors from the counted outcomes.
type GenerateResult struct {
	Generated int          `json:"generated"`
	Updated   int          `json:"updated"`
	Skipped   int          `json:"skipped"`
	Errors    []BatchError `json:"errors"`
}

type ConfirmRequest struct {
	ID        string
	EntryTime *string `json:"entry_time,omitempty"`
	ExitTime  *string `json:"exit_time,omitempty"`
	Note      *string `json:"note,omitempty"`
}

func (r *ConfirmRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EntryTime != nil && !validator.IsValidClockTime(*r.EntryTime) {
		errs = append(errs, validator.ValidationError{Field: "entry_time", Message: "must be a valid HH:mm time"})
	}
	if r.ExitTime != nil && !validator.IsValidClockTime(*r.ExitTime) {
		errs = append(errs, validator.ValidationError{Field: "exit_time", Message: "must be a valid HH:mm time"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkAbsentRequest struct {
	ID   string
	Note *string `json:"note,omitempty"`
}

type AttendanceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	Date          string  `json:"date"`
	ShiftID       *string `json:"shift_id,omitempty"`
	EntryTime     string  `json:"entry_time"`
	ExitTime      *string `json:"exit_time,omitempty"`
	WorkedHours   float64 `json:"worked_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	Status        string  `json:"status"`
	Note          *string `json:"note,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type AttendanceFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}
