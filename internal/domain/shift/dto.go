package shift

import (
	"github.com/gofooditalia/paycrew/internal/pkg/timeutil"
	"github.com/gofooditalia/paycrew/internal/pkg/validator"
)

type CreateShiftRequest struct {
	EmployeeID      string  `json:"employee_id"`
	Date            string  `json:"date"` // YYYY-MM-DD
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	LunchBreakStart *string `json:"lunch_break_start,omitempty"`
	LunchBreakEnd   *string `json:"lunch_break_end,omitempty"`
	Type            string  `json:"type"`
	LocationID      *string `json:"location_id,omitempty"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date in YYYY-MM-DD format"})
	}
	if !validator.IsValidClockTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be a valid HH:mm time"})
	}
	if !validator.IsValidClockTime(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be a valid HH:mm time"})
	}
	if !validator.IsInSlice(r.Type, ShiftTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of morning, lunch, evening, night, split"})
	}

	if (r.LunchBreakStart == nil) != (r.LunchBreakEnd == nil) {
		errs = append(errs, validator.ValidationError{Field: "lunch_break", Message: "lunch_break_start and lunch_break_end must be provided together"})
	}
	if r.LunchBreakStart != nil && !validator.IsValidClockTime(*r.LunchBreakStart) {
		errs = append(errs, validator.ValidationError{Field: "lunch_break_start", Message: "must be a valid HH:mm time"})
	}
	if r.LunchBreakEnd != nil && !validator.IsValidClockTime(*r.LunchBreakEnd) {
		errs = append(errs, validator.ValidationError{Field: "lunch_break_end", Message: "must be a valid HH:mm time"})
	}

	if validator.IsValidClockTime(r.StartTime) && validator.IsValidClockTime(r.EndTime) {
		hours, err := timeutil.HoursBetween(r.StartTime, r.EndTime, true)
		if err == nil && hours > MaxShiftHours {
			errs = append(errs, validator.ValidationError{Field: "end_time", Message: "shift longer than 16 hours, check start and end times"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ID              string
	Date            *string `json:"date,omitempty"`
	StartTime       *string `json:"start_time,omitempty"`
	EndTime         *string `json:"end_time,omitempty"`
	LunchBreakStart *string `json:"lunch_break_start,omitempty"`
	LunchBreakEnd   *string `json:"lunch_break_end,omitempty"`
	Type            *string `json:"type,omitempty"`
	LocationID      *string `json:"location_id,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date in YYYY-MM-DD format"})
		}
	}
	if r.StartTime != nil && !validator.IsValidClockTime(*r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be a valid HH:mm time"})
	}
	if r.EndTime != nil && !validator.IsValidClockTime(*r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be a valid HH:mm time"})
	}
	if r.Type != nil && !validator.IsInSlice(*r.Type, ShiftTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of morning, lunch, evening, night, split"})
	}
	if r.LunchBreakStart != nil && !validator.IsValidClockTime(*r.LunchBreakStart) {
		errs = append(errs, validator.ValidationError{Field: "lunch_break_start", Message: "must be a valid HH:mm time"})
	}
	if r.LunchBreakEnd != nil && !validator.IsValidClockTime(*r.LunchBreakEnd) {
		errs = append(errs, validator.ValidationError{Field: "lunch_break_end", Message: "must be a valid HH:mm time"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkCreateShiftsRequest plans many shifts at once. All shifts are created in
// one transaction; one overlap rejects the whole batch before anything is
// written.
type BulkCreateShiftsRequest struct {
	Shifts             []CreateShiftRequest `json:"shifts"`
	GenerateAttendance bool                 `json:"generate_attendance"`
	Overwrite          bool                 `json:"overwrite"`
}

func (r *BulkCreateShiftsRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Shifts) == 0 {
		errs = append(errs, validator.ValidationError{Field: "shifts", Message: "at least one shift is required"})
	}
	for i := range r.Shifts {
		if err := r.Shifts[i].Validate(); err != nil {
			if inner, ok := err.(validator.ValidationErrors); ok {
				errs = append(errs, inner...)
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	LunchBreakStart *string `json:"lunch_break_start,omitempty"`
	LunchBreakEnd   *string `json:"lunch_break_end,omitempty"`
	Type            string  `json:"type"`
	LocationID      *string `json:"location_id,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type ShiftFilter struct {
	EmployeeID *string
	LocationID *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

type ListShiftsResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Shifts     []ShiftResponse `json:"shifts"`
}
