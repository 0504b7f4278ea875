package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/gofooditalia/paycrew/internal/domain/attendance"
	"github.com/gofooditalia/paycrew/internal/domain/employee"
	"github.com/gofooditalia/paycrew/internal/domain/shift"
	"github.com/gofooditalia/paycrew/internal/pkg/database"
	"github.com/gofooditalia/paycrew/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	shift.ShiftRepository
	employee.EmployeeRepository
	policy attendance.HoursPolicy
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	policy attendance.HoursPolicy,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		ShiftRepository:      shiftRepo,
		EmployeeRepository:   employeeRepo,
		policy:               policy,
	}
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

func toAttendanceResponse(a attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		EmployeeName:  a.EmployeeName,
		Date:          a.Date.Format("2006-01-02"),
		ShiftID:       a.ShiftID,
		EntryTime:     a.EntryTime,
		ExitTime:      a.ExitTime,
		WorkedHours:   a.WorkedHours,
		OvertimeHours: a.OvertimeHours,
		Status:        string(a.Status),
		Note:          a.Note,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.Format(time.RFC3339),
	}
}

// dailyBaseline resolves the employee's contractual daily hours. A missing
// contract falls back to the company-wide default instead of failing, so
// generation still works for employees whose contract was never entered.
func (a *AttendanceServiceImpl) dailyBaseline(ctx context.Context, employeeID, companyID string) (float64, error) {
	contract, err := a.EmployeeRepository.GetContract(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, employee.ErrContractNotFound) {
			return a.policy.DefaultDailyHours, nil
		}
		return 0, fmt.Errorf("failed to get contract for employee %s: %w", employeeID, err)
	}
	return contract.DailyBaseline(), nil
}

// generateOne expands one shift and persists the outcome. Runs inside the
// caller's transaction when ctx carries one.
func (a *AttendanceServiceImpl) generateOne(ctx context.Context, s shift.Shift, overwrite bool) (attendance.Outcome, error) {
	baseline, err := a.dailyBaseline(ctx, s.EmployeeID, s.CompanyID)
	if err != nil {
		return "", err
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, s.EmployeeID, s.Date, s.CompanyID)
	if err != nil {
		return "", fmt.Errorf("failed to get attendance for employee %s on %s: %w", s.EmployeeID, s.Date.Format("2006-01-02"), err)
	}

	record, outcome, err := attendance.PlanFromShift(s, baseline, a.policy, existing, overwrite)
	if err != nil {
		return "", err
	}

	switch outcome {
	case attendance.OutcomeGenerated:
		if _, err := a.AttendanceRepository.Create(ctx, record); err != nil {
			return "", fmt.Errorf("failed to create attendance: %w", err)
		}
	case attendance.OutcomeUpdated:
		if err := a.AttendanceRepository.Update(ctx, record); err != nil {
			return "", fmt.Errorf("failed to update attendance: %w", err)
		}
	}

	return outcome, nil
}

// GenerateForShift implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GenerateForShift(ctx context.Context, s shift.Shift, overwrite bool) (attendance.Outcome, error) {
	var outcome attendance.Outcome
	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		outcome, err = a.generateOne(txCtx, s, overwrite)
		return err
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

// GenerateForRange implements attendance.AttendanceService. One bad shift is
// recorded in the result's Errors and the loop moves on; everything that
// succeeded is committed together at the end.
func (a *AttendanceServiceImpl) GenerateForRange(ctx context.Context, req attendance.GenerateRangeRequest) (attendance.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.GenerateResult{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.GenerateResult{}, err
	}

	from, _ := time.Parse("2006-01-02", req.DateFrom)
	to, _ := time.Parse("2006-01-02", req.DateTo)

	shifts, err := a.ShiftRepository.ListInRange(ctx, from, to, req.EmployeeID, req.LocationID, companyID)
	if err != nil {
		return attendance.GenerateResult{}, fmt.Errorf("failed to list shifts in range: %w", err)
	}

	result := attendance.GenerateResult{Errors: []attendance.BatchError{}}
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		for _, s := range shifts {
			outcome, err := a.generateOne(txCtx, s, req.Overwrite)
			if err != nil {
				result.Errors = append(result.Errors, attendance.BatchError{
					ShiftID:    s.ID,
					EmployeeID: s.EmployeeID,
					Date:       s.Date.Format("2006-01-02"),
					Message:    err.Error(),
				})
				continue
			}

			switch outcome {
			case attendance.OutcomeGenerated:
				result.Generated++
			case attendance.OutcomeUpdated:
				result.Updated++
			case attendance.OutcomeSkipped:
				result.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return attendance.GenerateResult{}, err
	}

	return result, nil
}

// breakWindow returns the lunch break of the shift the record was generated
// from, when there is one.
func (a *AttendanceServiceImpl) breakWindow(ctx context.Context, record attendance.Attendance) (*string, *string) {
	if record.ShiftID == nil {
		return nil, nil
	}
	s, err := a.ShiftRepository.GetByID(ctx, *record.ShiftID, record.CompanyID)
	if err != nil {
		return nil, nil
	}
	return s.LunchBreakStart, s.LunchBreakEnd
}

// Confirm implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Confirm(ctx context.Context, req attendance.ConfirmRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	baseline, err := a.dailyBaseline(ctx, record.EmployeeID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	breakStart, breakEnd := a.breakWindow(ctx, record)

	confirmed, err := attendance.Confirm(record, attendance.ConfirmOverrides{
		EntryTime: req.EntryTime,
		ExitTime:  req.ExitTime,
		Note:      req.Note,
	}, baseline, a.policy, breakStart, breakEnd)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.AttendanceRepository.Update(ctx, confirmed); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return toAttendanceResponse(confirmed), nil
}

// MarkAbsent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAbsent(ctx context.Context, req attendance.MarkAbsentRequest) (attendance.AttendanceResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	absent, err := attendance.MarkAbsent(record, req.Note)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.AttendanceRepository.Update(ctx, absent); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return toAttendanceResponse(absent), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(record), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toAttendanceResponse(record))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}
