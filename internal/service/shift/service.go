package shift

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/gofooditalia/paycrew/internal/domain/attendance"
	"github.com/gofooditalia/paycrew/internal/domain/shift"
	"github.com/gofooditalia/paycrew/internal/pkg/database"
	"github.com/gofooditalia/paycrew/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type ShiftServiceImpl struct {
	db *database.DB
	shift.ShiftRepository
	attendanceService attendance.AttendanceService
	logger            *slog.Logger
}

func NewShiftService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
	attendanceService attendance.AttendanceService,
	logger *slog.Logger,
) shift.ShiftService {
	return &ShiftServiceImpl{
		db:                db,
		ShiftRepository:   shiftRepo,
		attendanceService: attendanceService,
		logger:            logger,
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

func toShiftResponse(s shift.Shift) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:              s.ID,
		EmployeeID:      s.EmployeeID,
		EmployeeName:    s.EmployeeName,
		Date:            s.Date.Format("2006-01-02"),
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		LunchBreakStart: s.LunchBreakStart,
		LunchBreakEnd:   s.LunchBreakEnd,
		Type:            string(s.Type),
		LocationID:      s.LocationID,
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
	}
}

func shiftFromCreateRequest(req shift.CreateShiftRequest, companyID string) (shift.Shift, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to parse shift date: %w", err)
	}

	return shift.Shift{
		CompanyID:       companyID,
		EmployeeID:      req.EmployeeID,
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		LunchBreakStart: req.LunchBreakStart,
		LunchBreakEnd:   req.LunchBreakEnd,
		Type:            shift.ShiftType(req.Type),
		LocationID:      req.LocationID,
	}, nil
}

// checkConflicts loads the employee's other shifts on the same date and runs
// overlap detection. Must be called inside the transaction that performs the
// guarded write.
func (s *ShiftServiceImpl) checkConflicts(ctx context.Context, candidate shift.Shift) error {
	existing, err := s.ShiftRepository.ListByEmployeeAndDate(ctx, candidate.EmployeeID, candidate.Date, candidate.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to list shifts for conflict check: %w", err)
	}

	conflicts, err := shift.FindConflicts(candidate, existing)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &shift.ConflictError{Conflicting: conflicts[0]}
	}
	return nil
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	newShift, err := shiftFromCreateRequest(req, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	var created shift.Shift
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.checkConflicts(txCtx, newShift); err != nil {
			return err
		}

		created, err = s.ShiftRepository.Create(txCtx, newShift)
		if err != nil {
			return fmt.Errorf("failed to create shift: %w", err)
		}
		return nil
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return toShiftResponse(created), nil
}

// BulkCreateShifts implements shift.ShiftService. The insert is atomic: one
// conflicting shift rolls back the whole batch. Attendance generation runs
// after the commit and reports its failures through the log, not the batch.
func (s *ShiftServiceImpl) BulkCreateShifts(ctx context.Context, req shift.BulkCreateShiftsRequest) ([]shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	createdShifts := make([]shift.Shift, 0, len(req.Shifts))
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		for _, item := range req.Shifts {
			newShift, err := shiftFromCreateRequest(item, companyID)
			if err != nil {
				return err
			}

			// Earlier inserts of the same batch are visible inside the
			// transaction, so batch-internal overlaps are caught too.
			if err := s.checkConflicts(txCtx, newShift); err != nil {
				return err
			}

			created, err := s.ShiftRepository.Create(txCtx, newShift)
			if err != nil {
				return fmt.Errorf("failed to create shift: %w", err)
			}
			createdShifts = append(createdShifts, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.GenerateAttendance {
		for _, created := range createdShifts {
			if _, err := s.attendanceService.GenerateForShift(ctx, created, req.Overwrite); err != nil {
				s.logger.Warn("failed to generate attendance for shift",
					slog.String("shift_id", created.ID),
					slog.String("employee_id", created.EmployeeID),
					slog.Any("error", err),
				)
			}
		}
	}

	responses := make([]shift.ShiftResponse, 0, len(createdShifts))
	for _, created := range createdShifts {
		responses = append(responses, toShiftResponse(created))
	}
	return responses, nil
}

// GetShift implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	found, err := s.ShiftRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return toShiftResponse(found), nil
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context, filter shift.ShiftFilter) (shift.ListShiftsResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return shift.ListShiftsResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	shifts, total, err := s.ShiftRepository.List(ctx, filter, companyID)
	if err != nil {
		return shift.ListShiftsResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, item := range shifts {
		responses = append(responses, toShiftResponse(item))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return shift.ListShiftsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Shifts:     responses,
	}, nil
}

// UpdateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	current, err := s.ShiftRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return shift.ShiftResponse{}, fmt.Errorf("failed to parse shift date: %w", err)
		}
		current.Date = date
	}
	if req.StartTime != nil {
		current.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		current.EndTime = *req.EndTime
	}
	if req.LunchBreakStart != nil {
		current.LunchBreakStart = req.LunchBreakStart
	}
	if req.LunchBreakEnd != nil {
		current.LunchBreakEnd = req.LunchBreakEnd
	}
	if req.Type != nil {
		current.Type = shift.ShiftType(*req.Type)
	}
	if req.LocationID != nil {
		current.LocationID = req.LocationID
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		// FindConflicts skips the shift's own ID, so updating a shift in
		// place never conflicts with itself.
		if err := s.checkConflicts(txCtx, current); err != nil {
			return err
		}

		if err := s.ShiftRepository.Update(txCtx, current); err != nil {
			return fmt.Errorf("failed to update shift: %w", err)
		}
		return nil
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return toShiftResponse(current), nil
}

// DeleteShift implements shift.ShiftService.
func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.ShiftRepository.Delete(ctx, id, companyID)
}
