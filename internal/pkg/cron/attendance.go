package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofooditalia/paycrew/internal/domain/attendance"
	"github.com/gofooditalia/paycrew/internal/domain/employee"
	"github.com/gofooditalia/paycrew/internal/domain/shift"
	"github.com/gofooditalia/paycrew/internal/pkg/database"
	"github.com/gofooditalia/paycrew/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	shiftRepo      shift.ShiftRepository
	employeeRepo   employee.EmployeeRepository
	policy         attendance.HoursPolicy
	db             *database.DB
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	policy attendance.HoursPolicy,
	db *database.DB,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		shiftRepo:      shiftRepo,
		employeeRepo:   employeeRepo,
		policy:         policy,
		db:             db,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("generate_attendance_from_shifts", 1*time.Hour, j.GenerateFromYesterdayShifts)
}

// GenerateFromYesterdayShifts expands yesterday's planned shifts into
// attendance records for every company, so the back office finds them in
// to_confirm the next morning. Records a human already settled are skipped;
// overwrite is an API-only affordance, the job never uses it.
func (j *AttendanceJobs) GenerateFromYesterdayShifts(ctx context.Context) error {
	// Only run at night (02:00-02:59 UTC)
	if time.Now().UTC().Hour() != 2 {
		return nil
	}

	slog.Info("Cron: Starting attendance generation from yesterday's shifts")

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	companyIDs, err := j.shiftRepo.ListCompanyIDsOnDate(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to list companies with shifts: %w", err)
	}

	for _, companyID := range companyIDs {
		if err := j.generateForCompany(ctx, companyID, yesterday); err != nil {
			slog.Error("Cron: attendance generation failed for company",
				"company_id", companyID, "date", yesterday.Format("2006-01-02"), "error", err)
		}
	}

	return nil
}

func (j *AttendanceJobs) generateForCompany(ctx context.Context, companyID string, date time.Time) error {
	shifts, err := j.shiftRepo.ListInRange(ctx, date, date, nil, nil, companyID)
	if err != nil {
		return fmt.Errorf("failed to list shifts: %w", err)
	}

	var generated, updated, skipped, failed int
	err = postgresql.WithTransaction(ctx, j.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		for _, s := range shifts {
			outcome, err := j.generateOne(txCtx, s)
			if err != nil {
				failed++
				slog.Warn("Cron: failed to generate attendance for shift",
					"shift_id", s.ID, "employee_id", s.EmployeeID, "error", err)
				continue
			}
			switch outcome {
			case attendance.OutcomeGenerated:
				generated++
			case attendance.OutcomeUpdated:
				updated++
			case attendance.OutcomeSkipped:
				skipped++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Cron: attendance generation completed for company",
		"company_id", companyID, "date", date.Format("2006-01-02"),
		"generated", generated, "updated", updated, "skipped", skipped, "failed", failed)
	return nil
}

func (j *AttendanceJobs) generateOne(ctx context.Context, s shift.Shift) (attendance.Outcome, error) {
	baseline := j.policy.DefaultDailyHours
	contract, err := j.employeeRepo.GetContract(ctx, s.EmployeeID, s.CompanyID)
	if err == nil {
		baseline = contract.DailyBaseline()
	} else if !errors.Is(err, employee.ErrContractNotFound) {
		return "", fmt.Errorf("failed to get contract: %w", err)
	}

	existing, err := j.attendanceRepo.GetByEmployeeAndDate(ctx, s.EmployeeID, s.Date, s.CompanyID)
	if err != nil {
		return "", fmt.Errorf("failed to get existing attendance: %w", err)
	}

	record, outcome, err := attendance.PlanFromShift(s, baseline, j.policy, existing, false)
	if err != nil {
		return "", err
	}

	switch outcome {
	case attendance.OutcomeGenerated:
		if _, err := j.attendanceRepo.Create(ctx, record); err != nil {
			return "", fmt.Errorf("failed to create attendance: %w", err)
		}
	case attendance.OutcomeUpdated:
		if err := j.attendanceRepo.Update(ctx, record); err != nil {
			return "", fmt.Errorf("failed to update attendance: %w", err)
		}
	}

	return outcome, nil
}
