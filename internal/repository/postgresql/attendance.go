package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofooditalia/paycrew/internal/domain/attendance"
	"github.com/gofooditalia/paycrew/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendances (
			id, company_id, employee_id, date, shift_id, entry_time, exit_time,
			worked_hours, overtime_hours, status, note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.ID, a.CompanyID, a.EmployeeID, a.Date, a.ShiftID, a.EntryTime, a.ExitTime,
		a.WorkedHours, a.OvertimeHours, a.Status, a.Note,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to insert attendance: %w", err)
	}

	return a, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.company_id, a.employee_id, a.date, a.shift_id,
			a.entry_time, a.exit_time, a.worked_hours, a.overtime_hours,
			a.status, a.note, a.created_at, a.updated_at,
			e.full_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.company_id = $2
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&a.ID, &a.CompanyID, &a.EmployeeID, &a.Date, &a.ShiftID,
		&a.EntryTime, &a.ExitTime, &a.WorkedHours, &a.OvertimeHours,
		&a.Status, &a.Note, &a.CreatedAt, &a.UpdatedAt,
		&a.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return a, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, date, shift_id,
			entry_time, exit_time, worked_hours, overtime_hours,
			status, note, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date, companyID).Scan(
		&a.ID, &a.CompanyID, &a.EmployeeID, &a.Date, &a.ShiftID,
		&a.EntryTime, &a.ExitTime, &a.WorkedHours, &a.OvertimeHours,
		&a.Status, &a.Note, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &a, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET shift_id = $1, entry_time = $2, exit_time = $3,
			worked_hours = $4, overtime_hours = $5,
			status = $6, note = $7, updated_at = NOW()
		WHERE id = $8 AND company_id = $9
	`

	tag, err := q.Exec(ctx, query,
		a.ShiftID, a.EntryTime, a.ExitTime,
		a.WorkedHours, a.OvertimeHours,
		a.Status, a.Note,
		a.ID, a.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "a.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "status":
		orderByField = "a.status"
	case "employee":
		orderByField = "e.full_name"
	case "created_at":
		orderByField = "a.created_at"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT a.id, a.company_id, a.employee_id, a.date, a.shift_id,
			a.entry_time, a.exit_time, a.worked_hours, a.overtime_hours,
			a.status, a.note, a.created_at, a.updated_at,
			e.full_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s, a.employee_id
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		err := rows.Scan(
			&a.ID, &a.CompanyID, &a.EmployeeID, &a.Date, &a.ShiftID,
			&a.EntryTime, &a.ExitTime, &a.WorkedHours, &a.OvertimeHours,
			&a.Status, &a.Note, &a.CreatedAt, &a.UpdatedAt,
			&a.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, total, nil
}
