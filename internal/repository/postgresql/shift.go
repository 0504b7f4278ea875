package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofooditalia/paycrew/internal/domain/shift"
	"github.com/gofooditalia/paycrew/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	query := `
		INSERT INTO shifts (
			id, company_id, employee_id, date, start_time, end_time,
			lunch_break_start, lunch_break_end, type, location_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID, s.CompanyID, s.EmployeeID, s.Date, s.StartTime, s.EndTime,
		s.LunchBreakStart, s.LunchBreakEnd, s.Type, s.LocationID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to insert shift: %w", err)
	}

	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.company_id, s.employee_id, s.date, s.start_time, s.end_time,
			s.lunch_break_start, s.lunch_break_end, s.type, s.location_id,
			s.created_at, s.updated_at,
			e.full_name AS employee_name
		FROM shifts s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1 AND s.company_id = $2
	`

	var s shift.Shift
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.EmployeeID, &s.Date, &s.StartTime, &s.EndTime,
		&s.LunchBreakStart, &s.LunchBreakEnd, &s.Type, &s.LocationID,
		&s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	return s, nil
}

// ListByEmployeeAndDate implements shift.ShiftRepository.
func (r *shiftRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, date, start_time, end_time,
			lunch_break_start, lunch_break_end, type, location_id,
			created_at, updated_at
		FROM shifts
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
		ORDER BY start_time
	`

	rows, err := q.Query(ctx, query, employeeID, date, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts by employee and date: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

// ListInRange implements shift.ShiftRepository.
func (r *shiftRepository) ListInRange(ctx context.Context, from, to time.Time, employeeID, locationID *string, companyID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "date >= $1 AND date <= $2 AND company_id = $3"
	args := []interface{}{from, to, companyID}
	argIdx := 4

	if employeeID != nil && *employeeID != "" {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *employeeID)
		argIdx++
	}
	if locationID != nil && *locationID != "" {
		baseWhere += fmt.Sprintf(" AND location_id = $%d", argIdx)
		args = append(args, *locationID)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT id, company_id, employee_id, date, start_time, end_time,
			lunch_break_start, lunch_break_end, type, location_id,
			created_at, updated_at
		FROM shifts
		WHERE %s
		ORDER BY date, employee_id, start_time
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts in range: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

// ListCompanyIDsOnDate implements shift.ShiftRepository.
func (r *shiftRepository) ListCompanyIDsOnDate(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT DISTINCT company_id FROM shifts WHERE date = $1", date)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies with shifts: %w", err)
	}
	defer rows.Close()

	var companyIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company ID: %w", err)
		}
		companyIDs = append(companyIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate company IDs: %w", err)
	}

	return companyIDs, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET date = $1, start_time = $2, end_time = $3,
			lunch_break_start = $4, lunch_break_end = $5,
			type = $6, location_id = $7, updated_at = NOW()
		WHERE id = $8 AND company_id = $9
	`

	tag, err := q.Exec(ctx, query,
		s.Date, s.StartTime, s.EndTime,
		s.LunchBreakStart, s.LunchBreakEnd,
		s.Type, s.LocationID,
		s.ID, s.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM shifts WHERE id = $1 AND company_id = $2", id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepository) List(ctx context.Context, filter shift.ShiftFilter, companyID string) ([]shift.Shift, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "s.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.LocationID != nil && *filter.LocationID != "" {
		baseWhere += fmt.Sprintf(" AND s.location_id = $%d", argIdx)
		args = append(args, *filter.LocationID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM shifts s WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shifts: %w", err)
	}

	orderByField := "s.date"
	switch filter.SortBy {
	case "start_time":
		orderByField = "s.start_time"
	case "employee":
		orderByField = "e.full_name"
	case "created_at":
		orderByField = "s.created_at"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT s.id, s.company_id, s.employee_id, s.date, s.start_time, s.end_time,
			s.lunch_break_start, s.lunch_break_end, s.type, s.location_id,
			s.created_at, s.updated_at,
			e.full_name AS employee_name
		FROM shifts s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE %s
		ORDER BY %s %s, s.start_time
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
		return nil, 0, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		err := rows.Scan(
			&s.ID, &s.CompanyID, &s.EmployeeID, &s.Date, &s.StartTime, &s.EndTime,
			&s.LunchBreakStart, &s.LunchBreakEnd, &s.Type, &s.LocationID,
			&s.CreatedAt, &s.UpdatedAt,
			&s.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, total, nil
}

func scanShifts(rows pgx.Rows) ([]shift.Shift, error) {
	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		err := rows.Scan(
			&s.ID, &s.CompanyID, &s.EmployeeID, &s.Date, &s.StartTime, &s.EndTime,
			&s.LunchBreakStart, &s.LunchBreakEnd, &s.Type, &s.LocationID,
			&s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return shifts, nil
}
