package postgresql

import (
	"context"
	"fmt"

	"github.com/gofooditalia/paycrew/internal/domain/employee"
	"github.com/gofooditalia/paycrew/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, full_name, email, location_id, is_active,
			created_at, updated_at
		FROM employees
		WHERE id = $1 AND company_id = $2
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&e.ID, &e.CompanyID, &e.FullName, &e.Email, &e.LocationID, &e.IsActive,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return e, nil
}

// GetContract implements employee.EmployeeRepository.
func (r *employeeRepository) GetContract(ctx context.Context, employeeID string, companyID string) (employee.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.employee_id, c.weekly_contract_hours
		FROM employee_contracts c
		JOIN employees e ON e.id = c.employee_id
		WHERE c.employee_id = $1 AND e.company_id = $2
	`

	var c employee.Contract
	err := q.QueryRow(ctx, query, employeeID, companyID).Scan(
		&c.EmployeeID, &c.WeeklyContractHours,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Contract{}, employee.ErrContractNotFound
		}
		return employee.Contract{}, fmt.Errorf("failed to get contract: %w", err)
	}

	return c, nil
}
