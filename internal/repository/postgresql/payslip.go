package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofooditalia/paycrew/internal/domain/payroll"
	"github.com/gofooditalia/paycrew/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepository{db: db}
}

const payslipColumns = `
	p.id, p.company_id, p.employee_id, p.month, p.year,
	p.gross_pay, p.overtime_pay, p.other_earnings, p.bonus,
	p.social_contributions, p.income_tax, p.other_deductions,
	p.advance1, p.advance2, p.advance3, p.advance4,
	p.severance_accrual, p.transfer_amount,
	p.worked_hours, p.overtime_hours,
	p.total_gross, p.total_deductions, p.net_pay, p.total_advances, p.difference,
	p.note, p.created_at, p.updated_at
`

func scanPayslip(row pgx.Row, p *payroll.Payslip, withEmployee bool) error {
	dest := []interface{}{
		&p.ID, &p.CompanyID, &p.EmployeeID, &p.Month, &p.Year,
		&p.GrossPay, &p.OvertimePay, &p.OtherEarnings, &p.Bonus,
		&p.SocialContributions, &p.IncomeTax, &p.OtherDeductions,
		&p.Advance1, &p.Advance2, &p.Advance3, &p.Advance4,
		&p.SeveranceAccrual, &p.TransferAmount,
		&p.WorkedHours, &p.OvertimeHours,
		&p.TotalGross, &p.TotalDeductions, &p.NetPay, &p.TotalAdvances, &p.Difference,
		&p.Note, &p.CreatedAt, &p.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &p.EmployeeName)
	}
	return row.Scan(dest...)
}

// Create implements payroll.PayslipRepository.
func (r *payslipRepository) Create(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	query := `
		INSERT INTO payslips (
			id, company_id, employee_id, month, year,
			gross_pay, overtime_pay, other_earnings, bonus,
			social_contributions, income_tax, other_deductions,
			advance1, advance2, advance3, advance4,
			severance_accrual, transfer_amount,
			worked_hours, overtime_hours,
			total_gross, total_deductions, net_pay, total_advances, difference,
			note
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12,
			$13, $14, $15, $16,
			$17, $18,
			$19, $20,
			$21, $22, $23, $24, $25,
			$26
		)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.CompanyID, p.EmployeeID, p.Month, p.Year,
		p.GrossPay, p.OvertimePay, p.OtherEarnings, p.Bonus,
		p.SocialContributions, p.IncomeTax, p.OtherDeductions,
		p.Advance1, p.Advance2, p.Advance3, p.Advance4,
		p.SeveranceAccrual, p.TransferAmount,
		p.WorkedHours, p.OvertimeHours,
		p.TotalGross, p.TotalDeductions, p.NetPay, p.TotalAdvances, p.Difference,
		p.Note,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to insert payslip: %w", err)
	}

	return p, nil
}

// GetByID implements payroll.PayslipRepository.
func (r *payslipRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, e.full_name AS employee_name
		FROM payslips p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1 AND p.company_id = $2
	`, payslipColumns)

	var p payroll.Payslip
	err := scanPayslip(q.QueryRow(ctx, query, id, companyID), &p, true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip by ID: %w", err)
	}

	return p, nil
}

// GetByPeriod implements payroll.PayslipRepository.
func (r *payslipRepository) GetByPeriod(ctx context.Context, employeeID string, month, year int, companyID string) (*payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payslips p
		WHERE p.employee_id = $1 AND p.month = $2 AND p.year = $3 AND p.company_id = $4
	`, payslipColumns)

	var p payroll.Payslip
	err := scanPayslip(q.QueryRow(ctx, query, employeeID, month, year, companyID), &p, false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payslip by period: %w", err)
	}

	return &p, nil
}

// Update implements payroll.PayslipRepository.
func (r *payslipRepository) Update(ctx context.Context, p payroll.Payslip) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET gross_pay = $1, overtime_pay = $2, other_earnings = $3, bonus = $4,
			social_contributions = $5, income_tax = $6, other_deductions = $7,
			advance1 = $8, advance2 = $9, advance3 = $10, advance4 = $11,
			severance_accrual = $12, transfer_amount = $13,
			worked_hours = $14, overtime_hours = $15,
			total_gross = $16, total_deductions = $17, net_pay = $18,
			total_advances = $19, difference = $20,
			note = $21, updated_at = NOW()
		WHERE id = $22 AND company_id = $23
	`

	tag, err := q.Exec(ctx, query,
		p.GrossPay, p.OvertimePay, p.OtherEarnings, p.Bonus,
		p.SocialContributions, p.IncomeTax, p.OtherDeductions,
		p.Advance1, p.Advance2, p.Advance3, p.Advance4,
		p.SeveranceAccrual, p.TransferAmount,
		p.WorkedHours, p.OvertimeHours,
		p.TotalGross, p.TotalDeductions, p.NetPay,
		p.TotalAdvances, p.Difference,
		p.Note,
		p.ID, p.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}

	return nil
}

// List implements payroll.PayslipRepository.
func (r *payslipRepository) List(ctx context.Context, filter payroll.PayslipFilter, companyID string) ([]payroll.Payslip, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "p.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil {
		baseWhere += fmt.Sprintf(" AND p.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND p.year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM payslips p WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payslips: %w", err)
	}

	orderByField := "p.year DESC, p.month"
	switch filter.SortBy {
	case "employee":
		orderByField = "e.full_name"
	case "net_pay":
		orderByField = "p.net_pay"
	case "created_at":
		orderByField = "p.created_at"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s, e.full_name AS employee_name
		FROM payslips p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, payslipColumns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

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
		return nil, 0, fmt.Errorf("failed to query payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		var p payroll.Payslip
		if err := scanPayslip(rows, &p, true); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payslips: %w", err)
	}

	return payslips, total, nil
}
