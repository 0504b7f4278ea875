package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/gofooditalia/paycrew/internal/domain/employee"
	"github.com/gofooditalia/paycrew/internal/domain/payroll"
	"github.com/gofooditalia/paycrew/internal/pkg/database"
	"github.com/gofooditalia/paycrew/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db *database.DB
	payroll.PayslipRepository
	employee.EmployeeRepository
	policy payroll.Policy
}

func NewPayrollService(
	db *database.DB,
	payslipRepo payroll.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
	policy payroll.Policy,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:                 db,
		PayslipRepository:  payslipRepo,
		EmployeeRepository: employeeRepo,
		policy:             policy,
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

func toPayslipResponse(p payroll.Payslip) payroll.PayslipResponse {
	return payroll.PayslipResponse{
		ID:                  p.ID,
		EmployeeID:          p.EmployeeID,
		EmployeeName:        p.EmployeeName,
		Month:               p.Month,
		Year:                p.Year,
		GrossPay:            p.GrossPay,
		OvertimePay:         p.OvertimePay,
		OtherEarnings:       p.OtherEarnings,
		Bonus:               p.Bonus,
		TotalGross:          p.TotalGross,
		SocialContributions: p.SocialContributions,
		IncomeTax:           p.IncomeTax,
		OtherDeductions:     p.OtherDeductions,
		TotalDeductions:     p.TotalDeductions,
		NetPay:              p.NetPay,
		Advance1:            p.Advance1,
		Advance2:            p.Advance2,
		Advance3:            p.Advance3,
		Advance4:            p.Advance4,
		TotalAdvances:       p.TotalAdvances,
		Difference:          p.Difference,
		SeveranceAccrual:    p.SeveranceAccrual,
		TransferAmount:      p.TransferAmount,
		WorkedHours:         p.WorkedHours,
		OvertimeHours:       p.OvertimeHours,
		Note:                p.Note,
		CreatedAt:           p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           p.UpdatedAt.Format(time.RFC3339),
	}
}

// applyTotals recomputes the whole derived block from the payslip's current
// input figures and writes it back.
func applyTotals(p *payroll.Payslip) {
	computed := payroll.ComputeTotals(payroll.Inputs{
		GrossPay:            p.GrossPay,
		OvertimePay:         p.OvertimePay,
		OtherEarnings:       p.OtherEarnings,
		Bonus:               p.Bonus,
		SocialContributions: p.SocialContributions,
		IncomeTax:           p.IncomeTax,
		OtherDeductions:     p.OtherDeductions,
		Advance1:            p.Advance1,
		Advance2:            p.Advance2,
		Advance3:            p.Advance3,
		Advance4:            p.Advance4,
	})

	p.TotalGross = computed.TotalGross
	p.TotalDeductions = computed.TotalDeductions
	p.NetPay = computed.NetPay
	p.TotalAdvances = computed.TotalAdvances
	p.Difference = computed.Difference
}

// CreatePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreatePayslip(ctx context.Context, req payroll.CreatePayslipRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return payroll.PayslipResponse{}, err
	}

	overtimePay := decimal.Zero
	if req.OvertimePay != nil {
		overtimePay = *req.OvertimePay
	} else if req.OvertimeHours > 0 {
		// No figure supplied, price the hours from the contract.
		contract, err := s.EmployeeRepository.GetContract(ctx, req.EmployeeID, companyID)
		if err != nil && !errors.Is(err, employee.ErrContractNotFound) {
			return payroll.PayslipResponse{}, fmt.Errorf("failed to get contract for employee %s: %w", req.EmployeeID, err)
		}
		overtimePay = payroll.DeriveOvertimePay(req.GrossPay, req.OvertimeHours, contract.WeeklyContractHours, s.policy)
	}

	newPayslip := payroll.Payslip{
		CompanyID:           companyID,
		EmployeeID:          req.EmployeeID,
		Month:               req.Month,
		Year:                req.Year,
		GrossPay:            req.GrossPay,
		OvertimePay:         overtimePay,
		OtherEarnings:       req.OtherEarnings,
		Bonus:               req.Bonus,
		SocialContributions: req.SocialContributions,
		IncomeTax:           req.IncomeTax,
		OtherDeductions:     req.OtherDeductions,
		Advance1:            req.Advance1,
		Advance2:            req.Advance2,
		Advance3:            req.Advance3,
		Advance4:            req.Advance4,
		SeveranceAccrual:    req.SeveranceAccrual,
		TransferAmount:      req.TransferAmount,
		WorkedHours:         req.WorkedHours,
		OvertimeHours:       req.OvertimeHours,
		Note:                req.Note,
	}
	applyTotals(&newPayslip)

	var created payroll.Payslip
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := s.PayslipRepository.GetByPeriod(txCtx, req.EmployeeID, req.Month, req.Year, companyID)
		if err != nil {
			return fmt.Errorf("failed to check payslip period: %w", err)
		}
		if existing != nil {
			return payroll.ErrDuplicatePeriod
		}

		created, err = s.PayslipRepository.Create(txCtx, newPayslip)
		if err != nil {
			return fmt.Errorf("failed to create payslip: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	return toPayslipResponse(created), nil
}

// UpdatePayslip implements payroll.PayrollService. Partial changes are merged
// onto the stored record and the totals block is recomputed from the merged
// whole.
func (s *PayrollServiceImpl) UpdatePayslip(ctx context.Context, req payroll.UpdatePayslipRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	current, err := s.PayslipRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	if req.GrossPay != nil {
		current.GrossPay = *req.GrossPay
	}
	if req.OvertimePay != nil {
		current.OvertimePay = *req.OvertimePay
	}
	if req.OtherEarnings != nil {
		current.OtherEarnings = *req.OtherEarnings
	}
	if req.Bonus != nil {
		current.Bonus = *req.Bonus
	}
	if req.SocialContributions != nil {
		current.SocialContributions = *req.SocialContributions
	}
	if req.IncomeTax != nil {
		current.IncomeTax = *req.IncomeTax
	}
	if req.OtherDeductions != nil {
		current.OtherDeductions = *req.OtherDeductions
	}
	if req.Advance1 != nil {
		current.Advance1 = *req.Advance1
	}
	if req.Advance2 != nil {
		current.Advance2 = *req.Advance2
	}
	if req.Advance3 != nil {
		current.Advance3 = *req.Advance3
	}
	if req.Advance4 != nil {
		current.Advance4 = *req.Advance4
	}
	if req.SeveranceAccrual != nil {
		current.SeveranceAccrual = *req.SeveranceAccrual
	}
	if req.TransferAmount != nil {
		current.TransferAmount = *req.TransferAmount
	}
	if req.WorkedHours != nil {
		current.WorkedHours = *req.WorkedHours
	}
	if req.OvertimeHours != nil {
		current.OvertimeHours = *req.OvertimeHours
	}
	if req.Note != nil {
		current.Note = req.Note
	}

	applyTotals(&current)

	if err := s.PayslipRepository.Update(ctx, current); err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to update payslip: %w", err)
	}

	return toPayslipResponse(current), nil
}

// GetPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	found, err := s.PayslipRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	return toPayslipResponse(found), nil
}

// ListPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, filter payroll.PayslipFilter) (payroll.ListPayslipsResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.ListPayslipsResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	payslips, total, err := s.PayslipRepository.List(ctx, filter, companyID)
	if err != nil {
		return payroll.ListPayslipsResponse{}, fmt.Errorf("failed to list payslips: %w", err)
	}

	responses := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, item := range payslips {
		responses = append(responses, toPayslipResponse(item))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return payroll.ListPayslipsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Payslips:   responses,
	}, nil
}
