package payroll

import (
	"github.com/gofooditalia/paycrew/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePayslipRequest struct {
	EmployeeID          string           `json:"employee_id"`
	Month               int              `json:"month"`
	Year                int              `json:"year"`
	GrossPay            decimal.Decimal  `json:"gross_pay"`
	OvertimePay         *decimal.Decimal `json:"overtime_pay,omitempty"`
	OtherEarnings       decimal.Decimal  `json:"other_earnings"`
	Bonus               decimal.Decimal  `json:"bonus"`
	SocialContributions decimal.Decimal  `json:"social_contributions"`
	IncomeTax           decimal.Decimal  `json:"income_tax"`
	OtherDeductions     decimal.Decimal  `json:"other_deductions"`
	Advance1            decimal.Decimal  `json:"advance1"`
	Advance2            decimal.Decimal  `json:"advance2"`
	Advance3            decimal.Decimal  `json:"advance3"`
	Advance4            decimal.Decimal  `json:"advance4"`
	SeveranceAccrual    decimal.Decimal  `json:"severance_accrual"`
	TransferAmount      decimal.Decimal  `json:"transfer_amount"`
	WorkedHours         float64          `json:"worked_hours"`
	OvertimeHours       float64          `json:"overtime_hours"`
	Note                *string          `json:"note,omitempty"`
}

func (r *CreatePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2000 or later"})
	}
	if r.GrossPay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "gross_pay", Message: "must be non-negative"})
	}
	if r.WorkedHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "worked_hours", Message: "must be non-negative"})
	}
	if r.OvertimeHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePayslipRequest carries partial changes; the service merges them onto
// the stored record and recomputes every total from the merged whole.
type UpdatePayslipRequest struct {
	ID                  string
	GrossPay            *decimal.Decimal `json:"gross_pay,omitempty"`
	OvertimePay         *decimal.Decimal `json:"overtime_pay,omitempty"`
	OtherEarnings       *decimal.Decimal `json:"other_earnings,omitempty"`
	Bonus               *decimal.Decimal `json:"bonus,omitempty"`
	SocialContributions *decimal.Decimal `json:"social_contributions,omitempty"`
	IncomeTax           *decimal.Decimal `json:"income_tax,omitempty"`
	OtherDeductions     *decimal.Decimal `json:"other_deductions,omitempty"`
	Advance1            *decimal.Decimal `json:"advance1,omitempty"`
	Advance2            *decimal.Decimal `json:"advance2,omitempty"`
	Advance3            *decimal.Decimal `json:"advance3,omitempty"`
	Advance4            *decimal.Decimal `json:"advance4,omitempty"`
	SeveranceAccrual    *decimal.Decimal `json:"severance_accrual,omitempty"`
	TransferAmount      *decimal.Decimal `json:"transfer_amount,omitempty"`
	WorkedHours         *float64         `json:"worked_hours,omitempty"`
	OvertimeHours       *float64         `json:"overtime_hours,omitempty"`
	Note                *string          `json:"note,omitempty"`
}

func (r *UpdatePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.GrossPay != nil && r.GrossPay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "gross_pay", Message: "must be non-negative"})
	}
	if r.WorkedHours != nil && *r.WorkedHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "worked_hours", Message: "must be non-negative"})
	}
	if r.OvertimeHours != nil && *r.OvertimeHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipResponse struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	EmployeeName        *string         `json:"employee_name,omitempty"`
	Month               int             `json:"month"`
	Year                int             `json:"year"`
	GrossPay            decimal.Decimal `json:"gross_pay"`
	OvertimePay         decimal.Decimal `json:"overtime_pay"`
	OtherEarnings       decimal.Decimal `json:"other_earnings"`
	Bonus               decimal.Decimal `json:"bonus"`
	TotalGross          decimal.Decimal `json:"total_gross"`
	SocialContributions decimal.Decimal `json:"social_contributions"`
	IncomeTax           decimal.Decimal `json:"income_tax"`
	OtherDeductions     decimal.Decimal `json:"other_deductions"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	NetPay              decimal.Decimal `json:"net_pay"`
	Advance1            decimal.Decimal `json:"advance1"`
	Advance2            decimal.Decimal `json:"advance2"`
	Advance3            decimal.Decimal `json:"advance3"`
	Advance4            decimal.Decimal `json:"advance4"`
	TotalAdvances       decimal.Decimal `json:"total_advances"`
	Difference          decimal.Decimal `json:"difference"`
	SeveranceAccrual    decimal.Decimal `json:"severance_accrual"`
	TransferAmount      decimal.Decimal `json:"transfer_amount"`
	WorkedHours         float64         `json:"worked_hours"`
	OvertimeHours       float64         `json:"overtime_hours"`
	Note                *string         `json:"note,omitempty"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
}

type PayslipFilter struct {
	EmployeeID *string
	Month      *int
	Year       *int
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

type ListPayslipsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Payslips   []PayslipResponse `json:"payslips"`
}
