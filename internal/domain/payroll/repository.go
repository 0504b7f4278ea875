package payroll

import "context"

// PayslipRepository defines data access methods for payslips.
// All methods include companyID to prevent cross-company data access.
type PayslipRepository interface {
	Create(ctx context.Context, p Payslip) (Payslip, error)

	GetByID(ctx context.Context, id string, companyID string) (Payslip, error)

	// GetByPeriod returns the payslip for (employee, month, year) or nil.
	// Creation consults it to enforce one payslip per period.
	GetByPeriod(ctx context.Context, employeeID string, month, year int, companyID string) (*Payslip, error)

	Update(ctx context.Context, p Payslip) error

	List(ctx context.Context, filter PayslipFilter, companyID string) ([]Payslip, int64, error)
}
