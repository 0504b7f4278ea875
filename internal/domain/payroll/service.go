package payroll

import "context"

// PayrollService defines business logic for payslip management. Every write
// path runs the totals computation over the full current record before
// persisting.
type PayrollService interface {
	CreatePayslip(ctx context.Context, req CreatePayslipRequest) (PayslipResponse, error)

	UpdatePayslip(ctx context.Context, req UpdatePayslipRequest) (PayslipResponse, error)

	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)

	ListPayslips(ctx context.Context, filter PayslipFilter) (ListPayslipsResponse, error)
}
