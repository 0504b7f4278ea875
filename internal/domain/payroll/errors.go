package payroll

import "errors"

// Payroll domain errors
var (
	ErrPayslipNotFound = errors.New("payslip not found")
	// ErrDuplicatePeriod: one payslip per employee per (month, year).
	ErrDuplicatePeriod = errors.New("a payslip already exists for this employee and period")
)
