package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payslip is the computed monthly payroll record for one employee. There is
// exactly one per (employee, month, year); the totals block is always
// re-derived in full from the input fields, never patched one figure at a
// time.
type Payslip struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Month      int
	Year       int

	// Inputs
	GrossPay            decimal.Decimal
	OvertimePay         decimal.Decimal
	OtherEarnings       decimal.Decimal
	Bonus               decimal.Decimal
	SocialContributions decimal.Decimal
	IncomeTax           decimal.Decimal
	OtherDeductions     decimal.Decimal
	Advance1            decimal.Decimal
	Advance2            decimal.Decimal
	Advance3            decimal.Decimal
	Advance4            decimal.Decimal
	SeveranceAccrual    decimal.Decimal
	TransferAmount      decimal.Decimal
	WorkedHours         float64
	OvertimeHours       float64

	// Derived totals
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	TotalAdvances   decimal.Decimal
	Difference      decimal.Decimal

	Note      *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}
