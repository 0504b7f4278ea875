package payroll

import "github.com/shopspring/decimal"

// Policy holds the jurisdiction-tunable payroll rates. They are configuration
// rather than inline literals because they are the figures most likely to
// change per country or contract type.
type Policy struct {
	// OvertimePremium is the multiplier applied to the hourly rate for
	// overtime hours.
	OvertimePremium decimal.Decimal
	// WeeksPerMonth converts weekly contract hours into a standard monthly
	// figure.
	WeeksPerMonth decimal.Decimal
	// WorkDaysPerWeek spreads weekly contract hours over the working week.
	WorkDaysPerWeek decimal.Decimal
}

// DefaultPolicy: 25% overtime premium, 4.33 weeks per month, 5-day week.
var DefaultPolicy = Policy{
	OvertimePremium: decimal.NewFromFloat(1.25),
	WeeksPerMonth:   decimal.NewFromFloat(4.33),
	WorkDaysPerWeek: decimal.NewFromInt(5),
}

// Inputs is the full set of monetary figures a payslip is computed from.
// Zero values stand in for omitted fields, so partial input never produces
// anything but a zero term in the sums.
type Inputs struct {
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
}

// Computed is the totals block derived from Inputs.
type Computed struct {
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	TotalAdvances   decimal.Decimal
	Difference      decimal.Decimal
}

// ComputeTotals derives every total from the current inputs:
//
//	totalGross      = grossPay + overtimePay + otherEarnings + bonus
//	totalDeductions = socialContributions + incomeTax + otherDeductions
//	netPay          = totalGross - totalDeductions
//	totalAdvances   = advance1 + advance2 + advance3 + advance4
//	difference      = netPay - totalAdvances
//
// Callers must always write the whole Computed block back; re-deriving
// everything on each update is what keeps the figures from drifting.
func ComputeTotals(in Inputs) Computed {
	totalGross := in.GrossPay.Add(in.OvertimePay).Add(in.OtherEarnings).Add(in.Bonus)
	totalDeductions := in.SocialContributions.Add(in.IncomeTax).Add(in.OtherDeductions)
	netPay := totalGross.Sub(totalDeductions)
	totalAdvances := in.Advance1.Add(in.Advance2).Add(in.Advance3).Add(in.Advance4)

	return Computed{
		TotalGross:      totalGross,
		TotalDeductions: totalDeductions,
		NetPay:          netPay,
		TotalAdvances:   totalAdvances,
		Difference:      netPay.Sub(totalAdvances),
	}
}

// DeriveOvertimePay prices overtime hours when no figure was supplied
// directly: the monthly gross is turned into an hourly rate over the
// standard month, standardMonthlyHours = (weeklyContractHours / workDays) *
// weeksPerMonth, then multiplied by the overtime hours and the premium.
// Result is rounded to 2 decimals. Returns zero when the inputs cannot
// produce a rate.
func DeriveOvertimePay(grossPay decimal.Decimal, overtimeHours, weeklyContractHours float64, p Policy) decimal.Decimal {
	if overtimeHours <= 0 || weeklyContractHours <= 0 || grossPay.IsZero() {
		return decimal.Zero
	}

	standardMonthlyHours := decimal.NewFromFloat(weeklyContractHours).
		Div(p.WorkDaysPerWeek).
		Mul(p.WeeksPerMonth)
	if standardMonthlyHours.IsZero() {
		return decimal.Zero
	}

	hourlyRate := grossPay.Div(standardMonthlyHours)
	return hourlyRate.
		Mul(decimal.NewFromFloat(overtimeHours)).
		Mul(p.OvertimePremium).
		Round(2)
}
