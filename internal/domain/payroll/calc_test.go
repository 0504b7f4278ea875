package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals_RoundTrip(t *testing.T) {
	got := ComputeTotals(Inputs{
		GrossPay:            dec("2000"),
		OvertimePay:         dec("100"),
		OtherEarnings:       dec("0"),
		Bonus:               dec("50"),
		SocialContributions: dec("183.8"),
		IncomeTax:           dec("460"),
		OtherDeductions:     dec("0"),
		Advance1:            dec("500"),
	})

	assert.True(t, got.TotalGross.Equal(dec("2150")), "totalGross = %s", got.TotalGross)
	assert.True(t, got.TotalDeductions.Equal(dec("643.8")), "totalDeductions = %s", got.TotalDeductions)
	assert.True(t, got.NetPay.Equal(dec("1506.2")), "netPay = %s", got.NetPay)
	assert.True(t, got.TotalAdvances.Equal(dec("500")), "totalAdvances = %s", got.TotalAdvances)
	assert.True(t, got.Difference.Equal(dec("1006.2")), "difference = %s", got.Difference)
}

func TestComputeTotals_ZeroInputs(t *testing.T) {
	got := ComputeTotals(Inputs{})

	assert.True(t, got.TotalGross.IsZero())
	assert.True(t, got.TotalDeductions.IsZero())
	assert.True(t, got.NetPay.IsZero())
	assert.True(t, got.TotalAdvances.IsZero())
	assert.True(t, got.Difference.IsZero())
}

func TestComputeTotals_AllAdvances(t *testing.T) {
	got := ComputeTotals(Inputs{
		GrossPay: dec("1800"),
		Advance1: dec("200"),
		Advance2: dec("150"),
		Advance3: dec("100"),
		Advance4: dec("50"),
	})

	assert.True(t, got.TotalAdvances.Equal(dec("500")))
	assert.True(t, got.Difference.Equal(dec("1300")))
}

func TestComputeTotals_NegativeDifference(t *testing.T) {
	// Advances can legitimately exceed net pay; the residual goes negative
	// rather than being clamped.
	got := ComputeTotals(Inputs{
		GrossPay: dec("1000"),
		Advance1: dec("1200"),
	})

	assert.True(t, got.Difference.Equal(dec("-200")), "difference = %s", got.Difference)
}

func TestDeriveOvertimePay(t *testing.T) {
	// 40h/week: standard month is (40/5)*4.33 = 34.64h.
	// 2165 gross -> 62.5/h; 4h overtime at 1.25 -> 312.5.
	got := DeriveOvertimePay(dec("2165"), 4, 40, DefaultPolicy)
	assert.True(t, got.Equal(dec("312.5")), "overtime pay = %s", got)
}

func TestDeriveOvertimePay_NoRate(t *testing.T) {
	assert.True(t, DeriveOvertimePay(decimal.Zero, 4, 40, DefaultPolicy).IsZero())
	assert.True(t, DeriveOvertimePay(dec("2000"), 0, 40, DefaultPolicy).IsZero())
	assert.True(t, DeriveOvertimePay(dec("2000"), 4, 0, DefaultPolicy).IsZero())
}
