package payroll

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/gofooditalia/paycrew/internal/domain/payroll"
	"github.com/gofooditalia/paycrew/internal/pkg/database"
	"github.com/gofooditalia/paycrew/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

const testSchema = `
CREATE TABLE IF NOT EXISTS employees (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	full_name TEXT NOT NULL,
	email TEXT,
	location_id TEXT,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS employee_contracts (
	employee_id TEXT PRIMARY KEY REFERENCES employees(id),
	weekly_contract_hours DOUBLE PRECISION NOT NULL
);
CREATE TABLE IF NOT EXISTS payslips (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	employee_id TEXT NOT NULL,
	month INT NOT NULL,
	year INT NOT NULL,
	gross_pay NUMERIC(12,2) NOT NULL DEFAULT 0,
	overtime_pay NUMERIC(12,2) NOT NULL DEFAULT 0,
	other_earnings NUMERIC(12,2) NOT NULL DEFAULT 0,
	bonus NUMERIC(12,2) NOT NULL DEFAULT 0,
	social_contributions NUMERIC(12,2) NOT NULL DEFAULT 0,
	income_tax NUMERIC(12,2) NOT NULL DEFAULT 0,
	other_deductions NUMERIC(12,2) NOT NULL DEFAULT 0,
	advance1 NUMERIC(12,2) NOT NULL DEFAULT 0,
	advance2 NUMERIC(12,2) NOT NULL DEFAULT 0,
	advance3 NUMERIC(12,2) NOT NULL DEFAULT 0,
	advance4 NUMERIC(12,2) NOT NULL DEFAULT 0,
	severance_accrual NUMERIC(12,2) NOT NULL DEFAULT 0,
	transfer_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
	worked_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
	overtime_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_gross NUMERIC(12,2) NOT NULL DEFAULT 0,
	total_deductions NUMERIC(12,2) NOT NULL DEFAULT 0,
	net_pay NUMERIC(12,2) NOT NULL DEFAULT 0,
	total_advances NUMERIC(12,2) NOT NULL DEFAULT 0,
	difference NUMERIC(12,2) NOT NULL DEFAULT 0,
	note TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

func testInit(t *testing.T) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if testDB == nil {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn)
		require.NoError(t, err)
		_, err = testDB.Exec(context.Background(), testSchema)
		require.NoError(t, err)
	}
	for _, table := range []string{"payslips", "employee_contracts", "employees"} {
		_, err := testDB.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func authedContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id": companyID,
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func createTestEmployee(t *testing.T, companyID string, weeklyHours float64) string {
	t.Helper()
	id := uuid.New().String()
	_, err := testDB.Exec(context.Background(), `
		INSERT INTO employees (id, company_id, full_name) VALUES ($1, $2, 'Test Employee')
	`, id, companyID)
	require.NoError(t, err)
	if weeklyHours > 0 {
		_, err = testDB.Exec(context.Background(), `
			INSERT INTO employee_contracts (employee_id, weekly_contract_hours) VALUES ($1, $2)
		`, id, weeklyHours)
		require.NoError(t, err)
	}
	return id
}

func newTestService() payroll.PayrollService {
	return NewPayrollService(
		testDB,
		postgresql.NewPayslipRepository(testDB),
		postgresql.NewEmployeeRepository(testDB),
		payroll.DefaultPolicy,
	)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPayrollService_CreatePayslip_Totals(t *testing.T) {
	testInit(t)

	companyID := uuid.New().String()
	ctx := authedContext(t, companyID)
	employeeID := createTestEmployee(t, companyID, 40)

	svc := newTestService()

	overtimePay := dec("100")
	created, err := svc.CreatePayslip(ctx, payroll.CreatePayslipRequest{
		EmployeeID:          employeeID,
		Month:               1,
		Year:                2026,
		GrossPay:            dec("2000"),
		OvertimePay:         &overtimePay,
		Bonus:               dec("50"),
		SocialContributions: dec("183.8"),
		IncomeTax:           dec("460"),
		Advance1:            dec("500"),
	})
	require.NoError(t, err)

	assert.True(t, created.TotalGross.Equal(dec("2150")), "total gross %s", created.TotalGross)
	assert.True(t, created.TotalDeductions.Equal(dec("643.8")), "total deductions %s", created.TotalDeductions)
	assert.True(t, created.NetPay.Equal(dec("1506.2")), "net pay %s", created.NetPay)
	assert.True(t, created.TotalAdvances.Equal(dec("500")), "total advances %s", created.TotalAdvances)
	assert.True(t, created.Difference.Equal(dec("1006.2")), "difference %s", created.Difference)
}

func TestPayrollService_CreatePayslip_DerivesOvertimePay(t *testing.T) {
	testInit(t)

	companyID := uuid.New().String()
	ctx := authedContext(t, companyID)
	employeeID := createTestEmployee(t, companyID, 40)

	svc := newTestService()

	// No overtime_pay given: 2165 / ((40/5)*4.33) = 62.50/h, 4h at 1.25x.
	created, err := svc.CreatePayslip(ctx, payroll.CreatePayslipRequest{
		EmployeeID:    employeeID,
		Month:         2,
		Year:          2026,
		GrossPay:      dec("2165"),
		OvertimeHours: 4,
	})
	require.NoError(t, err)
	assert.True(t, created.OvertimePay.Equal(dec("312.5")), "overtime pay %s", created.OvertimePay)
	assert.True(t, created.TotalGross.Equal(dec("2477.5")), "total gross %s", created.TotalGross)
}

func TestPayrollService_CreatePayslip_DuplicatePeriod(t *testing.T) {
	testInit(t)

	companyID := uuid.New().String()
	ctx := authedContext(t, companyID)
	employeeID := createTestEmployee(t, companyID, 40)

	svc := newTestService()

	req := payroll.CreatePayslipRequest{
		EmployeeID: employeeID,
		Month:      3,
		Year:       2026,
		GrossPay:   dec("2000"),
	}
	_, err := svc.CreatePayslip(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreatePayslip(ctx, req)
	assert.ErrorIs(t, err, payroll.ErrDuplicatePeriod)
}

func TestPayrollService_UpdatePayslip_RecomputesTotals(t *testing.T) {
	testInit(t)

	companyID := uuid.New().String()
	ctx := authedContext(t, companyID)
	employeeID := createTestEmployee(t, companyID, 40)

	svc := newTestService()

	created, err := svc.CreatePayslip(ctx, payroll.CreatePayslipRequest{
		EmployeeID: employeeID,
		Month:      4,
		Year:       2026,
		GrossPay:   dec("2000"),
		IncomeTax:  dec("400"),
	})
	require.NoError(t, err)
	require.True(t, created.NetPay.Equal(dec("1600")))

	// Changing one advance re-derives the whole totals block.
	advance := dec("700")
	updated, err := svc.UpdatePayslip(ctx, payroll.UpdatePayslipRequest{
		ID:       created.ID,
		Advance2: &advance,
	})
	require.NoError(t, err)
	assert.True(t, updated.TotalAdvances.Equal(dec("700")), "total advances %s", updated.TotalAdvances)
	assert.True(t, updated.Difference.Equal(dec("900")), "difference %s", updated.Difference)
	assert.True(t, updated.NetPay.Equal(dec("1600")), "net pay %s", updated.NetPay)
}
