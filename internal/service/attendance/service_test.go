package attendance

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/gofooditalia/paycrew/internal/domain/attendance"
	"github.com/gofooditalia/paycrew/internal/domain/shift"
	"github.com/gofooditalia/paycrew/internal/pkg/database"
	"github.com/gofooditalia/paycrew/internal/repository/postgresql"
	"github.com/google/uuid"
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
CREATE TABLE IF NOT EXISTS shifts (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	employee_id TEXT NOT NULL,
	date DATE NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	lunch_break_start TEXT,
	lunch_break_end TEXT,
	type TEXT NOT NULL,
	location_id TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS attendances (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	employee_id TEXT NOT NULL,
	date DATE NOT NULL,
	shift_id TEXT,
	entry_time TEXT NOT NULL DEFAULT '',
	exit_time TEXT,
	worked_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
	overtime_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
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
	for _, table := range []string{"attendances", "shifts", "employee_contracts", "employees"} {
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

func createTestShift(t *testing.T, companyID, employeeID string, date time.Time, start, end string) string {
	t.Helper()
	id := uuid.New().String()
	_, err := testDB.Exec(context.Background(), `
		INSERT INTO shifts (id, company_id, employee_id, date, start_time, end_time, type)
		VALUES ($1, $2, $3, $4, $5, $6, 'morning')
	`, id, companyID, employeeID, date, start, end)
	require.NoError(t, err)
	return id
}

func newTestService() attendance.AttendanceService {
	return NewAttendanceService(
		testDB,
		postgresql.NewAttendanceRepository(testDB),
		postgresql.NewShiftRepository(testDB),
		postgresql.NewEmployeeRepository(testDB),
		attendance.DefaultHoursPolicy,
	)
}

func TestAttendanceService_GenerateForRange(t *testing.T) {
	testInit(t)

	companyID := uuid.New().String()
	ctx := authedContext(t, companyID)
	employeeID := createTestEmployee(t, companyID, 40)

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		createTestShift(t, companyID, employeeID, monday.AddDate(0, 0, i), "09:00", "18:00")
	}

	svc := newTestService()

	result, err := svc.GenerateForRange(ctx, attendance.GenerateRangeRequest{
		DateFrom: "2026-03-02",
		DateTo:   "2026-03-04",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Generated)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	// Second run: pending records are refreshed, not duplicated.
	result, err = svc.GenerateForRange(ctx, attendance.GenerateRangeRequest{
		DateFrom: "2026-03-02",
		DateTo:   "2026-03-04",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Generated)
	assert.Equal(t, 3, result.Updated)

	var count int
	err = testDB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM attendances WHERE company_id = $1", companyID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestAttendanceService_GenerateForRange_PartialFailure(t *testing.T) {
	testInit(t)

	companyID := uuid.New().String()
	ctx := authedContext(t, companyID)
	employeeID := createTestEmployee(t, companyID, 40)

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		createTestShift(t, companyID, employeeID, monday.AddDate(0, 0, i), "09:00", "18:00")
	}
	// Malformed shift inserted behind the API's back. Its expansion fails but
	// must not take the rest of the batch with it.
	badID := createTestShift(t, companyID, employeeID, monday.AddDate(0, 0, 2), "99:99", "18:00")

	svc := newTestService()

	result, err := svc.GenerateForRange(ctx, attendance.GenerateRangeRequest{
		DateFrom: "2026-03-02",
		DateTo:   "2026-03-04",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Generated)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, badID, result.Errors[0].ShiftID)

	var count int
	err = testDB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM attendances WHERE company_id = $1", companyID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAttendanceService_GenerateForRange_SkipsConfirmed(t *testing.T) {
	testInit(t)

	companyID := uuid.New().String()
	ctx := authedContext(t, companyID)
	employeeID := createTestEmployee(t, companyID, 40)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	createTestShift(t, companyID, employeeID, date, "09:00", "18:00")

	svc := newTestService()

	result, err := svc.GenerateForRange(ctx, attendance.GenerateRangeRequest{
		DateFrom: "2026-03-02",
		DateTo:   "2026-03-02",
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Generated)

	var recordID string
	err = testDB.QueryRow(context.Background(),
		"SELECT id FROM attendances WHERE company_id = $1", companyID).Scan(&recordID)
	require.NoError(t, err)

	confirmed, err := svc.Confirm(ctx, attendance.ConfirmRequest{ID: recordID})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusConfirmed), confirmed.Status)

	// Without overwrite the confirmed record is left alone.
	result, err = svc.GenerateForRange(ctx, attendance.GenerateRangeRequest{
		DateFrom: "2026-03-02",
		DateTo:   "2026-03-02",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)

	// With overwrite it is regenerated back to to_confirm.
	result, err = svc.GenerateForRange(ctx, attendance.GenerateRangeRequest{
		DateFrom:  "2026-03-02",
		DateTo:    "2026-03-02",
		Overwrite: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	record, err := svc.GetAttendance(ctx, recordID)
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusToConfirm), record.Status)
}

func TestAttendanceService_Confirm_WithOverrides(t *testing.T) {
	testInit(t)

	companyID := uuid.New().String()
	ctx := authedContext(t, companyID)
	employeeID := createTestEmployee(t, companyID, 40)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	s := createTestShift(t, companyID, employeeID, date, "09:00", "17:30")

	svc := newTestService()

	outcome, err := svc.GenerateForShift(ctx, shift.Shift{
		ID:         s,
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Date:       date,
		StartTime:  "09:00",
		EndTime:    "17:30",
	}, false)
	require.NoError(t, err)
	require.Equal(t, attendance.OutcomeGenerated, outcome)

	var recordID string
	err = testDB.QueryRow(context.Background(),
		"SELECT id FROM attendances WHERE company_id = $1", companyID).Scan(&recordID)
	require.NoError(t, err)

	// Exit later than planned: status modified, overtime recomputed.
	exit := "19:30"
	confirmed, err := svc.Confirm(ctx, attendance.ConfirmRequest{ID: recordID, ExitTime: &exit})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusModified), confirmed.Status)
	assert.Equal(t, 8.0, confirmed.WorkedHours)
	assert.Equal(t, 2.0, confirmed.OvertimeHours)

	// Already settled: second confirm is rejected.
	_, err = svc.Confirm(ctx, attendance.ConfirmRequest{ID: recordID})
	assert.ErrorIs(t, err, attendance.ErrAlreadySettled)
}

func TestAttendanceService_MarkAbsent(t *testing.T) {
	testInit(t)

	companyID := uuid.New().String()
	ctx := authedContext(t, companyID)
	employeeID := createTestEmployee(t, companyID, 40)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	createTestShift(t, companyID, employeeID, date, "09:00", "18:00")

	svc := newTestService()

	result, err := svc.GenerateForRange(ctx, attendance.GenerateRangeRequest{
		DateFrom: "2026-03-02",
		DateTo:   "2026-03-02",
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Generated)

	var recordID string
	err = testDB.QueryRow(context.Background(),
		"SELECT id FROM attendances WHERE company_id = $1", companyID).Scan(&recordID)
	require.NoError(t, err)

	note := "sick leave"
	absent, err := svc.MarkAbsent(ctx, attendance.MarkAbsentRequest{ID: recordID, Note: &note})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusAbsent), absent.Status)
	assert.Zero(t, absent.WorkedHours)
	assert.Zero(t, absent.OvertimeHours)
	assert.Nil(t, absent.ExitTime)

	_, err = svc.MarkAbsent(ctx, attendance.MarkAbsentRequest{ID: recordID})
	assert.ErrorIs(t, err, attendance.ErrAlreadySettled)
}

func TestAttendanceService_GenerateForRange_OtherCompanyInvisible(t *testing.T) {
	testInit(t)

	companyA := uuid.New().String()
	companyB := uuid.New().String()
	employeeID := createTestEmployee(t, companyA, 40)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	createTestShift(t, companyA, employeeID, date, "09:00", "18:00")

	svc := newTestService()

	result, err := svc.GenerateForRange(authedContext(t, companyB), attendance.GenerateRangeRequest{
		DateFrom: "2026-03-02",
		DateTo:   "2026-03-02",
	})
	require.NoError(t, err)
	assert.Zero(t, result.Generated)
	assert.Zero(t, result.Updated)
}
