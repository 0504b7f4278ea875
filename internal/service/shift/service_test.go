package shift

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	attendanceDomain "github.com/gofooditalia/paycrew/internal/domain/attendance"
	"github.com/gofooditalia/paycrew/internal/domain/shift"
	"github.com/gofooditalia/paycrew/internal/pkg/database"
	"github.com/gofooditalia/paycrew/internal/repository/postgresql"
	attendanceService "github.com/gofooditalia/paycrew/internal/service/attendance"
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

func createTestEmployee(t *testing.T, companyID string) string {
	t.Helper()
	id := uuid.New().String()
	_, err := testDB.Exec(context.Background(), `
		INSERT INTO employees (id, company_id, full_name) VALUES ($1, $2, 'Test Employee')
	`, id, companyID)
	require.NoError(t, err)
	return id
}

func newTestService() shift.ShiftService {
	shiftRepo := postgresql.NewShiftRepository(testDB)
	attendanceSvc := attendanceService.NewAttendanceService(
		testDB,
		postgresql.NewAttendanceRepository(testDB),
		shiftRepo,
		postgresql.NewEmployeeRepository(testDB),
		attendanceDomain.DefaultHoursPolicy,
	)
	return NewShiftService(testDB, shiftRepo, attendanceSvc, slog.Default())
}

func TestShiftService_CreateShift_RejectsOverlap(t *testing.T) {
	testInit(t)

	companyID := uuid.New().String()
	ctx := authedContext(t, companyID)
	employeeID := createTestEmployee(t, companyID)

	svc := newTestService()

	_, err := svc.CreateShift(ctx, shift.CreateShiftRequest{
		EmployeeID: employeeID,
		Date:       "2026-03-02",
		StartTime:  "09:00",
		EndTime:    "13:00",
		Type:       "morning",
	})
	require.NoError(t, err)

	// Overlapping window is rejected with a conflict.
	_, err = svc.CreateShift(ctx, shift.CreateShiftRequest{
		EmployeeID: employeeID,
		Date:       "2026-03-02",
		StartTime:  "12:00",
		EndTime:    "16:00",
		Type:       "lunch",
	})
	var conflictErr *shift.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Contains(t, conflictErr.Error(), "split shift")

	// A shift that merely touches the boundary is fine.
	_, err = svc.CreateShift(ctx, shift.CreateShiftRequest{
		EmployeeID: employeeID,
		Date:       "2026-03-02",
		StartTime:  "13:00",
		EndTime:    "17:00",
		Type:       "lunch",
	})
	require.NoError(t, err)
}

func TestShiftService_BulkCreate_AtomicOnConflict(t *testing.T) {
	testInit(t)

	companyID := uuid.New().String()
	ctx := authedContext(t, companyID)
	employeeID := createTestEmployee(t, companyID)

	svc := newTestService()

	_, err := svc.BulkCreateShifts(ctx, shift.BulkCreateShiftsRequest{
		Shifts: []shift.CreateShiftRequest{
			{EmployeeID: employeeID, Date: "2026-03-02", StartTime: "09:00", EndTime: "13:00", Type: "morning"},
			{EmployeeID: employeeID, Date: "2026-03-03", StartTime: "09:00", EndTime: "13:00", Type: "morning"},
			// Overlaps the first shift of the batch.
			{EmployeeID: employeeID, Date: "2026-03-02", StartTime: "10:00", EndTime: "14:00", Type: "lunch"},
		},
	})
	var conflictErr *shift.ConflictError
	require.ErrorAs(t, err, &conflictErr)

	var count int
	err = testDB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM shifts WHERE company_id = $1", companyID).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count, "a conflicting batch must not leave partial rows behind")
}

func TestShiftService_BulkCreate_GeneratesAttendance(t *testing.T) {
	testInit(t)

	companyID := uuid.New().String()
	ctx := authedContext(t, companyID)
	employeeID := createTestEmployee(t, companyID)

	svc := newTestService()

	created, err := svc.BulkCreateShifts(ctx, shift.BulkCreateShiftsRequest{
		Shifts: []shift.CreateShiftRequest{
			{EmployeeID: employeeID, Date: "2026-03-02", StartTime: "09:00", EndTime: "18:00", Type: "morning"},
			{EmployeeID: employeeID, Date: "2026-03-03", StartTime: "09:00", EndTime: "18:00", Type: "morning"},
		},
		GenerateAttendance: true,
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	var count int
	err = testDB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM attendances WHERE company_id = $1 AND status = 'to_confirm'", companyID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestShiftService_UpdateShift_NoSelfConflict(t *testing.T) {
	testInit(t)

	companyID := uuid.New().String()
	ctx := authedContext(t, companyID)
	employeeID := createTestEmployee(t, companyID)

	svc := newTestService()

	created, err := svc.CreateShift(ctx, shift.CreateShiftRequest{
		EmployeeID: employeeID,
		Date:       "2026-03-02",
		StartTime:  "09:00",
		EndTime:    "13:00",
		Type:       "morning",
	})
	require.NoError(t, err)

	// Widening the same shift overlaps only itself, which is not a conflict.
	newEnd := "14:00"
	updated, err := svc.UpdateShift(ctx, shift.UpdateShiftRequest{ID: created.ID, EndTime: &newEnd})
	require.NoError(t, err)
	assert.Equal(t, "14:00", updated.EndTime)
}

func TestShiftService_GetShift_OtherCompanyNotFound(t *testing.T) {
	testInit(t)

	companyID := uuid.New().String()
	employeeID := createTestEmployee(t, companyID)

	svc := newTestService()

	created, err := svc.CreateShift(authedContext(t, companyID), shift.CreateShiftRequest{
		EmployeeID: employeeID,
		Date:       "2026-03-02",
		StartTime:  "09:00",
		EndTime:    "13:00",
		Type:       "morning",
	})
	require.NoError(t, err)

	_, err = svc.GetShift(authedContext(t, uuid.New().String()), created.ID)
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)
}
