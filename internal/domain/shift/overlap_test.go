package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, start, end string) Window {
	t.Helper()
	w, err := NewWindow(start, end)
	require.NoError(t, err)
	return w
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                   string
		aStart, aEnd           string
		bStart, bEnd           string
		want                   bool
	}{
		{"disjoint", "09:00", "13:00", "14:00", "18:00", false},
		{"touching boundary is not a conflict", "09:00", "13:00", "13:00", "17:00", false},
		{"one minute past the boundary", "09:00", "13:01", "13:00", "17:00", true},
		{"new starts inside existing", "12:00", "18:00", "09:00", "13:00", true},
		{"new ends inside existing", "08:00", "10:00", "09:00", "13:00", true},
		{"new contains existing", "08:00", "18:00", "09:00", "13:00", true},
		{"existing contains new", "10:00", "12:00", "09:00", "13:00", true},
		{"identical windows", "09:00", "13:00", "09:00", "13:00", true},
		{"overnight vs morning", "22:00", "06:00", "08:00", "12:00", false},
		{"overnight vs late evening", "22:00", "06:00", "21:00", "23:00", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := mustWindow(t, c.aStart, c.aEnd)
			b := mustWindow(t, c.bStart, c.bEnd)
			assert.Equal(t, c.want, Overlaps(a, b))
			assert.Equal(t, Overlaps(a, b), Overlaps(b, a), "overlap must be symmetric")
		})
	}
}

func TestFindConflicts(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	existing := []Shift{
		{ID: "s1", Date: date, StartTime: "09:00", EndTime: "13:00", Type: ShiftTypeMorning},
		{ID: "s2", Date: date, StartTime: "14:00", EndTime: "18:00", Type: ShiftTypeEvening},
	}

	t.Run("no conflict in the gap", func(t *testing.T) {
		conflicts, err := FindConflicts(Shift{Date: date, StartTime: "13:00", EndTime: "14:00"}, existing)
		require.NoError(t, err)
		assert.Empty(t, conflicts)
	})

	t.Run("conflicts with one shift", func(t *testing.T) {
		conflicts, err := FindConflicts(Shift{Date: date, StartTime: "12:00", EndTime: "13:30"}, existing)
		require.NoError(t, err)
		require.Len(t, conflicts, 1)
		assert.Equal(t, "s1", conflicts[0].ID)
	})

	t.Run("spanning shift conflicts with both", func(t *testing.T) {
		conflicts, err := FindConflicts(Shift{Date: date, StartTime: "08:00", EndTime: "19:00"}, existing)
		require.NoError(t, err)
		assert.Len(t, conflicts, 2)
	})

	t.Run("a shift never conflicts with itself on update", func(t *testing.T) {
		conflicts, err := FindConflicts(Shift{ID: "s1", Date: date, StartTime: "09:00", EndTime: "13:00"}, existing)
		require.NoError(t, err)
		assert.Len(t, conflicts, 0)
	})

	t.Run("malformed existing window fails fast", func(t *testing.T) {
		bad := []Shift{{ID: "s3", StartTime: "9am", EndTime: "13:00"}}
		_, err := FindConflicts(Shift{Date: date, StartTime: "09:00", EndTime: "13:00"}, bad)
		assert.Error(t, err)
	})
}

func TestConflictError_Message(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	err := &ConflictError{Conflicting: Shift{Date: date, StartTime: "12:00", EndTime: "16:00"}}
	assert.Contains(t, err.Error(), "12:00")
	assert.Contains(t, err.Error(), "16:00")
	assert.Contains(t, err.Error(), "2024-03-15")
	assert.Contains(t, err.Error(), "split shift")
}
