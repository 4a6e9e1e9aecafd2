package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
)

func strPtr(s string) *string { return &s }

func day(d int) time.Time {
	return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC)
}

func TestFoldEvents_Empty(t *testing.T) {
	assert.Empty(t, FoldEvents(nil))
}

func TestFoldEvents_CountsByStatus(t *testing.T) {
	events := []attendance.Event{
		{EmployeeID: "e1", Date: day(1), Status: attendance.StatusPresent, TimeIn: strPtr("08:00:00"), TimeOut: strPtr("17:00:00")},
		{EmployeeID: "e1", Date: day(2), Status: attendance.StatusLate, LateMinutes: 15, TimeIn: strPtr("08:15:00"), TimeOut: strPtr("17:00:00")},
		{EmployeeID: "e1", Date: day(3), Status: attendance.StatusAbsent},
		{EmployeeID: "e1", Date: day(4), Status: attendance.StatusLeave},
		{EmployeeID: "e1", Date: day(5), Status: attendance.StatusUndertime, UndertimeMinutes: 60, TimeIn: strPtr("08:00:00"), TimeOut: strPtr("16:00:00")},
	}

	summaries := FoldEvents(events)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, "e1", s.EmployeeID)
	assert.Equal(t, 3, s.PresentDays) // present + late + undertime
	assert.Equal(t, 1, s.AbsentDays)
	assert.Equal(t, 1, s.LeaveDays)
	assert.Equal(t, 1, s.LateDays)
	assert.Equal(t, 15, s.LateMinutes)
	assert.Equal(t, 60, s.UndertimeMinutes)
	// 8h + 7.75h + 7h, each minus the 1h break
	assert.InDelta(t, 22.75, s.TotalHoursWorked, 0.001)
}

func TestFoldEvents_DuplicateLeaveSameDateCountsOnce(t *testing.T) {
	events := []attendance.Event{
		{EmployeeID: "e1", Date: day(10), Status: attendance.StatusLeave},
		{EmployeeID: "e1", Date: day(10), Status: attendance.StatusLeave},
		{EmployeeID: "e1", Date: day(11), Status: attendance.StatusLeave},
	}

	summaries := FoldEvents(events)
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].LeaveDays)
}

func TestFoldEvents_DiscardsBadIntervals(t *testing.T) {
	events := []attendance.Event{
		// time_out before time_in
		{EmployeeID: "e1", Date: day(1), Status: attendance.StatusPresent, TimeIn: strPtr("17:00:00"), TimeOut: strPtr("08:00:00")},
		// exactly one hour worked, eaten by the break
		{EmployeeID: "e1", Date: day(2), Status: attendance.StatusPresent, TimeIn: strPtr("08:00:00"), TimeOut: strPtr("09:00:00")},
		// unparseable
		{EmployeeID: "e1", Date: day(3), Status: attendance.StatusPresent, TimeIn: strPtr("not-a-time"), TimeOut: strPtr("17:00:00")},
		// missing time_out
		{EmployeeID: "e1", Date: day(4), Status: attendance.StatusPresent, TimeIn: strPtr("08:00:00")},
	}

	summaries := FoldEvents(events)
	require.Len(t, summaries, 1)
	assert.Equal(t, 4, summaries[0].PresentDays)
	assert.Zero(t, summaries[0].TotalHoursWorked)
}

func TestFoldEvents_GroupsPerEmployee(t *testing.T) {
	events := []attendance.Event{
		{EmployeeID: "e1", Date: day(1), Status: attendance.StatusPresent, TimeIn: strPtr("08:00:00"), TimeOut: strPtr("17:00:00")},
		{EmployeeID: "e1", Date: day(2), Status: attendance.StatusAbsent},
		{EmployeeID: "e2", Date: day(1), Status: attendance.StatusLate, LateMinutes: 5, TimeIn: strPtr("08:05:00"), TimeOut: strPtr("17:35:00")},
	}

	summaries := FoldEvents(events)
	require.Len(t, summaries, 2)

	assert.Equal(t, "e1", summaries[0].EmployeeID)
	assert.Equal(t, 1, summaries[0].PresentDays)
	assert.Equal(t, 1, summaries[0].AbsentDays)

	assert.Equal(t, "e2", summaries[1].EmployeeID)
	assert.Equal(t, 1, summaries[1].LateDays)
	assert.InDelta(t, 8.5, summaries[1].TotalHoursWorked, 0.001)
}

func TestFoldEvents_RoundsHoursToTwoDecimals(t *testing.T) {
	events := []attendance.Event{
		{EmployeeID: "e1", Date: day(1), Status: attendance.StatusPresent, TimeIn: strPtr("08:00:00"), TimeOut: strPtr("16:20:00")},
	}

	summaries := FoldEvents(events)
	require.Len(t, summaries, 1)
	// 8h20m - 1h = 7.333... -> 7.33
	assert.Equal(t, 7.33, summaries[0].TotalHoursWorked)
}
