package attendance

import (
	"math"
	"time"

	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
)

const (
	clockLayout = "15:04:05"
	dateLayout  = "2006-01-02"

	// Fixed unpaid break deducted from every worked interval.
	breakHours = 1.0
)

// FoldEvents aggregates raw attendance events into one PeriodSummary per
// employee. Events must be grouped by employee (the repository orders by
// employee_id, date). Employees with no events in the range produce no
// summary at all rather than a zero row.
func FoldEvents(events []attendance.Event) []attendance.PeriodSummary {
	var (
		summaries []attendance.PeriodSummary
		current   *attendance.PeriodSummary
		leaveDays map[string]bool
	)

	flush := func() {
		if current != nil {
			current.TotalHoursWorked = round2(current.TotalHoursWorked)
			summaries = append(summaries, *current)
		}
	}

	for _, ev := range events {
		if current == nil || current.EmployeeID != ev.EmployeeID {
			flush()
			current = &attendance.PeriodSummary{EmployeeID: ev.EmployeeID}
			leaveDays = make(map[string]bool)
		}

		switch ev.Status {
		case attendance.StatusPresent, attendance.StatusUndertime:
			current.PresentDays++
		case attendance.StatusLate:
			current.PresentDays++
			current.LateDays++
		case attendance.StatusAbsent:
			current.AbsentDays++
		case attendance.StatusLeave:
			// Duplicate leave entries for the same date occur; count once.
			day := ev.Date.Format(dateLayout)
			if !leaveDays[day] {
				leaveDays[day] = true
				current.LeaveDays++
			}
		}

		current.LateMinutes += ev.LateMinutes
		current.UndertimeMinutes += ev.UndertimeMinutes
		current.OvertimeMinutes += ev.OvertimeMinutes

		if h, ok := workedHours(ev.TimeIn, ev.TimeOut); ok {
			current.TotalHoursWorked += h
		}
	}
	flush()

	return summaries
}

// workedHours computes (time_out - time_in) minus the break. Unparseable or
// non-positive intervals are discarded.
func workedHours(timeIn, timeOut *string) (float64, bool) {
	if timeIn == nil || timeOut == nil {
		return 0, false
	}
	in, err := time.Parse(clockLayout, *timeIn)
	if err != nil {
		return 0, false
	}
	out, err := time.Parse(clockLayout, *timeOut)
	if err != nil {
		return 0, false
	}
	hours := out.Sub(in).Hours() - breakHours
	if hours <= 0 {
		return 0, false
	}
	return hours, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
