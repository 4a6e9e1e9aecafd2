package attendance

import "time"

// Event - one attendance row per employee per date. Append-mostly; duplicate
// leave entries do occur and are deduplicated by the period aggregator.
type Event struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	TimeIn           *string // "15:04:05" wall-clock, as recorded by the capture device
	TimeOut          *string
	Status           Status
	LateMinutes      int
	UndertimeMinutes int
	OvertimeMinutes  int
	CreatedAt        time.Time
}

type Status string

const (
	StatusPresent   Status = "present"
	StatusLate      Status = "late"
	StatusAbsent    Status = "absent"
	StatusLeave     Status = "leave"
	StatusUndertime Status = "undertime"
)
