package attendance

import (
	"context"
	"time"
)

type EventRepository interface {
	// GetEventsInRange returns events ordered by employee_id, date. An empty
	// employeeID means all employees.
	GetEventsInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Event, error)
}
