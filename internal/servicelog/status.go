package servicelog

import "time"

const (
	StatusNever = "never"
	StatusOK    = "ok"
	StatusDue   = "due"
)

// DateLayout is the wire format for service dates.
const DateLayout = "2006-01-02"

// Status describes where an item stands against its service interval.
type Status struct {
	Status          string  `json:"status"`
	LastServiceDate *string `json:"last_service_date,omitempty"`
	DueDate         *string `json:"due_date,omitempty"`
	DaysLeft        *int    `json:"days_left,omitempty"`
	DaysOverdue     *int    `json:"days_overdue,omitempty"`
}

// ComputeStatus derives the service status from the last completed
// service date. Day arithmetic is calendar-based; the due day itself
// still counts as ok with zero days left.
func ComputeStatus(lastServiceDate *string, intervalDays int, now time.Time) Status {
	if lastServiceDate == nil || *lastServiceDate == "" {
		return Status{Status: StatusNever}
	}

	last, err := time.Parse(DateLayout, *lastServiceDate)
	if err != nil {
		return Status{Status: StatusNever}
	}

	due := last.AddDate(0, 0, intervalDays)
	dueStr := due.Format(DateLayout)
	today, _ := time.Parse(DateLayout, now.Format(DateLayout))

	days := int(due.Sub(today).Hours() / 24)
	out := Status{
		Status:          StatusOK,
		LastServiceDate: lastServiceDate,
		DueDate:         &dueStr,
	}
	if days >= 0 {
		out.DaysLeft = &days
	} else {
		overdue := -days
		out.Status = StatusDue
		out.DaysOverdue = &overdue
	}
	return out
}
