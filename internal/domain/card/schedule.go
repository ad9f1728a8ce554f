package card

import (
	"fmt"
	"math"
	"time"
)

// StatusTag classifies how close a due date is, by calendar-day offset.
type StatusTag string

const (
	StatusOverdue     StatusTag = "overdue"
	StatusDueToday    StatusTag = "due-today"
	StatusDueTomorrow StatusTag = "due-tomorrow"
	StatusUrgent      StatusTag = "urgent"
	StatusSoon        StatusTag = "soon"
	StatusNormal      StatusTag = "normal"
)

// Severity is the list-badge severity bucket, independent of the label.
type Severity string

const (
	SeverityOverdue Severity = "overdue"
	SeverityUrgent  Severity = "urgent"
	SeveritySoon    Severity = "soon"
	SeverityNormal  Severity = "normal"
)

// Status pairs the semantic tag with its display label.
type Status struct {
	Tag   StatusTag `json:"tag"`
	Label string    `json:"label"`
}

// DayOffset returns the signed number of calendar days from now to the
// given due-date value. Both ends are truncated to local midnight, so a
// date 23 hours away but past midnight still counts as one day out.
// Absent or unparsable input yields 0.
func DayOffset(v any, now time.Time) int {
	due, ok := NormalizeDate(v)
	if !ok {
		return 0
	}

	today := midnight(now)
	target := midnight(due.In(now.Location()))

	// Rounding absorbs DST transitions (23h / 25h days).
	return int(math.Round(target.Sub(today).Hours() / 24))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StatusFor maps a day offset to its status tag and label.
// First match wins: overdue, today, tomorrow, urgent (2-3),
// soon (4-7), normal (8+).
func StatusFor(offset int) Status {
	switch {
	case offset < 0:
		return Status{StatusOverdue, fmt.Sprintf("Overdue by %d days", -offset)}
	case offset == 0:
		return Status{StatusDueToday, "Due Today"}
	case offset == 1:
		return Status{StatusDueTomorrow, "Due Tomorrow"}
	case offset <= 3:
		return Status{StatusUrgent, fmt.Sprintf("%d Days Left", offset)}
	case offset <= 7:
		return Status{StatusSoon, fmt.Sprintf("%d Days Left", offset)}
	default:
		return Status{StatusNormal, fmt.Sprintf("%d Days Left", offset)}
	}
}

// SeverityFor maps a day offset to a badge severity. One policy for
// every call site: overdue below zero, urgent through day 3, soon
// through day 7, normal beyond.
func SeverityFor(offset int) Severity {
	switch {
	case offset < 0:
		return SeverityOverdue
	case offset <= 3:
		return SeverityUrgent
	case offset <= 7:
		return SeveritySoon
	default:
		return SeverityNormal
	}
}
