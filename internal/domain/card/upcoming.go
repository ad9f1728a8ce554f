package card

import (
	"sort"
	"time"
)

// DefaultUpcomingWindow is the rolling window, in days, for the
// due-payments feed.
const DefaultUpcomingWindow = 30

// Upcoming filters cards down to those due within the next windowDays
// calendar days (cards due today included, overdue excluded) and sorts
// them ascending by due date. The sort is stable: ties keep their
// original collection order. An empty result is a valid terminal state
// meaning "nothing to show".
func Upcoming(cards []Card, windowDays int, now time.Time) []Card {
	if windowDays <= 0 {
		windowDays = DefaultUpcomingWindow
	}

	upcoming := make([]Card, 0, len(cards))
	for _, c := range cards {
		if !c.HasDueDate() {
			continue
		}
		offset := DayOffset(c.DueDate, now)
		if offset >= 0 && offset <= windowDays {
			upcoming = append(upcoming, c)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})

	return upcoming
}
