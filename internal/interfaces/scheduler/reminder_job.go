package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"settleup/internal/domain/card"
	"settleup/internal/domain/currency"
	"settleup/internal/domain/notification"
	"settleup/internal/domain/reminder"
)

// DueReminderJob pushes due-date reminders to one user's devices. A
// card triggers a push when it is due today or exactly leadDays out,
// so each scheduled run nags about a given card at most twice across
// its lifetime.
type DueReminderJob struct {
	userID        string
	cards         *card.Service
	currencies    *currency.Service
	notifications *notification.Service
	leadDays      int
}

// NewDueReminderJob creates a reminder job for a user. A negative
// leadDays means the default lead.
func NewDueReminderJob(userID string, cards *card.Service, currencies *currency.Service, notifications *notification.Service, leadDays int) *DueReminderJob {
	if leadDays < 0 {
		leadDays = reminder.DefaultLeadDays
	}
	return &DueReminderJob{
		userID:        userID,
		cards:         cards,
		currencies:    currencies,
		notifications: notifications,
		leadDays:      leadDays,
	}
}

// Execute scans the user's cards and sends one push per card that is
// due today or leadDays away. Send failures for individual cards do
// not stop the scan; the job reports how many pushes failed.
func (j *DueReminderJob) Execute(ctx context.Context) error {
	cards, err := j.cards.ListCards(ctx, j.userID)
	if err != nil {
		return fmt.Errorf("failed to list cards: %w", err)
	}

	pref, err := j.currencies.Preferences(ctx, j.userID)
	if err != nil {
		return fmt.Errorf("failed to load currency preference: %w", err)
	}

	now := time.Now()
	sent, failed := 0, 0
	for _, c := range cards {
		if !c.HasDueDate() {
			continue
		}

		offset := card.DayOffset(c.DueDate, now)
		if offset != 0 && offset != j.leadDays {
			continue
		}

		payload := reminder.Build(c, pref.Selected, j.leadDays)
		body := fmt.Sprintf("%s. %s", card.StatusFor(offset).Label, payload.Description)

		if err := j.notifications.SendToUser(ctx, j.userID, notification.CategoryDueReminder, payload.Title, body); err != nil {
			log.Printf("Failed to push reminder for card %s to user %s: %v", c.ID, j.userID, err)
			failed++
			continue
		}
		sent++
	}

	if failed > 0 {
		return fmt.Errorf("pushed %d reminders, %d failed", sent, failed)
	}

	log.Printf("Pushed %d due reminders to user %s", sent, j.userID)
	return nil
}

// UserID returns the user this job targets.
func (j *DueReminderJob) UserID() string {
	return j.userID
}

// Description returns a human-readable description of the job.
func (j *DueReminderJob) Description() string {
	return "due-date reminder scan"
}

// NewDueReminderJobProvider returns a job provider that fans out one
// reminder job per user with a registered device. Wired into the
// scheduler's Config.JobProvider.
func NewDueReminderJobProvider(cards *card.Service, currencies *currency.Service, notifications *notification.Service, leadDays int) func(context.Context) ([]Job, error) {
	return func(ctx context.Context) ([]Job, error) {
		userIDs, err := notifications.ListUserIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list users with devices: %w", err)
		}

		jobs := make([]Job, 0, len(userIDs))
		for _, userID := range userIDs {
			jobs = append(jobs, NewDueReminderJob(userID, cards, currencies, notifications, leadDays))
		}
		return jobs, nil
	}
}
