package reminder

import (
	"errors"
	"time"

	"settleup/internal/domain/card"
	"settleup/internal/domain/currency"
)

// DefaultLeadDays is how many days before the due date the reminder
// fires unless the user overrides it.
const DefaultLeadDays = 1

// FallbackTitle is used when a card somehow has no name.
const FallbackTitle = "Payment Due"

// ErrNoDueDate marks a payload that cannot be exported because the
// card has no due date. Callers disable export actions instead of
// emitting a malformed artifact.
var ErrNoDueDate = errors.New("card has no due date")

// Payload is a calendar-ready reminder derived from one card.
type Payload struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DueDate      time.Time `json:"dueDate,omitzero"`
	ReminderDate time.Time `json:"reminderDate,omitzero"`
	Warning      string    `json:"warning,omitempty"`
}

// Exportable reports whether the payload can be turned into a deep
// link or calendar file.
func (p Payload) Exportable() bool {
	return !p.ReminderDate.IsZero()
}

// Build constructs a reminder payload for a card. The description
// embeds the minimum payment (falling back to the statement balance
// when no minimum is set) formatted in the user's selected currency.
// The reminder date is the due date minus leadDays; a negative
// leadDays means the default.
//
// A card without a due date still yields a payload, with empty dates
// and a visible warning, so the caller renders a disabled state rather
// than failing.
func Build(c card.Card, currencyCode string, leadDays int) Payload {
	if leadDays < 0 {
		leadDays = DefaultLeadDays
	}

	title := c.Name
	if title == "" {
		title = FallbackTitle
	}

	amount := c.MinimumPayment
	if amount == 0 {
		amount = c.StatementBalance
	}

	p := Payload{
		Title:       title,
		Description: "Minimum payment: " + currency.Format(amount, currencyCode),
	}

	if !c.HasDueDate() {
		p.Warning = "No due date found for this payment. Please check the card data."
		return p
	}

	p.DueDate = c.DueDate
	p.ReminderDate = c.DueDate.AddDate(0, 0, -leadDays)
	return p
}
