package reminder

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"settleup/internal/domain/card"
)

func TestBuild(t *testing.T) {
	due := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		card         card.Card
		leadDays     int
		wantReminder time.Time
		wantTitle    string
		wantWarning  bool
	}{
		{
			name:         "Default Lead Time",
			card:         card.Card{Name: "Chase Sapphire", MinimumPayment: 125, DueDate: due},
			leadDays:     -1,
			wantReminder: time.Date(2025, 12, 14, 0, 0, 0, 0, time.UTC),
			wantTitle:    "Chase Sapphire",
		},
		{
			name:         "Custom Lead Time",
			card:         card.Card{Name: "Amex Gold", MinimumPayment: 50, DueDate: due},
			leadDays:     3,
			wantReminder: time.Date(2025, 12, 12, 0, 0, 0, 0, time.UTC),
			wantTitle:    "Amex Gold",
		},
		{
			name:        "Missing Due Date",
			card:        card.Card{Name: "Citi Double Cash", MinimumPayment: 20},
			leadDays:    -1,
			wantTitle:   "Citi Double Cash",
			wantWarning: true,
		},
		{
			name:         "Missing Name Falls Back",
			card:         card.Card{StatementBalance: 100, DueDate: due},
			leadDays:     -1,
			wantReminder: time.Date(2025, 12, 14, 0, 0, 0, 0, time.UTC),
			wantTitle:    FallbackTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(tt.card, "USD", tt.leadDays)

			if p.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", p.Title, tt.wantTitle)
			}
			if tt.wantWarning {
				if p.Warning == "" {
					t.Error("expected warning for missing due date")
				}
				if p.Exportable() {
					t.Error("payload without due date must not be exportable")
				}
				return
			}
			if p.Warning != "" {
				t.Errorf("unexpected warning: %q", p.Warning)
			}
			if !p.ReminderDate.Equal(tt.wantReminder) {
				t.Errorf("ReminderDate = %v, want %v", p.ReminderDate, tt.wantReminder)
			}
		})
	}
}

func TestBuildDescriptionUsesBalanceWhenNoMinimum(t *testing.T) {
	c := card.Card{Name: "Card", StatementBalance: 567, DueDate: time.Now()}

	p := Build(c, "USD", -1)
	if !strings.Contains(p.Description, "$567.00") {
		t.Errorf("Description = %q, want statement balance fallback", p.Description)
	}
}

func TestGoogleCalendarURL(t *testing.T) {
	due := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	p := Build(card.Card{Name: "Chase Sapphire", MinimumPayment: 125, DueDate: due}, "USD", -1)

	raw := p.GoogleCalendarURL()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("invalid URL %q: %v", raw, err)
	}

	q := u.Query()
	if q.Get("action") != "TEMPLATE" {
		t.Errorf("action = %q, want TEMPLATE", q.Get("action"))
	}
	if q.Get("text") != "Chase Sapphire" {
		t.Errorf("text = %q", q.Get("text"))
	}
	want := "20251214T000000Z/20251214T000000Z"
	if q.Get("dates") != want {
		t.Errorf("dates = %q, want all-day range %q", q.Get("dates"), want)
	}
}

func TestGoogleCalendarURLWithoutDueDate(t *testing.T) {
	p := Build(card.Card{Name: "No Date"}, "USD", -1)
	if got := p.GoogleCalendarURL(); got != "" {
		t.Errorf("expected empty URL, got %q", got)
	}
}

func TestICS(t *testing.T) {
	due := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	p := Build(card.Card{Name: "Chase Sapphire", MinimumPayment: 125, DueDate: due}, "USD", -1)

	now := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	ics, err := p.ICS(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"PRODID:-//SettleUp//Credit Card Payment Reminder//EN",
		"DTSTART:20251214T000000Z",
		"DTEND:20251214T000000Z",
		"SUMMARY:Chase Sapphire",
		"UID:" + "1764583200000@settleup.app",
		"BEGIN:VALARM",
		"TRIGGER:-PT15M",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("ICS missing %q", want)
		}
	}

	if !strings.Contains(ics, "\r\n") {
		t.Error("ICS must use CRLF line endings")
	}
}

func TestICSWithoutDueDate(t *testing.T) {
	p := Build(card.Card{Name: "No Date"}, "USD", -1)
	if _, err := p.ICS(time.Now()); err != ErrNoDueDate {
		t.Errorf("error = %v, want ErrNoDueDate", err)
	}
}

func TestICSEscapesText(t *testing.T) {
	due := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	p := Build(card.Card{Name: "Cards; a,b", MinimumPayment: 1, DueDate: due}, "USD", -1)

	ics, err := p.ICS(time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(ics, `SUMMARY:Cards\; a\,b`) {
		t.Errorf("ICS text not escaped: %s", ics)
	}
}
