package reminder

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	calendarRenderURL = "https://calendar.google.com/calendar/render"
	icsProdID         = "-//SettleUp//Credit Card Payment Reminder//EN"
	icsUIDDomain      = "settleup.app"
)

// compactUTC formats a time as the compact digit form calendar
// providers expect (YYYYMMDDTHHMMSSZ).
func compactUTC(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// GoogleCalendarURL returns a deep link that pre-fills the provider's
// "create event" form with the reminder as an all-day event
// (start == end). Returns an empty string when the payload has no
// reminder date; callers disable the action in that case.
func (p Payload) GoogleCalendarURL() string {
	if !p.Exportable() {
		return ""
	}

	day := compactUTC(p.ReminderDate)
	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", p.Title)
	params.Set("details", p.Description)
	params.Set("dates", day+"/"+day)

	return calendarRenderURL + "?" + params.Encode()
}

// ICS encodes the reminder as a calendar interchange file with a
// 15-minute display alarm. The event UID derives from the generation
// time plus a fixed domain suffix. Returns ErrNoDueDate when the
// payload is not exportable.
func (p Payload) ICS(now time.Time) (string, error) {
	if !p.Exportable() {
		return "", ErrNoDueDate
	}

	stamp := compactUTC(p.ReminderDate)
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + icsProdID,
		"BEGIN:VEVENT",
		"DTSTART:" + stamp,
		"DTEND:" + stamp,
		"SUMMARY:" + escapeICS(p.Title),
		"DESCRIPTION:" + escapeICS(p.Description),
		fmt.Sprintf("UID:%d@%s", now.UnixMilli(), icsUIDDomain),
		"STATUS:CONFIRMED",
		"SEQUENCE:0",
		"BEGIN:VALARM",
		"TRIGGER:-PT15M",
		"ACTION:DISPLAY",
		"DESCRIPTION:" + escapeICS("Reminder: "+p.Title),
		"END:VALARM",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	return strings.Join(lines, "\r\n"), nil
}

// escapeICS escapes the characters RFC 5545 treats specially in text
// values.
func escapeICS(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
