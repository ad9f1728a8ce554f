package card

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Card categories. The set is open: unknown values are tolerated and
// kept as-is, an empty value defaults to CategoryPersonal.
const (
	CategoryPersonal = "Personal"
	CategoryFamily   = "Family"
	CategoryOther    = "Other"
)

// Domain errors
var (
	ErrCardNotFound = errors.New("card not found")
	ErrForbidden    = errors.New("access forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

// Card represents a tracked credit card. Everything except Notes is
// immutable after creation; there is no edit operation.
type Card struct {
	ID               string    `json:"id" firestore:"-"`
	Name             string    `json:"name" firestore:"name"`
	StatementBalance float64   `json:"statementBalance" firestore:"statementBalance"`
	MinimumPayment   float64   `json:"minimumPayment" firestore:"minimumPayment"`
	DueDate          time.Time `json:"dueDate" firestore:"dueDate"`
	Category         string    `json:"category" firestore:"category"`
	Notes            string    `json:"notes,omitempty" firestore:"notes"`
	CardNumber       string    `json:"cardNumber,omitempty" firestore:"cardNumber,omitempty"`
	Last4            string    `json:"last4,omitempty" firestore:"last4,omitempty"`
	ExpiryDate       string    `json:"expiryDate,omitempty" firestore:"expiryDate,omitempty"`
	CreatedAt        time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// HasDueDate reports whether the card carries a usable due date.
func (c Card) HasDueDate() bool {
	return !c.DueDate.IsZero()
}

// CreateParams contains parameters for creating a new card. Balance and
// due date arrive in whatever representation the client sent; they are
// normalized by Validate / Normalized.
type CreateParams struct {
	Name             string
	StatementBalance any
	MinimumPayment   any
	DueDate          any
	Category         string
	Notes            string
	CardNumber       string
	Last4            string
	ExpiryDate       string
}

// Validate checks the required creation fields. Name and statement
// balance must be present; everything else is optional.
func (p CreateParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: card name is required", ErrInvalidInput)
	}
	if p.StatementBalance == nil {
		return fmt.Errorf("%w: statement balance is required", ErrInvalidInput)
	}
	if s, ok := p.StatementBalance.(string); ok && strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: statement balance is required", ErrInvalidInput)
	}
	return nil
}

// Normalized converts the raw parameters into a Card with coerced
// amounts, a normalized due date and derived defaults applied.
// The ID and CreatedAt are left for the repository to assign.
func (p CreateParams) Normalized() Card {
	category := p.Category
	if category == "" {
		category = CategoryPersonal
	}

	last4 := p.Last4
	if last4 == "" {
		last4 = last4FromNumber(p.CardNumber)
	}

	due, _ := NormalizeDate(p.DueDate)

	return Card{
		Name:             strings.TrimSpace(p.Name),
		StatementBalance: ParseAmount(p.StatementBalance),
		MinimumPayment:   ParseAmount(p.MinimumPayment),
		DueDate:          due,
		Category:         category,
		Notes:            p.Notes,
		CardNumber:       p.CardNumber,
		Last4:            last4,
		ExpiryDate:       p.ExpiryDate,
	}
}

// ParseAmount coerces a raw amount value into a non-negative finite
// float64. Unparsable, missing, negative or non-finite input yields 0.
// The coercion is deliberate: a bad amount must never break aggregation.
func ParseAmount(v any) float64 {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// timeConvertible matches backend timestamp wrappers that expose a
// convert-to-time accessor (e.g. protobuf timestamps).
type timeConvertible interface {
	AsTime() time.Time
}

// Date layouts accepted from clients, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// NormalizeDate converts any supported due-date representation into a
// time.Time. Supported inputs: time.Time, *time.Time, ISO-style
// strings, and timestamp wrappers with an AsTime accessor. Reports
// ok=false (with a zero time) for anything else, never an error.
func NormalizeDate(v any) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if val.IsZero() {
			return time.Time{}, false
		}
		return val, true
	case *time.Time:
		if val == nil || val.IsZero() {
			return time.Time{}, false
		}
		return *val, true
	case timeConvertible:
		t := val.AsTime()
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// FormatDate renders a date value as a human-readable string
// ("Mar 4, 2025"). Absent input renders empty; if the value is a string
// that fails to parse it is returned unchanged.
func FormatDate(v any) string {
	t, ok := NormalizeDate(v)
	if !ok {
		if s, isStr := v.(string); isStr {
			return s
		}
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func last4FromNumber(number string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if len(digits) < 4 {
		return ""
	}
	return digits[len(digits)-4:]
}
