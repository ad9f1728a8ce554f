package card

import (
	"errors"
	"strings"
)

// ErrStatementFormat is returned when pasted statement text does not
// carry all four required fields.
var ErrStatementFormat = errors.New("missing required fields. Format: Name: ... | Due Date: ... | Min: ... | Balance: ...")

// StatementFields is the result of parsing pasted statement text.
// Values are kept as raw strings; coercion happens at card creation.
type StatementFields struct {
	Name             string `json:"name"`
	DueDate          string `json:"dueDate"`
	MinimumPayment   string `json:"minimumPayment"`
	StatementBalance string `json:"statementBalance"`
}

// ParseStatementText parses the pipe-delimited quick-import format:
//
//	Name: Card Name | Due Date: YYYY-MM-DD | Min: 123.45 | Balance: 987.65
//
// Key matching is case-insensitive and tolerant of extra whitespace.
// All four fields are required.
func ParseStatementText(text string) (StatementFields, error) {
	var out StatementFields
	if strings.TrimSpace(text) == "" {
		return out, errors.New("empty input")
	}

	for _, part := range strings.Split(text, "|") {
		key, value, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch {
		case strings.Contains(key, "due date"):
			out.DueDate = value
		case strings.Contains(key, "name"):
			out.Name = value
		case strings.Contains(key, "min"):
			out.MinimumPayment = value
		case strings.Contains(key, "balance"):
			out.StatementBalance = value
		}
	}

	if out.Name == "" || out.DueDate == "" || out.MinimumPayment == "" || out.StatementBalance == "" {
		return StatementFields{}, ErrStatementFormat
	}

	return out, nil
}
