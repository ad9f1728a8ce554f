package ocr

import (
	"github.com/google/uuid"

	"settleup/internal/domain/card"
)

// Mode says how a draft's fields were sourced. It replaces a loose
// string switch so consumers can branch exhaustively.
type Mode string

const (
	ModeManual Mode = "manual" // typed or pasted by the user
	ModeScan   Mode = "scan"   // physical card photo
	ModeUpload Mode = "upload" // statement / receipt image
)

// Draft is a pre-filled, unconfirmed card record. It is never
// persisted as-is: the user reviews it and submits it through the
// normal create path, where validation applies.
type Draft struct {
	ID         string `json:"id"`
	Mode       Mode   `json:"mode"`
	Confidence string `json:"confidence,omitempty"`

	Name             string `json:"name,omitempty"`
	DueDate          string `json:"dueDate,omitempty"`
	MinimumPayment   string `json:"minimumPayment,omitempty"`
	StatementBalance string `json:"statementBalance,omitempty"`
	CardNumber       string `json:"cardNumber,omitempty"`
	Last4            string `json:"last4,omitempty"`
	ExpiryDate       string `json:"expiryDate,omitempty"`
	Network          string `json:"network,omitempty"`
}

// DraftFromStatement builds an upload-mode draft from statement
// extraction output.
func DraftFromStatement(f StatementFields) Draft {
	return Draft{
		ID:               uuid.NewString(),
		Mode:             ModeUpload,
		Name:             f.Name,
		DueDate:          f.DueDate,
		MinimumPayment:   f.MinimumPayment,
		StatementBalance: f.StatementBalance,
	}
}

// DraftFromCard builds a scan-mode draft from card extraction output.
// The network badge is derived locally, never taken from the model.
func DraftFromCard(f CardFields) Draft {
	number := f.CardNumber
	if number == "" {
		number = f.Last4
	}

	return Draft{
		ID:         uuid.NewString(),
		Mode:       ModeScan,
		Confidence: f.Confidence,
		Name:       f.Name,
		CardNumber: f.CardNumber,
		Last4:      f.Last4,
		ExpiryDate: f.ExpiryDate,
		Network:    string(card.DetectNetwork(number)),
	}
}

// DraftFromText builds a manual-mode draft from pasted statement text.
func DraftFromText(f card.StatementFields) Draft {
	return Draft{
		ID:               uuid.NewString(),
		Mode:             ModeManual,
		Name:             f.Name,
		DueDate:          f.DueDate,
		MinimumPayment:   f.MinimumPayment,
		StatementBalance: f.StatementBalance,
	}
}
