package ocr

import (
	"context"
	"errors"
)

// Extraction confidence levels reported by the vision model.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Domain errors
var (
	ErrEmptyImage  = errors.New("image data is required")
	ErrUnsupported = errors.New("unsupported image type")
)

// StatementFields is a best-effort extraction from a statement or
// receipt image. Every field may be empty; nothing here is trusted as
// final - it only pre-fills a draft the user must confirm.
type StatementFields struct {
	Name             string `json:"name"`
	DueDate          string `json:"dueDate"`
	MinimumPayment   string `json:"minimumPayment"`
	StatementBalance string `json:"statementBalance"`
}

// CardFields is a best-effort extraction from a physical card photo.
type CardFields struct {
	Name           string `json:"name"`
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CardholderName string `json:"cardholderName"`
	Last4          string `json:"last4"`
	Confidence     string `json:"confidence"`
}

// Extractor is the AI collaborator boundary. Implementations call a
// multimodal endpoint; tests inject fakes.
type Extractor interface {
	ExtractStatement(ctx context.Context, mimeType string, image []byte) (*StatementFields, error)
	ExtractCard(ctx context.Context, mimeType string, image []byte) (*CardFields, error)
}
