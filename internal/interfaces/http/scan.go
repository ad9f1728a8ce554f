package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"settleup/internal/domain/card"
	"settleup/internal/domain/ocr"
	"settleup/internal/shared/middleware"
)

const maxUploadSize = 10 << 20 // 10 MiB

type ScanHandler struct {
	extractor ocr.Extractor
}

func NewScanHandler(extractor ocr.Extractor) *ScanHandler {
	return &ScanHandler{extractor: extractor}
}

// --- Request types ---

type ImportTextRequest struct {
	Text string `json:"text"`
}

// --- Handlers ---

// HandleScanCard handles POST /api/scan/card (multipart image upload).
// Returns a draft the client must review; nothing is persisted here.
func (h *ScanHandler) HandleScanCard(w http.ResponseWriter, r *http.Request) {
	mimeType, image, ok := h.readImage(w, r)
	if !ok {
		return
	}

	fields, err := h.extractor.ExtractCard(r.Context(), mimeType, image)
	if err != nil {
		h.writeExtractionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ocr.DraftFromCard(*fields))
}

// HandleScanStatement handles POST /api/scan/statement (multipart
// image upload).
func (h *ScanHandler) HandleScanStatement(w http.ResponseWriter, r *http.Request) {
	mimeType, image, ok := h.readImage(w, r)
	if !ok {
		return
	}

	fields, err := h.extractor.ExtractStatement(r.Context(), mimeType, image)
	if err != nil {
		h.writeExtractionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ocr.DraftFromStatement(*fields))
}

// HandleImportText handles POST /api/scan/text (pasted statement
// line). No AI involved; the pipe-delimited format is parsed locally.
func (h *ScanHandler) HandleImportText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := r.Context().Value(middleware.UserIDKey).(string); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req ImportTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	fields, err := card.ParseStatementText(req.Text)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ocr.DraftFromText(fields))
}

// --- Helpers ---

// readImage validates the request and pulls the uploaded image out of
// the multipart form. Writes the error response itself on failure.
func (h *ScanHandler) readImage(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return "", nil, false
	}

	if _, ok := r.Context().Value(middleware.UserIDKey).(string); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return "", nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return "", nil, false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file is required", http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading uploaded image: %v", err)
		http.Error(w, "Failed to read image", http.StatusInternalServerError)
		return "", nil, false
	}

	return header.Header.Get("Content-Type"), image, true
}

func (h *ScanHandler) writeExtractionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ocr.ErrEmptyImage):
		http.Error(w, "Image data is required", http.StatusBadRequest)
	case errors.Is(err, ocr.ErrUnsupported):
		http.Error(w, "Unsupported image type", http.StatusUnsupportedMediaType)
	default:
		log.Printf("Extraction failed: %v", err)
		http.Error(w, "Extraction failed", http.StatusBadGateway)
	}
}
