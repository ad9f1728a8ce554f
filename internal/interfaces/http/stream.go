package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"settleup/internal/domain/card"
	"settleup/internal/domain/currency"
	"settleup/internal/shared/middleware"
)

// CardsStreamEvent is one server-sent event on the card stream. Every
// event carries the complete collection plus recomputed totals; clients
// replace their state with it rather than merging deltas.
type CardsStreamEvent struct {
	Cards   []CardResponse  `json:"cards"`
	Summary SummaryResponse `json:"summary"`
}

// HandleCardsStream handles GET /api/cards/stream
//
// Opens a server-sent event stream of collection snapshots. The first
// event arrives as soon as the store delivers the current state; the
// stream stays open until the client disconnects.
func (h *CardHandler) HandleCardsStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Buffer one snapshot. A slow client only ever sees the latest
	// state; intermediate snapshots are superseded, not queued.
	snapshots := make(chan card.Snapshot, 1)
	stop, err := h.cardService.WatchCards(r.Context(), userID, func(snap card.Snapshot) {
		select {
		case snapshots <- snap:
		default:
			select {
			case <-snapshots:
			default:
			}
			snapshots <- snap
		}
	})
	if err != nil {
		log.Printf("Error opening card stream for user %s: %v", userID, err)
		http.Error(w, "Failed to open card stream", http.StatusInternalServerError)
		return
	}
	defer stop()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	code := h.displayCurrency(r, userID)
	for {
		select {
		case <-r.Context().Done():
			return
		case snap := <-snapshots:
			if err := writeCardsEvent(w, snap, code); err != nil {
				log.Printf("Error writing card stream event for user %s: %v", userID, err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeCardsEvent(w http.ResponseWriter, snap card.Snapshot, code string) error {
	now := time.Now()
	items := make([]CardResponse, 0, len(snap))
	for _, c := range snap {
		items = append(items, toCardResponse(c, code, now))
	}

	stats := card.Totals(snap)
	event := CardsStreamEvent{
		Cards: items,
		Summary: SummaryResponse{
			TotalBalance:           stats.TotalBalance,
			TotalBalanceDisplay:    currency.Format(stats.TotalBalance, code),
			TotalMinimumDue:        stats.TotalMinimumDue,
			TotalMinimumDueDisplay: currency.Format(stats.TotalMinimumDue, code),
			CardCount:              len(snap),
		},
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: cards\ndata: %s\n\n", payload)
	return err
}
