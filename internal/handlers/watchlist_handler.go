package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/marketmood/internal/services/watchlist"
)

// WatchlistStore is the persistence surface the handler needs.
type WatchlistStore interface {
	Add(ctx context.Context, symbol string) error
	List(ctx context.Context) ([]watchlist.Entry, error)
	Remove(ctx context.Context, symbol string) error
}

// WatchlistHandler serves the optional watchlist endpoints. When storage is
// not configured every request answers 503.
type WatchlistHandler struct {
	store  WatchlistStore
	logger arbor.ILogger
}

func NewWatchlistHandler(store WatchlistStore, logger arbor.ILogger) *WatchlistHandler {
	return &WatchlistHandler{
		store:  store,
		logger: logger,
	}
}

type watchlistRequest struct {
	Symbol string `json:"symbol"`
}

// WatchlistHandler dispatches on method: GET lists entries, POST adds one,
// DELETE removes one.
func (h *WatchlistHandler) WatchlistHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.add(w, r)
	case http.MethodDelete:
		h.remove(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *WatchlistHandler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.List(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"symbols": entries,
		"count":   len(entries),
	})
}

func (h *WatchlistHandler) add(w http.ResponseWriter, r *http.Request) {
	var req watchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		http.Error(w, "Missing symbol", http.StatusBadRequest)
		return
	}

	if err := h.store.Add(r.Context(), symbol); err != nil {
		h.writeStoreError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{
		"status": "success",
		"symbol": strings.ToUpper(symbol),
	})
}

func (h *WatchlistHandler) remove(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimSpace(r.URL.Query().Get("symbol"))
	if symbol == "" {
		http.Error(w, "Missing symbol", http.StatusBadRequest)
		return
	}

	if err := h.store.Remove(r.Context(), symbol); err != nil {
		h.writeStoreError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "success",
	})
}

func (h *WatchlistHandler) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, watchlist.ErrNotConfigured) {
		WriteError(w, http.StatusServiceUnavailable, "Watchlist storage is not configured")
		return
	}

	h.logger.Warn().Err(err).Msg("Watchlist operation failed")
	WriteError(w, http.StatusBadGateway, "Watchlist storage request failed")
}
