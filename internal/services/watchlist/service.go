// Package watchlist persists tracked ticker symbols through the Supabase
// PostgREST API using the project anon key.
package watchlist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/marketmood/internal/common"
	"github.com/ternarybob/marketmood/internal/httpclient"
)

// ErrNotConfigured is returned when no Supabase URL or key is set. The
// watchlist is an optional feature; callers map this to a service-unavailable
// response rather than an error log.
var ErrNotConfigured = errors.New("watchlist storage is not configured")

const watchlistTimeout = 15 * time.Second

// Entry is one watched symbol row.
type Entry struct {
	ID        int64     `json:"id,omitempty"`
	Symbol    string    `json:"symbol"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Service talks to the Supabase REST endpoint for the watchlist table.
type Service struct {
	baseURL    string
	anonKey    string
	table      string
	httpClient *http.Client
	logger     arbor.ILogger
}

// NewService builds the watchlist service. With an empty URL or key the
// service still constructs, but every operation returns ErrNotConfigured.
func NewService(cfg *common.SupabaseConfig, logger arbor.ILogger) *Service {
	return &Service{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		table:      cfg.Table,
		httpClient: httpclient.NewDefaultHTTPClient(watchlistTimeout),
		logger:     logger,
	}
}

func (s *Service) configured() bool {
	return s.baseURL != "" && s.anonKey != ""
}

func (s *Service) endpoint() string {
	return fmt.Sprintf("%s/rest/v1/%s", s.baseURL, s.table)
}

func (s *Service) setAuthHeaders(req *http.Request) {
	req.Header.Set("apikey", s.anonKey)
	req.Header.Set("Authorization", "Bearer "+s.anonKey)
}

// Add stores a symbol on the watchlist. Symbols are normalized to uppercase
// before insert.
func (s *Service) Add(ctx context.Context, symbol string) error {
	if !s.configured() {
		return ErrNotConfigured
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}

	body, err := json.Marshal([]Entry{{Symbol: symbol}})
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")
	s.setAuthHeaders(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("watchlist insert failed: %d - %s", resp.StatusCode, string(respBody))
	}

	s.logger.Debug().Str("symbol", symbol).Msg("Symbol added to watchlist")
	return nil
}

// List returns all watched symbols, newest first.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	if !s.configured() {
		return nil, ErrNotConfigured
	}

	url := s.endpoint() + "?select=*&order=created_at.desc"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	s.setAuthHeaders(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("watchlist query failed: %d - %s", resp.StatusCode, string(respBody))
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return entries, nil
}

// Remove deletes a symbol from the watchlist.
func (s *Service) Remove(ctx context.Context, symbol string) error {
	if !s.configured() {
		return ErrNotConfigured
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	url := fmt.Sprintf("%s?symbol=eq.%s", s.endpoint(), symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Prefer", "return=minimal")
	s.setAuthHeaders(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("watchlist delete failed: %d - %s", resp.StatusCode, string(respBody))
	}

	return nil
}
