package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/trytobebee/neon_snake/pkg/config"
)

// RecordsResponse is the body of GET /api/v1/highscores
type RecordsResponse struct {
	Records []Record `json:"records"`
}

// TopResponse is the body of GET /api/v1/highscores/top
type TopResponse struct {
	Record *Record `json:"record"`
}

// SubmitRequest is the body of POST /api/v1/highscores
type SubmitRequest struct {
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
}

// HTTPStore implements Store against the leaderboard HTTP API
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore creates a store for the API rooted at baseURL.
// A nil client gets one with the default request timeout.
func NewHTTPStore(baseURL string, client *http.Client) *HTTPStore {
	if client == nil {
		client = &http.Client{Timeout: config.RequestTimeout}
	}
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Top fetches the best limit records
func (s *HTTPStore) Top(ctx context.Context, limit int) ([]Record, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/v1/highscores?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	var body RecordsResponse
	if err := s.do(req, http.StatusOK, &body); err != nil {
		return nil, err
	}
	return body.Records, nil
}

// Append posts rec; the server assigns ID and CreatedAt
func (s *HTTPStore) Append(ctx context.Context, rec *Record) error {
	payload, err := json.Marshal(SubmitRequest{PlayerName: rec.PlayerName, Score: rec.Score})
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/v1/highscores", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var stored Record
	if err := s.do(req, http.StatusCreated, &stored); err != nil {
		return err
	}
	rec.ID = stored.ID
	rec.CreatedAt = stored.CreatedAt
	return nil
}

func (s *HTTPStore) do(req *http.Request, want int, out interface{}) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s: status %d: %s", ErrTransport, req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", ErrTransport, err)
	}
	return nil
}
