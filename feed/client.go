package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Event is one upstream schedule entry with its current moneyline odds.
// Team/player names arrive as free text and go through the matching
// package before any canonical lookup.
type Event struct {
	ID         string    `json:"id"`
	Sport      string    `json:"sport"`
	League     string    `json:"league"`
	Tournament string    `json:"tournament,omitempty"`
	Home       string    `json:"home"`
	Away       string    `json:"away"`
	HomeOdds   string    `json:"homeOdds"`
	AwayOdds   string    `json:"awayOdds"`
	StartTime  time.Time `json:"startTime"`
	VenueTZ    string    `json:"venueTz,omitempty"`
	Status     string    `json:"status"`
	Winner     string    `json:"winner,omitempty"`
}

// Client fetches schedules, odds and results from the upstream provider.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

// NewClient builds a feed client. A zero timeout on the provider side is
// bounded here at 15s.
func NewClient(baseURL, apiKey string, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

// Events returns the schedule for a sport. The caller classifies and
// filters; this just fetches and decodes.
func (c *Client) Events(ctx context.Context, sport string) ([]Event, error) {
	q := url.Values{"sport": {sport}}
	return c.get(ctx, "/v1/events", q)
}

// Results returns finished events for a sport since the given time,
// used by the settlement and streak jobs.
func (c *Client) Results(ctx context.Context, sport string, since time.Time) ([]Event, error) {
	q := url.Values{
		"sport": {sport},
		"since": {since.UTC().Format(time.RFC3339)},
	}
	return c.get(ctx, "/v1/results", q)
}

// H2HRecord is the historical head-to-head between two canonical
// players, keyed the way the matching package normalizes names.
type H2HRecord struct {
	A        string `json:"a"`
	B        string `json:"b"`
	AWins    int    `json:"aWins"`
	BWins    int    `json:"bWins"`
	LastMeet string `json:"lastMeet,omitempty"`
}

// H2H fetches the head-to-head record for two canonical player keys.
func (c *Client) H2H(ctx context.Context, a, b string) (H2HRecord, error) {
	q := url.Values{"a": {a}, "b": {b}}
	u := c.baseURL + "/v1/h2h?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return H2HRecord{}, fmt.Errorf("building h2h request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return H2HRecord{}, fmt.Errorf("fetching h2h: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return H2HRecord{}, fmt.Errorf("feed h2h: unexpected status %d", resp.StatusCode)
	}

	var rec H2HRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return H2HRecord{}, fmt.Errorf("decoding h2h: %w", err)
	}
	return rec, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]Event, error) {
	u := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s: unexpected status %d", path, resp.StatusCode)
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	c.log.Debug("feed fetch", zap.String("path", path), zap.Int("events", len(events)))
	return events, nil
}

// VenueLocation loads an event's venue timezone, falling back to UTC
// when the feed omits or garbles it.
func (e Event) VenueLocation() *time.Location {
	if e.VenueTZ == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(e.VenueTZ)
	if err != nil {
		return time.UTC
	}
	return loc
}
