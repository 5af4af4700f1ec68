// Package aipicks calls the configured AI endpoint to turn a bankroll
// and strategy context into structured pick proposals. The model call
// itself is opaque; this package owns prompt assembly and strict
// validation of what comes back.
package aipicks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/padraicbc/picktrack/feed"
	"github.com/padraicbc/picktrack/odds"
)

// Proposal is one AI-suggested pick. Odds are American notation and
// confidence is 1–10; anything outside that is dropped before callers
// see it.
type Proposal struct {
	Sport      string `json:"sport"`
	Event      string `json:"event"`
	Prediction string `json:"prediction"`
	Odds       string `json:"odds"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning,omitempty"`
}

// GenerateRequest carries the context the prompt is built from.
type GenerateRequest struct {
	Bankroll float64
	Strategy string
	Events   []feed.Event
}

// Client posts prompts to the AI endpoint and decodes proposals.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

// NewClient builds an AI picks client.
func NewClient(baseURL, apiKey string, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 60 * time.Second},
		log:     log,
	}
}

type generatePayload struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Picks []Proposal `json:"picks"`
}

// GeneratePicks asks the AI collaborator for pick proposals. Proposals
// with unparseable odds or out-of-range confidence are logged and
// dropped; an empty result is not an error.
func (c *Client) GeneratePicks(ctx context.Context, req GenerateRequest) ([]Proposal, error) {
	body, err := json.Marshal(generatePayload{Prompt: buildPrompt(req)})
	if err != nil {
		return nil, fmt.Errorf("encoding generate payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/picks", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling pick generation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pick generation: unexpected status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding pick generation response: %w", err)
	}

	valid := make([]Proposal, 0, len(decoded.Picks))
	for _, p := range decoded.Picks {
		if err := validate(p); err != nil {
			c.log.Warn("dropping AI pick proposal", zap.String("event", p.Event), zap.Error(err))
			continue
		}
		valid = append(valid, p)
	}

	return valid, nil
}

func validate(p Proposal) error {
	if strings.TrimSpace(p.Event) == "" || strings.TrimSpace(p.Prediction) == "" {
		return fmt.Errorf("missing event or prediction")
	}
	if p.Confidence < 1 || p.Confidence > 10 {
		return fmt.Errorf("confidence %d out of range", p.Confidence)
	}
	if _, err := odds.AmericanToDecimal(p.Odds); err != nil {
		return err
	}
	return nil
}

// buildPrompt renders the bankroll/strategy context plus the current
// board into the prompt the endpoint expects.
func buildPrompt(req GenerateRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Bankroll: %.0f units.\n", req.Bankroll)
	if req.Strategy != "" {
		fmt.Fprintf(&b, "Strategy: %s\n", req.Strategy)
	}
	b.WriteString("Suggest picks from these events. Respond with JSON {\"picks\":[{sport,event,prediction,odds,confidence,reasoning}]} using American odds strings and confidence 1-10.\n")

	for _, ev := range req.Events {
		fmt.Fprintf(&b, "- [%s] %s vs %s (%s / %s) starting %s\n",
			ev.Sport, ev.Home, ev.Away, ev.HomeOdds, ev.AwayOdds,
			ev.StartTime.Format(time.RFC3339))
	}

	return b.String()
}
