package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/padraicbc/picktrack/feed"
	"github.com/padraicbc/picktrack/matching"
)

// An unresolved player never errors the insight endpoint; the response
// says resolved false and the UI drops the affordance.
func TestH2HUnresolvedDegrades(t *testing.T) {
	db, _ := newMockDB(t)
	resolver := matching.NewResolver(matching.DefaultTable(), nil)
	resolver.RegisterPlayers("atp", "Jannik Sinner")

	h := New(db, []byte("test-key"), Options{Resolver: resolver})
	c, rec := newContext(t, db, http.MethodGet, "/pt/insights/h2h?a=Roger+Nobody&b=Sinner", "")

	if err := h.H2H(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got h2hResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Resolved {
		t.Error("Resolved = true for an unknown player")
	}
	if got.Record != nil || got.A != nil || got.B != nil {
		t.Errorf("degraded response carries data: %+v", got)
	}
}

// The schedule board only offers an H2H link when both sides resolve.
func TestH2HAvailable(t *testing.T) {
	db, _ := newMockDB(t)
	resolver := matching.NewResolver(matching.DefaultTable(), nil)
	resolver.RegisterPlayers("atp", "Jannik Sinner", "Carlos Alcaraz")

	h := New(db, []byte("test-key"), Options{Resolver: resolver})

	both := feed.Event{Home: "Sinner", Away: "Alcaraz"}
	if !h.h2hAvailable(both, "atp") {
		t.Error("h2hAvailable = false with both players registered")
	}

	oneUnknown := feed.Event{Home: "Sinner", Away: "Roger Nobody"}
	if h.h2hAvailable(oneUnknown, "atp") {
		t.Error("h2hAvailable = true with an unresolved side")
	}

	noResolver := New(db, []byte("test-key"), Options{})
	if noResolver.h2hAvailable(both, "atp") {
		t.Error("h2hAvailable = true with no resolver wired")
	}
}
