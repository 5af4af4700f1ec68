package matching_test

import (
	"errors"
	"testing"
	"time"

	"github.com/padraicbc/picktrack/cache"
	"github.com/padraicbc/picktrack/matching"
)

func newTestResolver(c *cache.Cache) *matching.Resolver {
	r := matching.NewResolver(matching.DefaultTable(), c)
	r.RegisterPlayers("wta", "Wang Xinyu", "Iga Swiatek", "Aryna Sabalenka")
	r.RegisterPlayers("atp", "Jannik Sinner", "Carlos Alcaraz", "Daniil Medvedev")
	r.RegisterTeam("nhl", "Minnesota Wild", "MIN")
	r.RegisterTeam("nba", "Los Angeles Lakers", "LAL")
	return r
}

func TestResolvePlayer(t *testing.T) {
	r := newTestResolver(nil)

	tests := []struct {
		name     string
		input    string
		tour     string
		wantName string
	}{
		{"exact", "Jannik Sinner", "atp", "Jannik Sinner"},
		{"reversed", "Xinyu Wang", "wta", "Wang Xinyu"},
		{"surname", "Medvedev", "atp", "Daniil Medvedev"},
		{"wrong hint still resolves", "Iga Swiatek", "atp", "Iga Swiatek"},
		{"no hint", "Carlos Alcaraz", "", "Carlos Alcaraz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := r.ResolvePlayer(tt.input, tt.tour)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id.Name != tt.wantName {
				t.Errorf("ResolvePlayer(%q) = %q, want %q", tt.input, id.Name, tt.wantName)
			}
		})
	}
}

func TestResolveUnresolved(t *testing.T) {
	r := newTestResolver(nil)

	if _, err := r.ResolvePlayer("Roger Nobody", "atp"); !errors.Is(err, matching.ErrUnresolved) {
		t.Errorf("err = %v, want ErrUnresolved", err)
	}
	if _, err := r.ResolveTeam("Springfield Isotopes", "nhl"); !errors.Is(err, matching.ErrUnresolved) {
		t.Errorf("err = %v, want ErrUnresolved", err)
	}
}

func TestResolveTeam(t *testing.T) {
	r := newTestResolver(nil)

	id, err := r.ResolveTeam("Wild", "nhl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Code != "MIN" {
		t.Errorf("Code = %q, want MIN", id.Code)
	}
}

// A name registered in two pools resolves the same way on every run:
// the preferred pool first, otherwise the alphabetically first pool.
func TestResolveStableAcrossPools(t *testing.T) {
	r := matching.NewResolver(matching.DefaultTable(), nil)
	r.RegisterPlayers("exhibition", "Jannik Sinner")
	r.RegisterPlayers("atp", "Jannik Sinner")

	for i := 0; i < 20; i++ {
		id, err := r.ResolvePlayer("Sinner", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id.Tour != "atp" {
			t.Fatalf("Tour = %q, want atp", id.Tour)
		}
	}

	id, err := r.ResolvePlayer("Sinner", "exhibition")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Tour != "exhibition" {
		t.Errorf("preferred Tour = %q, want exhibition", id.Tour)
	}
}

// Cached results, positive and negative, are reused within the TTL.
func TestResolverCaching(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := cache.New(30*time.Minute, cache.WithClock(func() time.Time { return now }))
	r := newTestResolver(c)

	if _, err := r.ResolvePlayer("Sinner", "atp"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.ResolvePlayer("Roger Nobody", "atp"); !errors.Is(err, matching.ErrUnresolved) {
		t.Fatalf("err = %v, want ErrUnresolved", err)
	}
	if c.Len() != 2 {
		t.Fatalf("cache Len = %d, want 2", c.Len())
	}

	// The negative entry keeps answering unresolved from cache.
	if _, err := r.ResolvePlayer("Roger Nobody", "atp"); !errors.Is(err, matching.ErrUnresolved) {
		t.Errorf("cached err = %v, want ErrUnresolved", err)
	}

	id, err := r.ResolvePlayer("Sinner", "atp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Name != "Jannik Sinner" {
		t.Errorf("cached resolve = %q, want Jannik Sinner", id.Name)
	}
}
