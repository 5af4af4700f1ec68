package odds_test

import (
	"errors"
	"math"
	"testing"

	"github.com/padraicbc/picktrack/odds"
)

func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"favorite -200", "-200", 1.5},
		{"underdog +150", "+150", 2.5},
		{"underdog without plus", "150", 2.5},
		{"even +100", "+100", 2.0},
		{"even -100", "-100", 2.0},
		{"favorite -110", "-110", 1.909090909},
		{"whitespace", " -200 ", 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := odds.AmericanToDecimal(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("AmericanToDecimal(%q) = %f, want %f", tt.in, got, tt.want)
			}
		})
	}
}

func TestAmericanToDecimalInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "+", "N/A", "0", "1.5x"} {
		t.Run(in, func(t *testing.T) {
			if _, err := odds.AmericanToDecimal(in); !errors.Is(err, odds.ErrInvalidOdds) {
				t.Errorf("AmericanToDecimal(%q) err = %v, want ErrInvalidOdds", in, err)
			}
		})
	}
}

func TestDecimalToAmerican(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"favorite 1.5", 1.5, "-200"},
		{"underdog 2.5", 2.5, "+150"},
		{"boundary 2.0", 2.0, "+100"},
		{"underdog 3.75", 3.75, "+275"},
		{"favorite 1.909", 1.9090909, "-110"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := odds.DecimalToAmerican(tt.in); got != tt.want {
				t.Errorf("DecimalToAmerican(%f) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Valid American odds survive a round trip through decimal within
// rounding tolerance.
func TestRoundTrip(t *testing.T) {
	for _, in := range []string{"-500", "-250", "-200", "-150", "-110", "+100", "+120", "+150", "+200", "+450"} {
		t.Run(in, func(t *testing.T) {
			d, err := odds.AmericanToDecimal(in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := odds.DecimalToAmerican(d)
			if got != in {
				t.Errorf("round trip %q -> %f -> %q", in, d, got)
			}
		})
	}
}

func TestCombine(t *testing.T) {
	legs := []odds.Leg{
		{Event: "A vs B", Prediction: "A ML", Odds: "-200", Confidence: 7},
		{Event: "C vs D", Prediction: "D +3.5", Odds: "+150", Confidence: 8},
	}

	got, err := odds.Combine(legs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(got.CombinedDecimal-3.75) > 0.0001 {
		t.Errorf("CombinedDecimal = %f, want 3.75", got.CombinedDecimal)
	}
	if got.CombinedOdds != "+275" {
		t.Errorf("CombinedOdds = %q, want +275", got.CombinedOdds)
	}
	if got.AvgConfidence != 7.5 {
		t.Errorf("AvgConfidence = %f, want 7.5", got.AvgConfidence)
	}
	if got.LegCount != 2 {
		t.Errorf("LegCount = %d, want 2", got.LegCount)
	}
}

// Legs that share event and prediction text keep their own sport in
// the breakdown.
func TestCombineKeepsPerLegSport(t *testing.T) {
	legs := []odds.Leg{
		{Sport: "nba", Event: "A vs B", Prediction: "over", Odds: "-110", Confidence: 6},
		{Sport: "nhl", Event: "A vs B", Prediction: "over", Odds: "+120", Confidence: 6},
	}

	got, err := odds.Combine(legs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Breakdown[0].Sport != "nba" || got.Breakdown[1].Sport != "nhl" {
		t.Errorf("breakdown sports = %q, %q; want nba, nhl",
			got.Breakdown[0].Sport, got.Breakdown[1].Sport)
	}
}

// An unparseable leg is excluded from the product, not treated as 1.0
// or 0 — the remaining legs must still combine to their own product.
func TestCombineSkipsUnparseableLeg(t *testing.T) {
	legs := []odds.Leg{
		{Event: "A vs B", Odds: "-200", Confidence: 7},
		{Event: "C vs D", Odds: "N/A", Confidence: 2},
		{Event: "E vs F", Odds: "+150", Confidence: 8},
	}

	got, err := odds.Combine(legs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.LegCount != 2 {
		t.Fatalf("LegCount = %d, want 2", got.LegCount)
	}
	if math.Abs(got.CombinedDecimal-3.75) > 0.0001 {
		t.Errorf("CombinedDecimal = %f, want 3.75", got.CombinedDecimal)
	}
	// Average confidence ignores the dropped leg too.
	if got.AvgConfidence != 7.5 {
		t.Errorf("AvgConfidence = %f, want 7.5", got.AvgConfidence)
	}
}

func TestCombineInsufficientLegs(t *testing.T) {
	tests := []struct {
		name string
		legs []odds.Leg
	}{
		{"no legs", nil},
		{"one leg", []odds.Leg{{Odds: "-110", Confidence: 6}}},
		{"two legs one unparseable", []odds.Leg{
			{Odds: "-110", Confidence: 6},
			{Odds: "EVEN", Confidence: 6},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := odds.Combine(tt.legs); !errors.Is(err, odds.ErrInsufficientLegs) {
				t.Errorf("Combine err = %v, want ErrInsufficientLegs", err)
			}
		})
	}
}

func TestStakeForConfidence(t *testing.T) {
	tests := []struct {
		confidence int
		want       int
	}{
		{10, 40},
		{8, 40},
		{7, 30},
		{6, 20},
		{5, 10},
		{1, 10},
	}

	for _, tt := range tests {
		if got := odds.StakeForConfidence(1000, tt.confidence); got != tt.want {
			t.Errorf("StakeForConfidence(1000, %d) = %d, want %d", tt.confidence, got, tt.want)
		}
	}
}

// Parlay sizing keys off the most conservative leg.
func TestSuggestedStake(t *testing.T) {
	legs := []odds.Leg{
		{Odds: "-200", Confidence: 9},
		{Odds: "+150", Confidence: 6},
	}
	if got := odds.SuggestedStake(1000, legs); got != 20 {
		t.Errorf("SuggestedStake = %d, want 20", got)
	}

	// An unparseable low-confidence leg must not drag the tier down.
	legs = append(legs, odds.Leg{Odds: "??", Confidence: 1})
	if got := odds.SuggestedStake(1000, legs); got != 20 {
		t.Errorf("SuggestedStake with junk leg = %d, want 20", got)
	}
}

func TestPotentialPayout(t *testing.T) {
	if got := odds.PotentialPayout(40, 3.75); got != 150 {
		t.Errorf("PotentialPayout(40, 3.75) = %d, want 150", got)
	}
	// Runaway products clamp at the display ceiling.
	if got := odds.PotentialPayout(1000, 1e9); got != 10_000_000 {
		t.Errorf("PotentialPayout clamp = %d, want 10000000", got)
	}
}

func TestCalculatePayout(t *testing.T) {
	tests := []struct {
		name   string
		amount int
		odds   string
		want   int
	}{
		{"favorite -200", 100, "-200", 50},
		{"underdog +150", 100, "+150", 150},
		{"even +100", 100, "+100", 100},
		{"unparseable zeroes", 100, "N/A", 0},
		{"empty zeroes", 100, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := odds.CalculatePayout(tt.amount, tt.odds); got != tt.want {
				t.Errorf("CalculatePayout(%d, %q) = %d, want %d", tt.amount, tt.odds, got, tt.want)
			}
		})
	}
}
