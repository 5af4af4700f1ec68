// Package odds converts between American and decimal odds notation and
// combines parlay legs into stake, payout and confidence figures.
// Everything here is pure and safe for concurrent use.
package odds

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidOdds is returned when an odds string contains no parseable
// signed integer. Callers exclude such legs from combination rather
// than treating them as zero.
var ErrInvalidOdds = errors.New("odds: not a valid American odds string")

// ErrInsufficientLegs is returned when a parlay combination is attempted
// with fewer than two parseable legs.
var ErrInsufficientLegs = errors.New("odds: parlay requires at least 2 valid legs")

// Payouts above this are clamped for display; leg counts are unbounded
// so the product can run away.
const maxDisplayPayout = 10_000_000

// Leg is a single parlay selection with American odds.
type Leg struct {
	Sport      string `json:"sport"`
	Event      string `json:"event"`
	Prediction string `json:"prediction"`
	Odds       string `json:"odds"`
	Confidence int    `json:"confidence"`
}

// LegBreakdown reports the per-leg figures that went into a combination.
type LegBreakdown struct {
	Sport       string  `json:"sport,omitempty"`
	Event       string  `json:"event"`
	Prediction  string  `json:"prediction"`
	Odds        string  `json:"odds"`
	DecimalOdds float64 `json:"decimalOdds"`
	Confidence  int     `json:"confidence"`
}

// Combined is the result of multiplying parlay legs together.
type Combined struct {
	CombinedOdds    string         `json:"combinedOdds"`
	CombinedDecimal float64        `json:"combinedDecimal"`
	AvgConfidence   float64        `json:"avgConfidence"`
	LegCount        int            `json:"legCount"`
	Breakdown       []LegBreakdown `json:"breakdown"`
}

// AmericanToDecimal converts an American odds string to decimal odds.
// "-200" → 1.5, "+150" → 2.5, "+100" → 2.0.
func AmericanToDecimal(odds string) (float64, error) {
	s := strings.TrimSpace(odds)
	s = strings.TrimPrefix(s, "+")

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOdds, odds)
	}
	if v == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOdds, odds)
	}

	if v < 0 {
		return 1.0 + 100.0/float64(-v), nil
	}
	return 1.0 + float64(v)/100.0, nil
}

// DecimalToAmerican converts decimal odds back to American notation.
// 2.5 → "+150", 1.5 → "-200". Decimal 2.0 sits on the boundary between
// the two formulas and maps to "+100".
func DecimalToAmerican(decimal float64) string {
	if decimal <= 1.0 {
		return "0"
	}
	if decimal >= 2.0 {
		return fmt.Sprintf("+%d", int(math.Round((decimal-1.0)*100.0)))
	}
	return strconv.Itoa(int(math.Round(-100.0 / (decimal - 1.0))))
}

// Combine multiplies the legs' decimal odds into parlay-level figures.
// Legs whose odds do not parse are excluded from the product entirely;
// fewer than two parseable legs is ErrInsufficientLegs.
func Combine(legs []Leg) (Combined, error) {
	product := 1.0
	confidenceSum := 0
	breakdown := make([]LegBreakdown, 0, len(legs))

	for _, leg := range legs {
		d, err := AmericanToDecimal(leg.Odds)
		if err != nil {
			continue
		}
		product *= d
		confidenceSum += leg.Confidence
		breakdown = append(breakdown, LegBreakdown{
			Sport:       leg.Sport,
			Event:       leg.Event,
			Prediction:  leg.Prediction,
			Odds:        leg.Odds,
			DecimalOdds: d,
			Confidence:  leg.Confidence,
		})
	}

	if len(breakdown) < 2 {
		return Combined{}, ErrInsufficientLegs
	}

	avg := float64(confidenceSum) / float64(len(breakdown))

	return Combined{
		CombinedOdds:    DecimalToAmerican(product),
		CombinedDecimal: product,
		AvgConfidence:   math.Round(avg*10) / 10,
		LegCount:        len(breakdown),
		Breakdown:       breakdown,
	}, nil
}

// unitPercent is the bankroll fraction staked for a given confidence.
// Tiers: ≥8 → 4%, ≥7 → 3%, ≥6 → 2%, else 1%.
func unitPercent(confidence int) float64 {
	switch {
	case confidence >= 8:
		return 0.04
	case confidence >= 7:
		return 0.03
	case confidence >= 6:
		return 0.02
	default:
		return 0.01
	}
}

// StakeForConfidence sizes a single pick as a bankroll percentage keyed
// by its confidence tier.
func StakeForConfidence(bankroll float64, confidence int) int {
	return int(math.Round(bankroll * unitPercent(confidence)))
}

// SuggestedStake sizes a parlay by the minimum confidence among its
// parseable legs, the most conservative leg setting the unit.
func SuggestedStake(bankroll float64, legs []Leg) int {
	minConfidence := 0
	for _, leg := range legs {
		if _, err := AmericanToDecimal(leg.Odds); err != nil {
			continue
		}
		if minConfidence == 0 || leg.Confidence < minConfidence {
			minConfidence = leg.Confidence
		}
	}
	return int(math.Round(bankroll * unitPercent(minConfidence)))
}

// PotentialPayout returns the total amount returned to the bettor for a
// stake at the given combined decimal odds, clamped to the display cap.
// Profit is payout minus stake.
func PotentialPayout(stake int, combinedDecimal float64) int {
	payout := math.Round(float64(stake) * combinedDecimal)
	if payout > maxDisplayPayout {
		return maxDisplayPayout
	}
	return int(payout)
}

// CalculatePayout prices a single pick's winnings for a bet amount.
// Negative odds → amount×100/|odds|, positive → amount×odds/100.
// Unlike Combine, unparseable odds here yield a zero payout; the two
// call sites intentionally differ.
func CalculatePayout(betAmount int, americanOdds string) int {
	s := strings.TrimSpace(americanOdds)
	s = strings.TrimPrefix(s, "+")

	v, err := strconv.Atoi(s)
	if err != nil || v == 0 {
		return 0
	}

	if v < 0 {
		return int(math.Round(float64(betAmount) * 100.0 / float64(-v)))
	}
	return int(math.Round(float64(betAmount) * float64(v) / 100.0))
}
