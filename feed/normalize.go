// Package feed fetches upstream schedule/odds payloads and normalizes
// them into the shapes the matcher and odds calculator consume. The
// classifiers here are pure and table-driven so they unit-test without
// their data sources.
package feed

import (
	"strings"
	"time"
)

// DayClass buckets an event relative to the venue-local calendar date.
type DayClass string

const (
	DayPast     DayClass = "past"
	DayToday    DayClass = "today"
	DayUpcoming DayClass = "upcoming"
)

// Classify reports whether an event is today, upcoming or past, with
// both instants compared as calendar dates in the venue's timezone.
// A late game in Melbourne is "today" there long after it stopped being
// today in UTC.
func Classify(start time.Time, venueTZ *time.Location, now time.Time) DayClass {
	if venueTZ == nil {
		venueTZ = time.UTC
	}

	sy, sm, sd := start.In(venueTZ).Date()
	ny, nm, nd := now.In(venueTZ).Date()

	switch {
	case sy == ny && sm == nm && sd == nd:
		return DayToday
	case start.In(venueTZ).After(now.In(venueTZ)):
		return DayUpcoming
	default:
		return DayPast
	}
}

// Surface is a tennis court surface.
type Surface string

const (
	SurfaceHard  Surface = "hard"
	SurfaceClay  Surface = "clay"
	SurfaceGrass Surface = "grass"
)

// Keyword tables for surface inference. Checked as substrings of the
// lowercased tournament name; hard court is the default.
var (
	claySignals = []string{
		"clay", "roland garros", "french open", "monte carlo", "monte-carlo",
		"rome", "madrid", "barcelona", "hamburg", "buenos aires", "rio open",
		"umag", "gstaad", "kitzbuhel",
	}
	grassSignals = []string{
		"grass", "wimbledon", "halle", "queen", "eastbourne", "hertogenbosch",
		"newport", "mallorca", "bad homburg", "stuttgart open",
	}
)

// InferSurface guesses the court surface from a free-text tournament
// name. Unknown tournaments default to hard.
func InferSurface(tournament string) Surface {
	name := strings.ToLower(tournament)

	for _, kw := range claySignals {
		if strings.Contains(name, kw) {
			return SurfaceClay
		}
	}
	for _, kw := range grassSignals {
		if strings.Contains(name, kw) {
			return SurfaceGrass
		}
	}
	return SurfaceHard
}
