package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/picktrack/feed"
	"github.com/padraicbc/picktrack/matching"
	"github.com/padraicbc/picktrack/models"
)

// scheduleEvent decorates a feed event for the board: day bucket,
// tennis surface, hot-team flags and whether an H2H insight is
// available for the matchup.
type scheduleEvent struct {
	feed.Event
	Day     feed.DayClass `json:"day"`
	Surface feed.Surface  `json:"surface,omitempty"`
	HomeHot bool          `json:"homeHot"`
	AwayHot bool          `json:"awayHot"`
	H2H     bool          `json:"h2hAvailable"`
}

// hotTeamRow joins a qualifying streak to its team's name and code.
type hotTeamRow struct {
	Name   string `bun:"name"`
	Code   string `bun:"code"`
	Streak int    `bun:"streak"`
}

const hotTeamsSQL = `
SELECT t.name, t.code, ts.streak
FROM team_statuses ts
INNER JOIN teams t ON ts.team_id = t.id
WHERE ts.streak >= ?
`

// Schedule returns today's and upcoming events for a sport, decorated
// with hot-team badges and, for tennis, surface and H2H availability.
// Past events are dropped from the board.
func (h *Handler) Schedule(c echo.Context) error {
	sport := c.QueryParam("sport")
	if sport == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing sport param")
	}
	tour := c.QueryParam("tour")

	ctx := c.Request().Context()

	events, err := h.feed.Events(ctx, sport)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	var hot []hotTeamRow
	if err := h.db.NewRaw(hotTeamsSQL, h.hotStreakMin).Scan(ctx, &hot); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	board := make([]scheduleEvent, 0, len(events))
	for _, ev := range events {
		day := feed.Classify(ev.StartTime, ev.VenueLocation(), now)
		if day == feed.DayPast {
			continue
		}

		item := scheduleEvent{
			Event:   ev,
			Day:     day,
			HomeHot: h.isHot(hot, ev.Home),
			AwayHot: h.isHot(hot, ev.Away),
		}

		if sport == "tennis" {
			item.Surface = feed.InferSurface(ev.Tournament)
			item.H2H = h.h2hAvailable(ev, tour)
		}

		board = append(board, item)
	}

	return c.JSON(http.StatusOK, board)
}

// isHot reports whether any hot team's code or full name appears
// word-bounded in the free-text side of an event.
func (h *Handler) isHot(hot []hotTeamRow, side string) bool {
	for _, t := range hot {
		if matching.TeamCodeInText(t.Code, side) || matching.TeamNameInText(t.Name, side) {
			return true
		}
	}
	return false
}

// h2hAvailable reports whether both sides of a matchup resolve to
// canonical players. Unresolved entities suppress the insight link
// rather than erroring.
func (h *Handler) h2hAvailable(ev feed.Event, tour string) bool {
	if h.resolver == nil {
		return false
	}
	if _, err := h.resolver.ResolvePlayer(ev.Home, tour); err != nil {
		return false
	}
	if _, err := h.resolver.ResolvePlayer(ev.Away, tour); err != nil {
		return false
	}
	return true
}

// Bankroll reports the current bankroll with open exposure across
// pending picks and parlays.
func (h *Handler) Bankroll(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	var pickStake int
	err = h.db.NewSelect().Model((*models.Pick)(nil)).
		ColumnExpr("COALESCE(SUM(stake), 0)").
		Where("user_id = ? AND status = ?", user.ID, models.StatusPending).
		Scan(ctx, &pickStake)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var parlayStake int
	err = h.db.NewSelect().Model((*models.Parlay)(nil)).
		ColumnExpr("COALESCE(SUM(stake), 0)").
		Where("user_id = ? AND status = ?", user.ID, models.StatusPending).
		Scan(ctx, &parlayStake)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"bankroll":        user.Bankroll,
		"openPickStake":   pickStake,
		"openParlayStake": parlayStake,
		"exposure":        pickStake + parlayStake,
	})
}
