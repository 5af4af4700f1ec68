package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/padraicbc/picktrack/models"
	"github.com/padraicbc/picktrack/odds"
)

type parlayRequest struct {
	Legs  []odds.Leg `json:"legs"`
	Stake *int       `json:"stake,omitempty"`
}

// combinedResult is the full parlay quote returned to the UI. Decimal
// odds are rendered as a fixed two-decimal string.
type combinedResult struct {
	CombinedOdds        string              `json:"combinedOdds"`
	CombinedDecimalOdds string              `json:"combinedDecimalOdds"`
	SuggestedStake      int                 `json:"suggestedStake"`
	PotentialPayout     int                 `json:"potentialPayout"`
	Profit              int                 `json:"profit"`
	Bankroll            float64             `json:"bankroll"`
	AvgConfidence       float64             `json:"avgConfidence"`
	LegCount            int                 `json:"legCount"`
	Breakdown           []odds.LegBreakdown `json:"breakdown"`
}

// quoteParlay runs the pure combination for a request against the
// user's bankroll. An explicit stake overrides the suggested one for
// payout purposes.
func quoteParlay(bankroll float64, req parlayRequest) (combinedResult, odds.Combined, int, error) {
	combined, err := odds.Combine(req.Legs)
	if err != nil {
		return combinedResult{}, odds.Combined{}, 0, err
	}

	suggested := odds.SuggestedStake(bankroll, req.Legs)
	stake := suggested
	if req.Stake != nil && *req.Stake > 0 {
		stake = *req.Stake
	}
	payout := odds.PotentialPayout(stake, combined.CombinedDecimal)

	return combinedResult{
		CombinedOdds:        combined.CombinedOdds,
		CombinedDecimalOdds: fmt.Sprintf("%.2f", combined.CombinedDecimal),
		SuggestedStake:      suggested,
		PotentialPayout:     payout,
		Profit:              payout - stake,
		Bankroll:            bankroll,
		AvgConfidence:       combined.AvgConfidence,
		LegCount:            combined.LegCount,
		Breakdown:           combined.Breakdown,
	}, combined, stake, nil
}

// CalculateParlay quotes a parlay without persisting anything.
func (h *Handler) CalculateParlay(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req parlayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, _, _, err := quoteParlay(user.Bankroll, req)
	if errors.Is(err, odds.ErrInsufficientLegs) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, result)
}

// CreateParlay persists a parlay and its legs in one transaction. Only
// legs that survived odds parsing are stored; the parlay owns them
// exclusively.
func (h *Handler) CreateParlay(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req parlayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, combined, stake, err := quoteParlay(user.Bankroll, req)
	if errors.Is(err, odds.ErrInsufficientLegs) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	parlay := &models.Parlay{
		UserID:          user.ID,
		CombinedOdds:    combined.CombinedOdds,
		CombinedDecimal: combined.CombinedDecimal,
		Stake:           stake,
		SuggestedStake:  result.SuggestedStake,
		PotentialPayout: result.PotentialPayout,
		Status:          models.StatusPending,
	}

	ctx := c.Request().Context()
	err = h.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(parlay).Exec(ctx); err != nil {
			return err
		}

		// The breakdown carries the parsed decimal cache per leg;
		// unparseable legs were already excluded by the combination.
		legs := make([]models.ParlayLeg, 0, combined.LegCount)
		for _, b := range combined.Breakdown {
			legs = append(legs, models.ParlayLeg{
				ParlayID:    parlay.ID,
				Sport:       b.Sport,
				Event:       b.Event,
				Prediction:  b.Prediction,
				Odds:        b.Odds,
				DecimalOdds: b.DecimalOdds,
				Confidence:  b.Confidence,
				Status:      models.StatusPending,
			})
		}

		if _, err := tx.NewInsert().Model(&legs).Exec(ctx); err != nil {
			return err
		}
		parlay.Legs = legs
		return nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, parlay)
}

// ListParlays returns the current user's parlays with their legs.
func (h *Handler) ListParlays(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var parlays []models.Parlay
	err = h.db.NewSelect().Model(&parlays).
		Relation("Legs").
		Where("user_id = ?", user.ID).
		OrderExpr("pl.created_at DESC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, parlays)
}

// UpdateParlayStatus transitions a pending parlay and settles the
// bankroll. Parlay status is never derived from leg statuses; the
// caller decides the outcome.
func (h *Handler) UpdateParlayStatus(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid parlay id")
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	parlay := &models.Parlay{}
	err = h.db.NewSelect().Model(parlay).
		Where("pl.id = ? AND pl.user_id = ?", id, user.ID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return echo.NewHTTPError(http.StatusNotFound, "parlay not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !models.ValidStatusTransition(parlay.Status, req.Status) {
		return echo.NewHTTPError(http.StatusConflict, "invalid status transition")
	}

	// Payout includes the stake, so a win credits profit only.
	delta := 0.0
	switch req.Status {
	case models.StatusWon:
		delta = float64(parlay.PotentialPayout - parlay.Stake)
	case models.StatusLost:
		delta = -float64(parlay.Stake)
	}

	parlay.Status = req.Status

	err = h.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(parlay).
			Column("status").
			WherePK().
			Exec(ctx); err != nil {
			return err
		}
		if delta != 0 {
			if _, err := tx.NewUpdate().Model((*models.User)(nil)).
				Set("bankroll = bankroll + ?", delta).
				Where("id = ?", user.ID).
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, parlay)
}
