package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/picktrack/aipicks"
	"github.com/padraicbc/picktrack/models"
	"github.com/padraicbc/picktrack/odds"
)

type createPickRequest struct {
	Sport       string     `json:"sport"`
	Event       string     `json:"event"`
	Prediction  string     `json:"prediction"`
	Odds        string     `json:"odds"`
	Confidence  int        `json:"confidence"`
	Stake       *int       `json:"stake,omitempty"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

// ListPicks returns the current user's picks, optionally filtered by status.
func (h *Handler) ListPicks(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var picks []models.Pick
	q := h.db.NewSelect().Model(&picks).
		Where("user_id = ?", user.ID).
		OrderExpr("created_at DESC")

	if status := c.QueryParam("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, picks)
}

// CreatePick records a manually entered pick. Manual entry requires
// parseable odds up front; only feed-sourced text gets the lenient path.
func (h *Handler) CreatePick(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req createPickRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.Event = strings.TrimSpace(req.Event)
	req.Prediction = strings.TrimSpace(req.Prediction)
	if req.Event == "" || req.Prediction == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "event and prediction are required")
	}
	if req.Confidence < 1 || req.Confidence > 10 {
		return echo.NewHTTPError(http.StatusBadRequest, "confidence must be 1-10")
	}
	if _, err := odds.AmericanToDecimal(req.Odds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "odds must be a valid American odds string")
	}

	stake := odds.StakeForConfidence(user.Bankroll, req.Confidence)
	if req.Stake != nil {
		if *req.Stake <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "stake must be positive")
		}
		stake = *req.Stake
	}

	pick := &models.Pick{
		UserID:      user.ID,
		Sport:       strings.TrimSpace(req.Sport),
		Event:       req.Event,
		Prediction:  req.Prediction,
		Odds:        strings.TrimSpace(req.Odds),
		Confidence:  req.Confidence,
		Status:      models.StatusPending,
		Stake:       &stake,
		ScheduledAt: req.ScheduledAt,
	}

	if _, err := h.db.NewInsert().Model(pick).Exec(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, pick)
}

type generatePicksRequest struct {
	Sport    string `json:"sport"`
	Strategy string `json:"strategy"`
}

// GeneratePicks asks the AI collaborator for proposals over the current
// schedule and stores the valid ones as pending picks.
func (h *Handler) GeneratePicks(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req generatePicksRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Sport == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "sport is required")
	}

	ctx := c.Request().Context()

	events, err := h.feed.Events(ctx, req.Sport)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	proposals, err := h.ai.GeneratePicks(ctx, aipicks.GenerateRequest{
		Bankroll: user.Bankroll,
		Strategy: req.Strategy,
		Events:   events,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	picks := make([]models.Pick, 0, len(proposals))
	for _, p := range proposals {
		stake := odds.StakeForConfidence(user.Bankroll, p.Confidence)
		reasoning := p.Reasoning
		picks = append(picks, models.Pick{
			UserID:     user.ID,
			Sport:      p.Sport,
			Event:      p.Event,
			Prediction: p.Prediction,
			Odds:       p.Odds,
			Confidence: p.Confidence,
			Status:     models.StatusPending,
			Stake:      &stake,
			Reasoning:  &reasoning,
		})
	}

	if len(picks) > 0 {
		if _, err := h.db.NewInsert().Model(&picks).Exec(ctx); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	h.log.Info("generated picks",
		zap.String("sport", req.Sport),
		zap.Int("proposals", len(proposals)),
		zap.Int("events", len(events)))

	return c.JSON(http.StatusCreated, picks)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdatePickStatus transitions a pending pick to won, lost or void and
// settles the bankroll: wins credit the single-pick payout, losses
// debit the stake, voids leave the bankroll untouched.
func (h *Handler) UpdatePickStatus(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pick id")
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	pick := &models.Pick{}
	err = h.db.NewSelect().Model(pick).
		Where("p.id = ? AND p.user_id = ?", id, user.ID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return echo.NewHTTPError(http.StatusNotFound, "pick not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !models.ValidStatusTransition(pick.Status, req.Status) {
		return echo.NewHTTPError(http.StatusConflict, "invalid status transition")
	}

	stake := 0
	if pick.Stake != nil {
		stake = *pick.Stake
	}

	delta := 0.0
	switch req.Status {
	case models.StatusWon:
		delta = float64(odds.CalculatePayout(stake, pick.Odds))
	case models.StatusLost:
		delta = -float64(stake)
	}

	now := time.Now()
	pick.Status = req.Status
	pick.SettledAt = &now

	err = h.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(pick).
			Column("status", "settled_at").
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

	return c.JSON(http.StatusOK, pick)
}
