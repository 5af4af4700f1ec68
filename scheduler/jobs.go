package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/picktrack/feed"
	"github.com/padraicbc/picktrack/matching"
	"github.com/padraicbc/picktrack/models"
	"github.com/padraicbc/picktrack/odds"
)

const jobTimeout = 2 * time.Minute

// RefreshTeamStatuses walks the last day's results and updates each
// resolved team's consecutive-win streak: winners increment, losers
// reset to zero. Unresolved names are skipped, never guessed.
func RefreshTeamStatuses(deps Deps) error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	since := time.Now().Add(-24 * time.Hour)

	for _, sport := range deps.Sports {
		results, err := deps.Feed.Results(ctx, sport, since)
		if err != nil {
			return err
		}

		for _, ev := range results {
			if ev.Winner == "" {
				continue
			}

			loser := ev.Home
			if matching.NamesMatch(ev.Winner, ev.Home) {
				loser = ev.Away
			}

			if err := bumpStreak(ctx, deps, ev.Winner, ev.League, true); err != nil {
				return err
			}
			if err := bumpStreak(ctx, deps, loser, ev.League, false); err != nil {
				return err
			}
		}
	}

	return nil
}

// bumpStreak updates one team's streak row, creating it on first sight.
func bumpStreak(ctx context.Context, deps Deps, name, league string, won bool) error {
	id, err := deps.Resolver.ResolveTeam(name, league)
	if errors.Is(err, matching.ErrUnresolved) {
		deps.Log.Debug("skipping unresolved team", zap.String("name", name))
		return nil
	}
	if err != nil {
		return err
	}

	var teamID int
	err = deps.DB.NewSelect().Model((*models.Team)(nil)).
		Column("id").
		Where("name = ?", id.Name).
		Scan(ctx, &teamID)
	if errors.Is(err, sql.ErrNoRows) {
		// Resolver pools and the teams table are seeded from the same
		// resource; a miss means seeding is stale.
		deps.Log.Warn("resolved team missing from teams table", zap.String("name", id.Name))
		return nil
	}
	if err != nil {
		return err
	}

	streak := 0
	lastResult := "loss"
	if won {
		lastResult = "win"
	}

	status := &models.TeamStatus{}
	err = deps.DB.NewSelect().Model(status).
		Where("team_id = ?", teamID).
		Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if won {
			streak = 1
		}
		status = &models.TeamStatus{TeamID: teamID, Streak: streak, LastResult: lastResult, UpdatedAt: time.Now()}
		_, err = deps.DB.NewInsert().Model(status).
			On("CONFLICT (team_id) DO UPDATE SET streak = EXCLUDED.streak, last_result = EXCLUDED.last_result, updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		return err
	case err != nil:
		return err
	}

	if won {
		streak = status.Streak + 1
	}
	status.Streak = streak
	status.LastResult = lastResult
	status.UpdatedAt = time.Now()

	_, err = deps.DB.NewUpdate().Model(status).
		Column("streak", "last_result", "updated_at").
		WherePK().
		Exec(ctx)
	return err
}

// SettleDuePicks resolves pending picks whose scheduled time has passed
// against finished events: the pick wins when its prediction names the
// winner, loses when the event finished otherwise, and is left pending
// when no finished event matches yet.
func SettleDuePicks(deps Deps) error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	var due []models.Pick
	err := deps.DB.NewSelect().Model(&due).
		Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at < ?", models.StatusPending, time.Now()).
		Scan(ctx)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	since := time.Now().Add(-48 * time.Hour)
	resultsBySport := make(map[string][]feed.Event)

	settled := 0
	for i := range due {
		pick := &due[i]

		results, ok := resultsBySport[pick.Sport]
		if !ok {
			results, err = deps.Feed.Results(ctx, pick.Sport, since)
			if err != nil {
				return err
			}
			resultsBySport[pick.Sport] = results
		}

		ev, ok := matchResult(pick, results)
		if !ok {
			continue
		}

		status := models.StatusLost
		if matching.TeamNameInText(ev.Winner, pick.Prediction) || matching.PlayerNamesMatch(ev.Winner, pick.Prediction) {
			status = models.StatusWon
		}

		if err := settlePick(ctx, deps.DB, pick, status); err != nil {
			return err
		}
		settled++
	}

	deps.Log.Info("settlement sweep", zap.Int("due", len(due)), zap.Int("settled", settled))
	return nil
}

// matchResult finds the finished event whose both sides appear in the
// pick's event text.
func matchResult(pick *models.Pick, results []feed.Event) (feed.Event, bool) {
	for _, ev := range results {
		if ev.Winner == "" {
			continue
		}
		if matching.TeamNameInText(ev.Home, pick.Event) && matching.TeamNameInText(ev.Away, pick.Event) {
			return ev, true
		}
	}
	return feed.Event{}, false
}

// settlePick applies the status and bankroll delta in one transaction,
// mirroring the manual settlement endpoint.
func settlePick(ctx context.Context, db *bun.DB, pick *models.Pick, status string) error {
	stake := 0
	if pick.Stake != nil {
		stake = *pick.Stake
	}

	delta := 0.0
	switch status {
	case models.StatusWon:
		delta = float64(odds.CalculatePayout(stake, pick.Odds))
	case models.StatusLost:
		delta = -float64(stake)
	}

	now := time.Now()
	pick.Status = status
	pick.SettledAt = &now

	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(pick).
			Column("status", "settled_at").
			WherePK().
			Exec(ctx); err != nil {
			return err
		}
		if delta != 0 {
			if _, err := tx.NewUpdate().Model((*models.User)(nil)).
				Set("bankroll = bankroll + ?", delta).
				Where("id = ?", pick.UserID).
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
