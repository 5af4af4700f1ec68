// Package scheduler runs the background jobs: team streak refresh,
// settlement of due picks and cache sweeps.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/picktrack/cache"
	"github.com/padraicbc/picktrack/feed"
	"github.com/padraicbc/picktrack/matching"
)

// Deps are the collaborators the jobs need.
type Deps struct {
	DB       *bun.DB
	Feed     *feed.Client
	Resolver *matching.Resolver
	Caches   []*cache.Cache
	Log      *zap.Logger

	// Sports whose results feed the streak and settlement jobs.
	Sports []string
}

// Setup registers and starts the cron jobs. The returned cron is
// already running; callers stop it on shutdown.
func Setup(deps Deps) (*cron.Cron, error) {
	c := cron.New()

	// Every 30 minutes: recompute win streaks from recent results.
	if _, err := c.AddFunc("*/30 * * * *", func() {
		if err := RefreshTeamStatuses(deps); err != nil {
			deps.Log.Error("refresh team statuses", zap.Error(err))
		}
	}); err != nil {
		return nil, err
	}

	// Hourly: settle picks whose events have finished. Parlay status
	// stays caller-driven; this job never touches parlays.
	if _, err := c.AddFunc("0 * * * *", func() {
		if err := SettleDuePicks(deps); err != nil {
			deps.Log.Error("settle due picks", zap.Error(err))
		}
	}); err != nil {
		return nil, err
	}

	// Every 10 minutes: drop expired cache entries.
	if _, err := c.AddFunc("*/10 * * * *", func() {
		removed := 0
		for _, ca := range deps.Caches {
			removed += ca.Purge()
		}
		if removed > 0 {
			deps.Log.Debug("cache sweep", zap.Int("removed", removed))
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
