package handlers

import (
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/picktrack/aipicks"
	"github.com/padraicbc/picktrack/cache"
	"github.com/padraicbc/picktrack/feed"
	"github.com/padraicbc/picktrack/matching"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db     *bun.DB
	JWTKey []byte

	feed     *feed.Client
	ai       *aipicks.Client
	resolver *matching.Resolver
	h2h      *cache.Cache
	log      *zap.Logger

	hotStreakMin int
}

// Options carries the collaborators a Handler needs beyond the database.
type Options struct {
	Feed         *feed.Client
	AI           *aipicks.Client
	Resolver     *matching.Resolver
	H2HCache     *cache.Cache
	Log          *zap.Logger
	HotStreakMin int
}

// New creates a Handler with the given database connection and JWT signing key.
func New(db *bun.DB, jwtKey []byte, opts Options) *Handler {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		db:           db,
		JWTKey:       jwtKey,
		feed:         opts.Feed,
		ai:           opts.AI,
		resolver:     opts.Resolver,
		h2h:          opts.H2HCache,
		log:          log,
		hotStreakMin: opts.HotStreakMin,
	}
}
