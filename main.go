package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/picktrack/aipicks"
	"github.com/padraicbc/picktrack/cache"
	"github.com/padraicbc/picktrack/config"
	"github.com/padraicbc/picktrack/db"
	"github.com/padraicbc/picktrack/feed"
	"github.com/padraicbc/picktrack/handlers"
	applog "github.com/padraicbc/picktrack/logger"
	"github.com/padraicbc/picktrack/matching"
	"github.com/padraicbc/picktrack/middleware"
	"github.com/padraicbc/picktrack/models"
	"github.com/padraicbc/picktrack/scheduler"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	feedClient := feed.NewClient(cfg.OddsAPIURL, cfg.OddsAPIKey, logger)
	aiClient := aipicks.NewClient(cfg.AIAPIURL, cfg.AIAPIKey, logger)

	h2hCache := cache.New(cfg.H2HCacheTTL)
	resolverCache := cache.New(cfg.H2HCacheTTL)

	resolver := matching.NewResolver(matching.DefaultTable(), resolverCache)
	if err := loadPools(context.Background(), bdb, resolver); err != nil {
		logger.Fatal("loading canonical pools", zap.Error(err))
	}

	h := handlers.New(bdb, cfg.JWTKey(), handlers.Options{
		Feed:         feedClient,
		AI:           aiClient,
		Resolver:     resolver,
		H2HCache:     h2hCache,
		Log:          logger,
		HotStreakMin: cfg.HotStreakMin,
	})

	cr, err := scheduler.Setup(scheduler.Deps{
		DB:       bdb,
		Feed:     feedClient,
		Resolver: resolver,
		Caches:   []*cache.Cache{h2hCache, resolverCache},
		Log:      logger,
		Sports:   []string{"nhl", "nba", "tennis"},
	})
	if err != nil {
		logger.Fatal("scheduler setup failed", zap.Error(err))
	}
	defer cr.Stop()

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	// Public
	e.POST("/pt/signin", h.Signin)

	// Protected routes require a valid JWT in the Authorization header.
	pt := e.Group("/pt", middleware.JWT(cfg.JWTKey()))
	pt.GET("/schedule", h.Schedule)
	pt.GET("/picks", h.ListPicks)
	pt.POST("/picks", h.CreatePick)
	pt.POST("/picks/generate", h.GeneratePicks)
	pt.POST("/picks/:id/status", h.UpdatePickStatus)
	pt.POST("/parlay/calculate", h.CalculateParlay)
	pt.POST("/parlay", h.CreateParlay)
	pt.GET("/parlays", h.ListParlays)
	pt.POST("/parlays/:id/status", h.UpdateParlayStatus)
	pt.GET("/insights/h2h", h.H2H)
	pt.GET("/bankroll", h.Bankroll)

	if cfg.Debug || len(cfg.TLSDomains) == 0 {
		logger.Info("starting server", zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}

// loadPools registers the seeded canonical teams and players with the
// resolver so free-text lookups have pools to scan.
func loadPools(ctx context.Context, bdb *bun.DB, resolver *matching.Resolver) error {
	var teams []models.Team
	if err := bdb.NewSelect().Model(&teams).Scan(ctx); err != nil {
		return err
	}
	for _, t := range teams {
		resolver.RegisterTeam(t.League, t.Name, t.Code)
	}

	var players []models.Player
	if err := bdb.NewSelect().Model(&players).Scan(ctx); err != nil {
		return err
	}
	for _, p := range players {
		resolver.RegisterPlayers(p.Tour, p.Name)
	}

	return nil
}
