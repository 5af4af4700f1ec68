// cmd/seed/main.go
// Seeds canonical teams and players into the database from a JSON roster file.
//
// Usage:
//
//	go run ./cmd/seed -file rosters.json
//
// File shape:
//
//	{
//	  "teams":   [{"name": "Minnesota Wild", "code": "MIN", "league": "nhl"}],
//	  "players": [{"name": "Jannik Sinner", "tour": "atp"}]
//	}
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/padraicbc/picktrack/config"
	bundb "github.com/padraicbc/picktrack/db"
	"github.com/padraicbc/picktrack/matching"
	"github.com/padraicbc/picktrack/models"
)

type rosterFile struct {
	Teams []struct {
		Name   string `json:"name"`
		Code   string `json:"code"`
		League string `json:"league"`
	} `json:"teams"`
	Players []struct {
		Name string `json:"name"`
		Tour string `json:"tour"`
	} `json:"players"`
}

func main() {
	file := flag.String("file", "", "roster JSON file (required)")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("read roster:", err)
	}

	var rosters rosterFile
	if err := json.Unmarshal(raw, &rosters); err != nil {
		log.Fatal("decode roster:", err)
	}

	ctx := context.Background()
	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables:", err)
	}

	teams := make([]models.Team, 0, len(rosters.Teams))
	for _, t := range rosters.Teams {
		teams = append(teams, models.Team{Name: t.Name, Code: t.Code, League: t.League})
	}
	if len(teams) > 0 {
		if _, err := db.NewInsert().Model(&teams).
			On("CONFLICT (name) DO UPDATE SET code = EXCLUDED.code, league = EXCLUDED.league").
			Exec(ctx); err != nil {
			log.Fatal("insert teams:", err)
		}
	}

	players := make([]models.Player, 0, len(rosters.Players))
	for _, p := range rosters.Players {
		players = append(players, models.Player{
			Name:         p.Name,
			CanonicalKey: matching.Normalize(p.Name),
			Tour:         p.Tour,
		})
	}
	if len(players) > 0 {
		if _, err := db.NewInsert().Model(&players).
			On("CONFLICT (canonical_key) DO UPDATE SET name = EXCLUDED.name, tour = EXCLUDED.tour").
			Exec(ctx); err != nil {
			log.Fatal("insert players:", err)
		}
	}

	fmt.Printf("seeded %d teams, %d players\n", len(teams), len(players))
}
