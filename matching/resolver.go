package matching

import (
	"errors"
	"sort"

	"github.com/padraicbc/picktrack/cache"
)

// ErrUnresolved is returned when no canonical identity matches a
// free-text name. Callers degrade gracefully: no stats link, no
// hot-team badge, never a guess.
var ErrUnresolved = errors.New("matching: no canonical identity found")

// Identity is a resolved canonical team or player.
type Identity struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Code string `json:"code,omitempty"`
	Tour string `json:"tour"`
}

// Resolver matches free-text names against registered canonical pools.
// Resolution results are memoized in the injected cache so repeated
// lookups within the TTL cost one cascade run.
type Resolver struct {
	table   *Table
	players map[string][]Identity
	teams   map[string][]Identity
	cache   *cache.Cache
}

// NewResolver builds a resolver over the given alias table. The cache
// may be nil, in which case every lookup runs the cascade.
func NewResolver(table *Table, c *cache.Cache) *Resolver {
	return &Resolver{
		table:   table,
		players: make(map[string][]Identity),
		teams:   make(map[string][]Identity),
		cache:   c,
	}
}

// RegisterPlayers adds canonical players to a tour's pool.
func (r *Resolver) RegisterPlayers(tour string, names ...string) {
	for _, n := range names {
		r.players[tour] = append(r.players[tour], Identity{
			Name: n,
			Key:  Normalize(n),
			Tour: tour,
		})
	}
}

// RegisterTeam adds a canonical team to a league's pool.
func (r *Resolver) RegisterTeam(league, name, code string) {
	r.teams[league] = append(r.teams[league], Identity{
		Name: name,
		Key:  Normalize(name),
		Code: code,
		Tour: league,
	})
}

// ResolvePlayer finds the canonical player for a free-text name.
// preferredTour only orders which pool is scanned first; it is not part
// of the matching itself.
func (r *Resolver) ResolvePlayer(name, preferredTour string) (Identity, error) {
	return r.resolve("player", name, preferredTour, r.players, r.table.PlayersMatch)
}

// ResolveTeam finds the canonical team for a free-text name.
func (r *Resolver) ResolveTeam(name, preferredLeague string) (Identity, error) {
	return r.resolve("team", name, preferredLeague, r.teams, r.table.TeamsMatch)
}

func (r *Resolver) resolve(kind, name, preferred string, pools map[string][]Identity, match func(a, b string) bool) (Identity, error) {
	key := kind + ":" + Normalize(name)
	if r.cache != nil {
		if v, ok := r.cache.Get(key); ok {
			if id, ok := v.(Identity); ok {
				return id, nil
			}
			return Identity{}, ErrUnresolved
		}
	}

	for _, tour := range orderedTours(pools, preferred) {
		for _, id := range pools[tour] {
			if match(name, id.Name) {
				if r.cache != nil {
					r.cache.Set(key, id)
				}
				return id, nil
			}
		}
	}

	// Negative results are cached too; unresolved names repeat often.
	if r.cache != nil {
		r.cache.Set(key, nil)
	}
	return Identity{}, ErrUnresolved
}

// orderedTours lists pool keys with the preferred tour first and the
// rest sorted, so a name present in two pools always resolves the same
// way across runs.
func orderedTours(pools map[string][]Identity, preferred string) []string {
	out := make([]string, 0, len(pools))
	if _, ok := pools[preferred]; ok {
		out = append(out, preferred)
	}

	rest := make([]string, 0, len(pools))
	for tour := range pools {
		if tour != preferred {
			rest = append(rest, tour)
		}
	}
	sort.Strings(rest)

	return append(out, rest...)
}
