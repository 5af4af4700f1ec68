package matching

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

//go:embed data/aliases.json
var embeddedAliases []byte

// aliasFile is the on-disk shape of the alias resource: canonical
// normalized key → known alias spellings. Extending coverage means
// editing the JSON, not the code.
type aliasFile struct {
	Teams   map[string][]string `json:"teams"`
	Players map[string][]string `json:"players"`
}

// Table maps normalized surface forms to canonical keys for teams and
// players. Two surface forms that share a canonical key denote the same
// entity, which makes alias matching bidirectional and transitive.
type Table struct {
	teams   map[string]string
	players map[string]string
}

var (
	defaultTableOnce sync.Once
	defaultTable     *Table
)

// DefaultTable returns the table decoded from the embedded alias resource.
func DefaultTable() *Table {
	defaultTableOnce.Do(func() {
		t, err := parseTable(embeddedAliases)
		if err != nil {
			// The embedded resource is validated by tests; a decode
			// failure here is a build defect.
			panic(fmt.Sprintf("matching: embedded alias table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// LoadTable reads an alias table from an external JSON file, for
// deployments that extend coverage beyond the embedded resource.
func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading alias table: %w", err)
	}
	return parseTable(raw)
}

func parseTable(raw []byte) (*Table, error) {
	var f aliasFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding alias table: %w", err)
	}

	return &Table{
		teams:   buildIndex(f.Teams),
		players: buildIndex(f.Players),
	}, nil
}

// buildIndex maps every normalized surface form, canonical keys
// included, to its canonical key.
func buildIndex(entries map[string][]string) map[string]string {
	idx := make(map[string]string)
	for key, aliases := range entries {
		canon := Normalize(key)
		idx[canon] = canon
		for _, alias := range aliases {
			idx[Normalize(alias)] = canon
		}
	}
	return idx
}

// teamAlias reports whether two normalized names share a canonical team key.
func (t *Table) teamAlias(a, b string) bool {
	return sameCanonical(t.teams, a, b)
}

// playerAlias reports whether two normalized names share a canonical player key.
func (t *Table) playerAlias(a, b string) bool {
	return sameCanonical(t.players, a, b)
}

func sameCanonical(idx map[string]string, a, b string) bool {
	ca, ok := idx[a]
	if !ok {
		return false
	}
	cb, ok := idx[b]
	return ok && ca == cb
}
