package matching_test

import (
	"testing"

	"github.com/padraicbc/picktrack/matching"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase and trim", "  Jannik Sinner ", "jannik sinner"},
		{"diacritics stripped", "Đoković", "dokovic"},
		{"swedish", "Söderström", "soderstrom"},
		{"punctuation dropped", "O'Connell, Jr.", "oconnell jr"},
		{"digits dropped", "76ers", "ers"},
		{"whitespace collapsed", "New   York\tKnicks", "new york knicks"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matching.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlayerNamesMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"exact", "Jannik Sinner", "Jannik Sinner", true},
		{"case and spacing", "jannik  SINNER", "Jannik Sinner", true},
		{"reversed order", "Wang Xinyu", "Xinyu Wang", true},
		{"alias table", "Sascha Zverev", "Alexander Zverev", true},
		{"alias transitive", "A Zverev", "Sascha Zverev", true},
		{"diacritic alias", "Novak Đoković", "Djokovic", true},
		{"surname only", "Medvedev", "Daniil Medvedev", true},
		{"shared long surname", "D Medvedev", "Daniil Medvedev", true},
		{"different players", "Smith", "Jones", false},
		{"short surname guard", "John Lee", "Anna Lee", false},
		{"short single token guard", "Lee", "Lee Westwood", false},
		{"short multibyte surname guard", "王 小明", "李 小明", false},
		{"long multibyte surname", "Bjørndalen", "Ole Bjørndalen", true},
		{"unrelated", "Carlos Alcaraz", "Jannik Sinner", false},
		{"empty input", "", "Sinner", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matching.PlayerNamesMatch(tt.a, tt.b); got != tt.want {
				t.Errorf("PlayerNamesMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNamesMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"exact", "Minnesota Wild", "Minnesota Wild", true},
		{"alias nickname", "Wild", "Minnesota Wild", true},
		{"alias bidirectional", "Minnesota Wild", "Wild", true},
		{"alias transitive", "MIN Wild", "Wild", true},
		{"la lakers", "LA Lakers", "Los Angeles Lakers", true},
		// Code-vs-name matching lives in TeamCodeInText, not here.
		{"code does not match name", "Wild", "MIN", false},
		{"mixed order via token rule", "Rangers New York", "New York Rangers", true},
		{"different teams", "Rangers", "Knicks", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matching.NamesMatch(tt.a, tt.b); got != tt.want {
				t.Errorf("NamesMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTeamCodeInText(t *testing.T) {
	tests := []struct {
		name string
		code string
		text string
		want bool
	}{
		{"code as word", "MIN", "MIN vs COL tonight", true},
		{"code at end", "COL", "MIN vs COL", true},
		{"no substring hit", "MIN", "TERMINAL velocity", false},
		{"short code never matches", "LA", "ATLANTA at home", false},
		{"short code not even as word", "LA", "LA at home", false},
		{"lowercase text no hit", "MIN", "minutes played", false},
		{"four letters rejected", "MINN", "MINN vs COL", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matching.TeamCodeInText(tt.code, tt.text); got != tt.want {
				t.Errorf("TeamCodeInText(%q, %q) = %v, want %v", tt.code, tt.text, got, tt.want)
			}
		})
	}
}

func TestTeamNameInText(t *testing.T) {
	tests := []struct {
		name string
		team string
		text string
		want bool
	}{
		{"full name", "Minnesota Wild", "Minnesota Wild vs Colorado Avalanche", true},
		{"case insensitive", "minnesota wild", "MINNESOTA WILD @ COL", true},
		{"word boundary holds", "Wild", "Wilderness tour", false},
		{"single word name", "Wild", "the Wild travel to Denver", true},
		{"absent", "Minnesota Wild", "Dallas Stars vs Chicago Blackhawks", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matching.TeamNameInText(tt.team, tt.text); got != tt.want {
				t.Errorf("TeamNameInText(%q, %q) = %v, want %v", tt.team, tt.text, got, tt.want)
			}
		})
	}
}
