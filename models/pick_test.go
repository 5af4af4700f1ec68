package models

import "testing"

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to won", StatusPending, StatusWon, true},
		{"pending to lost", StatusPending, StatusLost, true},
		{"pending to void", StatusPending, StatusVoid, true},
		{"pending to pending", StatusPending, StatusPending, false},
		{"won is final", StatusWon, StatusLost, false},
		{"lost is final", StatusLost, StatusWon, false},
		{"void is final", StatusVoid, StatusPending, false},
		{"unknown target", StatusPending, "cancelled", false},
		{"unknown source", "open", StatusWon, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidStatusTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("ValidStatusTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
