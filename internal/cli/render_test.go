package cli

import (
	"strings"
	"testing"

	"github.com/wordvane/wordvane/pkg/game"
)

func TestScoreboardCloseness(t *testing.T) {
	sb := NewScoreboard(1000, 20)

	tests := []struct {
		name  string
		guess game.Guess
		want  string
	}{
		// counted down from the table edge
		{"best rank", game.Guess{Rank: 0, Score: 99}, "1000/1000"},
		{"mid table", game.Guess{Rank: 500, Score: 40}, "500/1000"},
		{"last counted rank", game.Guess{Rank: 999, Score: 25}, "1/1000"},

		// outside the table the score decides the temperature
		{"tepid at threshold", game.Guess{Rank: 1000, Score: 20}, "(tepid)"},
		{"cold below threshold", game.Guess{Rank: 1000, Score: 19.99}, "(cold)"},
		{"cold negative", game.Guess{Rank: 70000, Score: -30}, "(cold)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sb.closeness(tt.guess); got != tt.want {
				t.Errorf("closeness(%+v) = %q, want %q", tt.guess, got, tt.want)
			}
		})
	}
}

func TestScoreboardRender(t *testing.T) {
	sb := NewScoreboard(1000, 20)
	history := []game.Guess{
		{Number: 1, Word: "ocean", Score: 12.5, Rank: 4321},
		{Number: 2, Word: "breeze", Score: 55.25, Rank: 812},
		{Number: 3, Word: "coast", Score: 81, Rank: 37},
	}

	out := sb.Render(history, history[2], 80, 10)

	for _, want := range []string{"ocean", "breeze", "coast", "963/1000", "188/1000", "(cold)"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered board missing %q:\n%s", want, out)
		}
	}

	// the recent guess lives in the panel only, never in the columns
	if n := strings.Count(out, "coast"); n != 1 {
		t.Errorf("recent word rendered %d times, want 1:\n%s", n, out)
	}

	// remaining history sorts by descending score
	if strings.Index(out, "breeze") > strings.Index(out, "ocean") {
		t.Errorf("columns not sorted by score:\n%s", out)
	}
}

func TestScoreboardRenderFirstGuess(t *testing.T) {
	sb := NewScoreboard(1000, 20)
	only := game.Guess{Number: 1, Word: "ocean", Score: 12.5, Rank: 4321}

	out := sb.Render([]game.Guess{only}, only, 80, 10)
	if !strings.Contains(out, "ocean") {
		t.Errorf("rendered board missing the only guess:\n%s", out)
	}
	if strings.Contains(out, "\n\n") {
		t.Errorf("unexpected column block under a lone panel:\n%s", out)
	}
}

func TestScoreboardRenderSplitsColumns(t *testing.T) {
	sb := NewScoreboard(1000, 20)
	history := []game.Guess{
		{Number: 1, Word: "alpha", Score: 10, Rank: 9000},
		{Number: 2, Word: "bravo", Score: 20, Rank: 8000},
		{Number: 3, Word: "charlie", Score: 30, Rank: 7000},
		{Number: 4, Word: "delta", Score: 40, Rank: 6000},
		{Number: 5, Word: "echo", Score: 50, Rank: 5000},
	}

	out := sb.Render(history, history[4], 200, 2)

	// four rows at two per column means the top two scores share a line
	lines := strings.Split(out, "\n")
	var joined string
	for _, line := range lines {
		if strings.Contains(line, "delta") {
			joined = line
		}
	}
	if joined == "" || !strings.Contains(joined, "bravo") {
		t.Errorf("expected delta and bravo on one joined line:\n%s", out)
	}
}
