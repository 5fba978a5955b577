package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/wordvane/wordvane/pkg/game"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 34
)

var (
	recentPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				Padding(0, 1)
	columnStyle = lipgloss.NewStyle().MarginRight(2)

	hotStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"})
	tepidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#ea9d34", Dark: "#f6c177"})
	coldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#56949f", Dark: "#9ccfd8"})
)

// Scoreboard turns the guess history into the game display: the most
// recent guess in a bordered panel, the rest sorted by descending score in
// height-limited columns.
type Scoreboard struct {
	topRanks int
	tepid    float64
}

// NewScoreboard sizes the closeness scale: ranks below topRanks show as a
// countdown fraction, everything else as tepid or cold around the
// threshold.
func NewScoreboard(topRanks int, tepid float64) *Scoreboard {
	return &Scoreboard{topRanks: topRanks, tepid: tepid}
}

// closeness renders the rank cell: "987/1000" inside the top ranks, a
// temperature otherwise.
func (sb *Scoreboard) closeness(g game.Guess) string {
	if g.Rank < sb.topRanks {
		return fmt.Sprintf("%d/%d", sb.topRanks-g.Rank, sb.topRanks)
	}
	if g.Score >= sb.tepid {
		return "(tepid)"
	}
	return "(cold)"
}

func (sb *Scoreboard) heatStyle(g game.Guess) lipgloss.Style {
	if g.Rank < sb.topRanks {
		return hotStyle
	}
	if g.Score >= sb.tepid {
		return tepidStyle
	}
	return coldStyle
}

// Render draws the scoreboard for one turn. history is every recorded
// guess; recent is highlighted separately and not repeated in the columns.
// width and height bound the layout, with height the row budget per
// column.
func (sb *Scoreboard) Render(history []game.Guess, recent game.Guess, width, height int) string {
	rest := make([]game.Guess, 0, len(history))
	for _, g := range history {
		if g.Number != recent.Number {
			rest = append(rest, g)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].Score > rest[j].Score })

	numW, wordW, scoreW, closeW := sb.columnWidths(history)

	panel := recentPanelStyle.Render(sb.row(recent, numW, wordW, scoreW, closeW))
	if len(rest) == 0 {
		return panel
	}

	if height < 1 {
		height = 1
	}
	var columns []string
	for start := 0; start < len(rest); start += height {
		end := start + height
		if end > len(rest) {
			end = len(rest)
		}
		lines := make([]string, 0, end-start)
		for _, g := range rest[start:end] {
			lines = append(lines, sb.row(g, numW, wordW, scoreW, closeW))
		}
		columns = append(columns, columnStyle.Render(strings.Join(lines, "\n")))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	return panel + "\n" + lipgloss.NewStyle().MaxWidth(width).Render(board)
}

// row lays out one aligned entry; only the closeness cell is colored, so
// the padding math never has to see escape sequences.
func (sb *Scoreboard) row(g game.Guess, numW, wordW, scoreW, closeW int) string {
	closeCell := sb.closeness(g)
	padding := strings.Repeat(" ", closeW-len(closeCell))
	return fmt.Sprintf("%*d %-*s %*v %s%s",
		numW, g.Number, wordW, g.Word, scoreW, formatScore(g.Score),
		sb.heatStyle(g).Render(closeCell), padding)
}

func (sb *Scoreboard) columnWidths(history []game.Guess) (numW, wordW, scoreW, closeW int) {
	for _, g := range history {
		numW = maxInt(numW, len(fmt.Sprintf("%d", g.Number)))
		wordW = maxInt(wordW, lipgloss.Width(g.Word))
		scoreW = maxInt(scoreW, len(formatScore(g.Score)))
		closeW = maxInt(closeW, len(sb.closeness(g)))
	}
	return numW, wordW, scoreW, closeW
}

// formatScore prints a score the way the similarity scale reads: whole
// numbers bare, fractions with their two decimals.
func formatScore(score float64) string {
	return fmt.Sprintf("%v", score)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// screenSize reports the usable scoreboard area: terminal height minus
// room for the panel, the prompt and a status line, with a fixed fallback
// when no terminal is attached.
func screenSize() (width, height int) {
	w, h, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 || h <= 6 {
		return fallbackWidth, fallbackHeight
	}
	return w, h - 6
}
