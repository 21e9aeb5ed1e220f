package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// colorEnabled is on only when stdout is a terminal, unless overridden.
var colorEnabled = IsTerminal(os.Stdout)

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func paint(color, s string) string {
	if !colorEnabled {
		return s
	}
	return color + s + colorReset
}

// Green returns s in green when colors are enabled.
func Green(s string) string { return paint(colorGreen, s) }

// Red returns s in red when colors are enabled.
func Red(s string) string { return paint(colorRed, s) }

// Yellow returns s in yellow when colors are enabled.
func Yellow(s string) string { return paint(colorYellow, s) }

// Gray returns s in gray when colors are enabled.
func Gray(s string) string { return paint(colorGray, s) }

// Heart marks a favorite.
func Heart(favorite bool) string {
	if favorite {
		return Red("♥")
	}
	return Gray("♡")
}

// DefaultMaxURLWidth is the default maximum visible width for URL columns.
const DefaultMaxURLWidth = 100

// Table formats columnar output with automatic column width calculation.
type Table struct {
	rows      [][]string
	colWidths []int
	maxWidths map[int]int
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{maxWidths: make(map[int]int)}
}

// SetMaxWidth caps the visible width of a column. Longer cells are
// truncated with "...".
func (t *Table) SetMaxWidth(col, maxWidth int) {
	t.maxWidths[col] = maxWidth
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}
	for i, col := range cols {
		w := visibleWidth(col)
		if maxW, ok := t.maxWidths[i]; ok && w > maxW {
			w = maxW
		}
		if w > t.colWidths[i] {
			t.colWidths[i] = w
		}
	}
	t.rows = append(t.rows, cols)
}

// Render writes the table to w with columns separated by two spaces.
// The last column is not padded.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		parts := make([]string, len(row))
		for i, col := range row {
			if maxW, ok := t.maxWidths[i]; ok {
				col = Truncate(col, maxW)
			}
			if i < len(row)-1 {
				col += strings.Repeat(" ", max(t.colWidths[i]-visibleWidth(col), 0))
			}
			parts[i] = col
		}
		fmt.Fprintln(w, strings.Join(parts, "  "))
	}
}

// Truncate shortens s to maxWidth visible runes, ending in "..." when cut.
// ANSI codes before the cut are kept and a reset is appended after them.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}
	const ellipsis = "..."
	limit, tail := maxWidth, ""
	if maxWidth > len(ellipsis) {
		limit, tail = maxWidth-len(ellipsis), ellipsis
	}

	var b strings.Builder
	visible := 0
	inEscape, colored := false, false
	for _, r := range s {
		if r == '\033' {
			inEscape, colored = true, true
		}
		if inEscape {
			b.WriteRune(r)
			inEscape = r != 'm'
			continue
		}
		if visible >= limit {
			break
		}
		b.WriteRune(r)
		visible++
	}
	b.WriteString(tail)
	if colored {
		b.WriteString(colorReset)
	}
	return b.String()
}

// visibleWidth returns the rune count of s, excluding ANSI escape codes.
func visibleWidth(s string) int {
	if !strings.Contains(s, "\033") {
		return utf8.RuneCountInString(s)
	}
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			width++
		}
	}
	return width
}
