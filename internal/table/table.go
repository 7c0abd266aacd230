// Package table renders simple ASCII tables with per-column alignment.
// Cell content may contain ANSI color codes; widths are computed on the
// visible text.
package table

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Alignment controls how cell content is positioned within a column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Table accumulates rows and renders them to a writer.
type Table struct {
	writer          io.Writer
	header          []string
	rows            [][]string
	columnAlignment []Alignment
	headerAlignment []Alignment
}

// NewTable creates a new table that renders to the given writer.
func NewTable(writer io.Writer) *Table {
	return &Table{writer: writer}
}

// WithHeader sets the header row.
func (t *Table) WithHeader(header []string) *Table {
	t.header = header
	return t
}

// WithColumnAlignment sets the per-column alignment for body rows.
func (t *Table) WithColumnAlignment(alignment []Alignment) *Table {
	t.columnAlignment = alignment
	return t
}

// WithHeaderAlignment sets the per-column alignment for the header row.
func (t *Table) WithHeaderAlignment(alignment []Alignment) *Table {
	t.headerAlignment = alignment
	return t
}

// WithRows replaces the table's body rows.
func (t *Table) WithRows(rows [][]string) *Table {
	t.rows = rows
	return t
}

// Append adds one body row.
func (t *Table) Append(row []string) *Table {
	t.rows = append(t.rows, row)
	return t
}

// Render writes the table to the writer.
func (t *Table) Render() {
	widths := t.columnWidths()
	if len(widths) == 0 {
		return
	}
	separator := buildSeparator(widths)

	fmt.Fprintln(t.writer, separator)
	if len(t.header) > 0 {
		fmt.Fprintln(t.writer, t.formatRow(t.header, widths, t.headerAlignment))
		fmt.Fprintln(t.writer, separator)
	}
	for _, row := range t.rows {
		fmt.Fprintln(t.writer, t.formatRow(row, widths, t.columnAlignment))
	}
	fmt.Fprintln(t.writer, separator)
}

func (t *Table) columnWidths() []int {
	var count int
	if len(t.header) > count {
		count = len(t.header)
	}
	for _, row := range t.rows {
		if len(row) > count {
			count = len(row)
		}
	}
	widths := make([]int, count)
	for i, cell := range t.header {
		if w := displayWidth(cell); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (t *Table) formatRow(row []string, widths []int, alignment []Alignment) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, width := range widths {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		align := AlignLeft
		if i < len(alignment) {
			align = alignment[i]
		}
		sb.WriteString(" ")
		sb.WriteString(pad(cell, width, align))
		sb.WriteString(" |")
	}
	return sb.String()
}

func pad(cell string, width int, align Alignment) string {
	gap := width - displayWidth(cell)
	if gap <= 0 {
		return cell
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + cell
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	default:
		return cell + strings.Repeat(" ", gap)
	}
}

func buildSeparator(widths []int) string {
	var sb strings.Builder
	sb.WriteString("+")
	for _, width := range widths {
		sb.WriteString(strings.Repeat("-", width+2))
		sb.WriteString("+")
	}
	return sb.String()
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripAnsi removes ANSI escape sequences from a string.
func stripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// displayWidth returns the visible width of a string, ignoring ANSI codes.
func displayWidth(s string) int {
	return len([]rune(stripAnsi(s)))
}
