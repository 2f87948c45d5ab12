package block

import (
	"fmt"
	"strings"

	"github.com/matzehuels/textblock/pkg/errors"
)

// OfText creates a block from text. The text is split into rows at line
// breaks ("\r\n" counts as one); the block is as wide as the widest row and
// shorter rows are padded on the right with spaces. The empty string gives
// a single empty row.
func OfText(text string) Block {
	lines := splitLines(text)
	rows := make([][]string, len(lines))
	rests := make([]string, len(lines))
	w := 0
	for i, line := range lines {
		rows[i], rests[i] = cellsOf(line)
		w = max(w, len(rows[i]))
	}
	for i, row := range rows {
		rows[i] = settle(padRow(row, w, defaultFill), rests[i], false)
	}
	b := Block{width: w, rows: rows, fill: defaultFill}
	if w == 0 {
		b = b.withTails(rests)
	}
	return b
}

// Of creates a block from any value. A Block is returned unchanged; any
// other value is formatted with fmt.Sprint and passed to OfText.
//
// Note that a rune is an integer to fmt and renders as a number; use
// OfText(string(r)) for single characters.
func Of(v any) Block {
	switch v := v.(type) {
	case Block:
		return v
	case string:
		return OfText(v)
	}
	return OfText(fmt.Sprint(v))
}

// Empty creates a block of the given size where every cell is fill.
// It fails with ErrInvalidDimension if width or height is negative.
func Empty(width, height int, fill rune) (Block, error) {
	if err := errors.ValidateDimension("width", width); err != nil {
		return Block{}, err
	}
	if err := errors.ValidateDimension("height", height); err != nil {
		return Block{}, err
	}
	row := fillRow(width, fill)
	rows := make([][]string, height)
	for i := range rows {
		rows[i] = row
	}
	return Block{width: width, rows: rows, fill: fill}, nil
}

// OfWidth creates a block of the given width and no rows. Stacking onto it
// widens the other operand to at least that width.
func OfWidth(width int) (Block, error) {
	return Empty(width, 0, defaultFill)
}

// OfHeight creates a block of the given height and no columns. Joining
// beside it heightens the other operand to at least that height.
func OfHeight(height int) (Block, error) {
	return Empty(0, height, defaultFill)
}

// Must returns b or panics if err is non-nil. It is intended for layouts
// built from constant sizes:
//
//	rule := block.Must(block.Empty(40, 1, '─'))
func Must(b Block, err error) Block {
	if err != nil {
		panic(err)
	}
	return b
}

// AddText appends one line of text at the bottom of the block.
// See AddMultipleTexts.
func (b Block) AddText(line string) Block {
	return b.AddMultipleTexts(line)
}

// AddMultipleTexts appends lines as new rows at the bottom of the block.
// A string containing line breaks contributes one row per line. New rows are
// padded on the right with the block's fill; if a new line is wider than
// the block, the block grows and every existing row is padded on the right
// with the fill as well.
func (b Block) AddMultipleTexts(lines ...string) Block {
	var added [][]string
	var rests []string
	w := b.width
	for _, text := range lines {
		for _, line := range splitLines(text) {
			row, rest := cellsOf(line)
			added = append(added, row)
			rests = append(rests, rest)
			w = max(w, len(row))
		}
	}
	if len(added) == 0 {
		return b
	}

	fill := b.Fill()
	rows := make([][]string, 0, len(b.rows)+len(added))
	tails := make([]string, 0, len(b.rows)+len(added))
	rows = append(rows, b.rows...)
	rows = append(rows, added...)
	for y := range b.rows {
		tails = append(tails, b.tail(y))
	}
	tails = append(tails, rests...)

	out := Block{width: w, rows: rows, fill: b.fill}
	if w == 0 {
		return out.withTails(tails)
	}
	for y, row := range rows {
		rows[y] = settle(padRow(row, w, fill), tails[y], false)
	}
	return out
}

// splitLines splits text at "\n", dropping a "\r" that ends a line.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// padRow right-pads row to w columns, returning row itself when it is
// already wide enough.
func padRow(row []string, w int, fill rune) []string {
	if len(row) >= w {
		return row
	}
	return concat(row, fillRow(w-len(row), fill))
}
