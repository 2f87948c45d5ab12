package block

import (
	"github.com/matzehuels/textblock/pkg/errors"
	"github.com/matzehuels/textblock/pkg/width"
)

// ErrInvalidDimension is the error code reported when a width, height or
// padding amount is negative. Test for it with errors.Is from pkg/errors.
const ErrInvalidDimension = errors.ErrCodeInvalidDimension

// defaultFill is used by construction from text and by the zero Block.
const defaultFill = ' '

// Block is an immutable rectangle of text.
//
// Each row holds exactly width slots, one per display column. A slot holds
// the grapheme cluster starting in that column; the remaining columns of a
// wide cluster hold the empty string.
//
// A block without columns can still carry zero-width text on its rows; it
// is kept in tails and moves into the first slot once the block gains
// columns.
//
// The zero value is the empty 0x0 block with a space as its fill.
type Block struct {
	width int
	rows  [][]string
	fill  rune
	tails []string // nil, or one entry per row while width is 0
}

// Width returns the width of the block in display columns.
func (b Block) Width() int { return b.width }

// Height returns the number of rows.
func (b Block) Height() int { return len(b.rows) }

// Fill returns the block's default fill character.
func (b Block) Fill() rune {
	if b.fill == 0 {
		return defaultFill
	}
	return b.fill
}

// WithFill returns a block with the same content and a different default fill.
func (b Block) WithFill(fill rune) Block {
	b.fill = fill
	return b
}

// Equal reports whether two blocks have the same dimensions and content.
// The default fill is not compared.
func (b Block) Equal(other Block) bool {
	if b.width != other.width || len(b.rows) != len(other.rows) {
		return false
	}
	for y, row := range b.rows {
		o := other.rows[y]
		for x := range row {
			if row[x] != o[x] {
				return false
			}
		}
		if b.tail(y) != other.tail(y) {
			return false
		}
	}
	return true
}

// tail returns the zero-width text carried by row y.
func (b Block) tail(y int) string {
	if b.tails == nil {
		return ""
	}
	return b.tails[y]
}

// withTails returns b with tails set, dropping them when none holds text.
func (b Block) withTails(tails []string) Block {
	b.tails = nil
	for _, t := range tails {
		if t != "" {
			b.tails = tails
			break
		}
	}
	return b
}

// cellsOf lays a single line of text out into column slots.
// Zero-width clusters attach to the preceding cluster; at the start of a line
// they attach to the following one. A line of only zero-width text has no
// slots and its text is returned as rest.
func cellsOf(line string) (cells []string, rest string) {
	clusters := width.Clusters(line)
	cells = make([]string, 0, len(clusters))
	head := -1
	pending := ""
	for _, c := range clusters {
		if c.Width == 0 {
			if head >= 0 {
				cells[head] += c.Text
			} else {
				pending += c.Text
			}
			continue
		}
		head = len(cells)
		cells = append(cells, pending+c.Text)
		pending = ""
		for i := 1; i < c.Width; i++ {
			cells = append(cells, "")
		}
	}
	return cells, pending
}

// settle places rest in row, which must be at least one column wide: at the
// front of its first cluster, or at the end of its last when atEnd is set.
// The row is copied when it changes.
func settle(row []string, rest string, atEnd bool) []string {
	if rest == "" || len(row) == 0 {
		return row
	}
	out := append([]string(nil), row...)
	if !atEnd {
		out[0] = rest + out[0]
		return out
	}
	x := len(out) - 1
	for x > 0 && out[x] == "" {
		x--
	}
	out[x] += rest
	return out
}

// joinRow joins two rows side by side together with the zero-width text
// each carries, returning the new row and what is left over as its tail.
func joinRow(a []string, aTail string, b []string, bTail string) ([]string, string) {
	switch {
	case len(a) == 0 && len(b) == 0:
		return nil, aTail + bTail
	case len(a) == 0:
		return settle(b, aTail, false), ""
	case len(b) == 0:
		return settle(a, bTail, true), ""
	}
	return concat(a, b), ""
}

// fillRow returns n columns of fill. A wide fill is laid out cluster by
// cluster and any column left over becomes a space; a fill without display
// width is replaced by a space.
func fillRow(n int, fill rune) []string {
	row := make([]string, n)
	s, w := string(fill), width.Rune(fill)
	if w <= 0 {
		s, w = " ", 1
	}
	i := 0
	for ; i+w <= n; i += w {
		row[i] = s
	}
	for ; i < n; i++ {
		row[i] = " "
	}
	return row
}

// narrowFill returns a one-column stand-in for fill.
func narrowFill(fill rune) string {
	if width.Rune(fill) == 1 {
		return string(fill)
	}
	return " "
}

// concat joins two rows into a new one, reusing either side when the other
// is empty.
func concat(a, b []string) []string {
	switch {
	case len(b) == 0:
		return a
	case len(a) == 0:
		return b
	}
	row := make([]string, 0, len(a)+len(b))
	row = append(row, a...)
	return append(row, b...)
}
