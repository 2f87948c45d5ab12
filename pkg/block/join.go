package block

// align says where the smaller operand of a join is placed along the cross
// axis, expressed as how the padding is split before and after it.
type align int

const (
	alignStart       align = iota // flush with the top or left edge
	alignEnd                      // flush with the bottom or right edge
	alignCenterStart              // centred, odd remainder after the content
	alignCenterEnd                // centred, odd remainder before the content
)

// split divides diff padding cells into the amounts placed before and after
// the content.
func (a align) split(diff int) (before, after int) {
	switch a {
	case alignEnd:
		return diff, 0
	case alignCenterStart:
		before = diff / 2
		return before, diff - before
	case alignCenterEnd:
		after = diff / 2
		return diff - after, after
	}
	return 0, diff
}

// BesideTop places other to the right of b. If the heights differ the
// shorter block is padded with fill at its bottom, so the tops line up.
// The result is b.Width()+other.Width() wide and as high as the taller block.
func (b Block) BesideTop(other Block, fill rune) Block {
	return b.beside(other, alignStart, fill)
}

// BesideBottom places other to the right of b, padding the shorter block at
// its top so the bottoms line up.
func (b Block) BesideBottom(other Block, fill rune) Block {
	return b.beside(other, alignEnd, fill)
}

// BesideCenterTop places other to the right of b with the shorter block
// centred vertically. When the difference in height is odd the extra row of
// fill goes below, leaving the content one row nearer the top.
func (b Block) BesideCenterTop(other Block, fill rune) Block {
	return b.beside(other, alignCenterStart, fill)
}

// BesideCenterBottom is like BesideCenterTop but puts an odd extra row above.
func (b Block) BesideCenterBottom(other Block, fill rune) Block {
	return b.beside(other, alignCenterEnd, fill)
}

// StackLeft places other below b. If the widths differ the narrower block is
// padded with fill on its right, so the left edges line up. The result is
// b.Height()+other.Height() high and as wide as the wider block.
func (b Block) StackLeft(other Block, fill rune) Block {
	return b.stack(other, alignStart, fill)
}

// StackRight places other below b, padding the narrower block on its left so
// the right edges line up.
func (b Block) StackRight(other Block, fill rune) Block {
	return b.stack(other, alignEnd, fill)
}

// StackCenterLeft places other below b with the narrower block centred
// horizontally. When the difference in width is odd the extra column goes to
// the right.
func (b Block) StackCenterLeft(other Block, fill rune) Block {
	return b.stack(other, alignCenterStart, fill)
}

// StackCenterRight is like StackCenterLeft but puts an odd extra column on
// the left.
func (b Block) StackCenterRight(other Block, fill rune) Block {
	return b.stack(other, alignCenterEnd, fill)
}

func (b Block) beside(other Block, a align, fill rune) Block {
	h := max(b.Height(), other.Height())
	left := b.alignRows(h, a, fill)
	right := other.alignRows(h, a, fill)

	rows := make([][]string, h)
	tails := make([]string, h)
	for i := range rows {
		rows[i], tails[i] = joinRow(left.rows[i], left.tail(i), right.rows[i], right.tail(i))
	}
	return Block{width: b.width + other.width, rows: rows, fill: b.fill}.withTails(tails)
}

func (b Block) stack(other Block, a align, fill rune) Block {
	w := max(b.width, other.width)
	top := b.alignColumns(w, a, fill)
	bottom := other.alignColumns(w, a, fill)

	rows := make([][]string, 0, len(top.rows)+len(bottom.rows))
	rows = append(rows, top.rows...)
	rows = append(rows, bottom.rows...)
	out := Block{width: w, rows: rows, fill: b.fill}
	if top.tails == nil && bottom.tails == nil {
		return out
	}
	tails := make([]string, len(rows))
	for y := range rows {
		if y < len(top.rows) {
			tails[y] = top.tail(y)
		} else {
			tails[y] = bottom.tail(y - len(top.rows))
		}
	}
	return out.withTails(tails)
}

// alignRows pads b vertically to h rows.
func (b Block) alignRows(h int, a align, fill rune) Block {
	before, after := a.split(h - b.Height())
	return b.padTop(before, fill).padBottom(after, fill)
}

// alignColumns pads b horizontally to w columns.
func (b Block) alignColumns(w int, a align, fill rune) Block {
	before, after := a.split(w - b.width)
	return b.padLeft(before, fill).padRight(after, fill)
}
