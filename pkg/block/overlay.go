package block

// InFrontOf composites b over background. The result is as wide and as high
// as the larger of the two; each block is first extended to that size on its
// right and bottom using its own fill. Wherever b shows the transparent
// character the background shows through, everywhere else b hides it.
//
// A wide character that would be cut in half by the composition (because one
// of its columns is hidden by the other layer) is replaced by its block's
// fill in the columns that remain visible.
//
// The result keeps b's default fill.
func (b Block) InFrontOf(background Block, transparent rune) Block {
	w := max(b.width, background.width)
	h := max(b.Height(), background.Height())
	fg := b.extend(w, h)
	bg := background.extend(w, h)

	c := compositor{
		transparent: string(transparent),
		fgFill:      narrowFill(b.Fill()),
		bgFill:      narrowFill(background.Fill()),
	}
	rows := make([][]string, h)
	tails := make([]string, h)
	for y := range rows {
		rows[y] = c.row(fg.rows[y], bg.rows[y])
		// Only a block without columns has tails; the foreground's text wins.
		if tails[y] = fg.tail(y); tails[y] == "" {
			tails[y] = bg.tail(y)
		}
	}
	return Block{width: w, rows: rows, fill: b.fill}.withTails(tails)
}

// extend pads b on the right and bottom with its own fill to w x h.
func (b Block) extend(w, h int) Block {
	fill := b.Fill()
	return b.padRight(w-b.width, fill).padBottom(h-b.Height(), fill)
}

type compositor struct {
	transparent    string
	fgFill, bgFill string
}

// row composites two rows of equal width.
func (c compositor) row(fg, bg []string) []string {
	n := len(fg)
	fgHead, bgHead := heads(fg), heads(bg)

	// A column is taken from the foreground unless the cluster covering it
	// there is the transparent character.
	front := make([]bool, n)
	opaque := true
	for x := range front {
		front[x] = fg[fgHead[x]] != c.transparent
		opaque = opaque && front[x]
	}
	if opaque {
		return fg
	}

	out := make([]string, n)
	for x := 0; x < n; {
		src, head, fill := bg, bgHead, c.bgFill
		if front[x] {
			src, head, fill = fg, fgHead, c.fgFill
		}
		end := x + 1
		for end < n && head[end] == x {
			end++
		}
		if head[x] == x && sameLayer(front[x:end]) {
			copy(out[x:end], src[x:end])
			x = end
			continue
		}
		out[x] = fill
		x++
	}
	return out
}

// heads maps every column of row to the column where its cluster starts.
func heads(row []string) []int {
	h := make([]int, len(row))
	for x, cell := range row {
		if cell == "" && x > 0 {
			h[x] = h[x-1]
		} else {
			h[x] = x
		}
	}
	return h
}

func sameLayer(front []bool) bool {
	for _, f := range front[1:] {
		if f != front[0] {
			return false
		}
	}
	return true
}
