package showcase

import (
	"github.com/matzehuels/textblock/pkg/block"
)

// square draws the outline of a size x size square in border, offset from
// the top left corner. size must be at least 2.
func square(border rune, size, offsetLeft, offsetTop int) block.Block {
	edge := block.Must(block.Empty(size, 1, border))
	side := block.Must(block.Empty(1, size-2, border))
	middle := block.Must(side.PadRight(size-2, ' ')).BesideTop(side, ' ')

	sq := edge.StackLeft(middle, ' ').StackLeft(edge, ' ')
	return block.Must(block.Must(sq.PadLeft(offsetLeft, ' ')).PadTop(offsetTop, ' '))
}

// Boxes puts one square in front of another. The inside of the front square
// is blank, and blanks are transparent, so the back square shows through.
func Boxes() block.Block {
	front := square('O', 5, 0, 0)
	back := square('*', 7, 2, 2)
	return front.InFrontOf(back, ' ')
}
