package block

import (
	"fmt"

	"github.com/matzehuels/textblock/pkg/errors"
)

// Side names an edge of a block.
type Side int

const (
	// Top is the edge above the first row.
	Top Side = iota
	// Bottom is the edge below the last row.
	Bottom
	// Left is the edge before the first column.
	Left
	// Right is the edge after the last column.
	Right
)

// String returns the lowercase name of the side.
func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Pad inserts amount rows (Top, Bottom) or columns (Left, Right) of fill on
// the given side. Existing content is shifted by amount along the padded
// axis. A negative amount fails with ErrInvalidDimension.
func (b Block) Pad(side Side, amount int, fill rune) (Block, error) {
	if err := errors.ValidateDimension("padding amount", amount); err != nil {
		return Block{}, err
	}
	switch side {
	case Top:
		return b.padTop(amount, fill), nil
	case Bottom:
		return b.padBottom(amount, fill), nil
	case Left:
		return b.padLeft(amount, fill), nil
	case Right:
		return b.padRight(amount, fill), nil
	}
	return Block{}, errors.New(errors.ErrCodeInvalidInput, "unknown side: %v", side)
}

// PadTop adds amount rows of fill above the block.
func (b Block) PadTop(amount int, fill rune) (Block, error) {
	return b.Pad(Top, amount, fill)
}

// PadBottom adds amount rows of fill below the block.
func (b Block) PadBottom(amount int, fill rune) (Block, error) {
	return b.Pad(Bottom, amount, fill)
}

// PadLeft adds amount columns of fill before the block.
func (b Block) PadLeft(amount int, fill rune) (Block, error) {
	return b.Pad(Left, amount, fill)
}

// PadRight adds amount columns of fill after the block.
func (b Block) PadRight(amount int, fill rune) (Block, error) {
	return b.Pad(Right, amount, fill)
}

// PadToWidthLeft pads on the left until the block is w columns wide, which
// right-aligns the content. A block already at least w wide is returned as is.
func (b Block) PadToWidthLeft(w int, fill rune) (Block, error) {
	if err := errors.ValidateDimension("width", w); err != nil {
		return Block{}, err
	}
	return b.padLeft(max(0, w-b.width), fill), nil
}

// PadToWidthRight pads on the right until the block is w columns wide, which
// left-aligns the content. A block already at least w wide is returned as is.
func (b Block) PadToWidthRight(w int, fill rune) (Block, error) {
	if err := errors.ValidateDimension("width", w); err != nil {
		return Block{}, err
	}
	return b.padRight(max(0, w-b.width), fill), nil
}

// PadToHeightTop pads above until the block is h rows high.
func (b Block) PadToHeightTop(h int, fill rune) (Block, error) {
	if err := errors.ValidateDimension("height", h); err != nil {
		return Block{}, err
	}
	return b.padTop(max(0, h-b.Height()), fill), nil
}

// PadToHeightBottom pads below until the block is h rows high.
func (b Block) PadToHeightBottom(h int, fill rune) (Block, error) {
	if err := errors.ValidateDimension("height", h); err != nil {
		return Block{}, err
	}
	return b.padBottom(max(0, h-b.Height()), fill), nil
}

// The unexported helpers below assume n >= 0.

func (b Block) padTop(n int, fill rune) Block {
	if n == 0 {
		return b
	}
	rows := make([][]string, 0, n+len(b.rows))
	row := fillRow(b.width, fill)
	for i := 0; i < n; i++ {
		rows = append(rows, row)
	}
	b.rows = append(rows, b.rows...)
	if b.tails != nil {
		b.tails = append(make([]string, n, n+len(b.tails)), b.tails...)
	}
	return b
}

func (b Block) padBottom(n int, fill rune) Block {
	if n == 0 {
		return b
	}
	rows := make([][]string, 0, len(b.rows)+n)
	rows = append(rows, b.rows...)
	row := fillRow(b.width, fill)
	for i := 0; i < n; i++ {
		rows = append(rows, row)
	}
	b.rows = rows
	if b.tails != nil {
		b.tails = append(append([]string(nil), b.tails...), make([]string, n)...)
	}
	return b
}

func (b Block) padLeft(n int, fill rune) Block {
	if n == 0 {
		return b
	}
	pad := fillRow(n, fill)
	rows := make([][]string, len(b.rows))
	for i, row := range b.rows {
		rows[i] = settle(concat(pad, row), b.tail(i), true)
	}
	b.rows = rows
	b.width += n
	b.tails = nil
	return b
}

func (b Block) padRight(n int, fill rune) Block {
	if n == 0 {
		return b
	}
	pad := fillRow(n, fill)
	rows := make([][]string, len(b.rows))
	for i, row := range b.rows {
		rows[i] = settle(concat(row, pad), b.tail(i), false)
	}
	b.rows = rows
	b.width += n
	b.tails = nil
	return b
}
